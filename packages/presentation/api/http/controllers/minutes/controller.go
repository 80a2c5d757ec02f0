package minutescontroller

import (
	"hoa/packages/core/minutes"
	MinutesDTO "hoa/packages/core/minutes/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/DB"
	controller "hoa/packages/presentation/api/http/controllers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var resource = &controller.Resource[minutes.MeetingMinutes, MinutesDTO.Payload]{
	Processor: sieve.New(minutes.Fields),
	Repo:      DB.Database.Minutes,
	// Minutes are recorded by the board, not by particular member
	New: func(payload *MinutesDTO.Payload, _ uuid.UUID) *minutes.MeetingMinutes {
		return minutes.New(payload)
	},
	Apply: (*minutes.MeetingMinutes).Apply,
}

// @Summary 		List minutes of all meetings
// @Description 	Page metadata is returned in X-Pagination header.
// @ID 				minutes-list
// @Tags			minutes
// @Param 			filters query string false "Filters, e.g. MeetingTitle@=*budget"
// @Param 			sorts query string false "Sorts, e.g. -Meeting.ScheduledAt"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	minutes.MeetingMinutes
// @Failure			400,500 		{object} 	response.ParseError
// @Router			/v1/minutes [get]
func List(ctx echo.Context) error {
	return resource.List(ctx)
}

// @Summary 		Get meeting minutes
// @ID 				minutes-get
// @Tags			minutes
// @Param 			id path string true "Minutes id"
// @Produce			json
// @Success			200 			{object} 	minutes.MeetingMinutes
// @Failure			400,404,500 	{object} 	response.Error
// @Router			/v1/minutes/{id} [get]
func Get(ctx echo.Context) error {
	return resource.Get(ctx)
}

// @Summary 		Record meeting minutes
// @Description 	Board members only.
// @ID 				minutes-create
// @Tags			minutes
// @Param 			Minutes body minutesdto.Payload true "Minutes"
// @Accept			json
// @Produce			json
// @Success			201 					{object} 	minutes.MeetingMinutes
// @Failure			400,401,403,422,500 	{object} 	response.Error
// @Router			/v1/minutes [post]
// @Security		BearerAuth
func Create(ctx echo.Context) error {
	return resource.Create(ctx)
}

// @Summary 		Update meeting minutes
// @Description 	Minutes can't be moved to another meeting. Board members only.
// @ID 				minutes-update
// @Tags			minutes
// @Param 			id path string true "Minutes id"
// @Param 			Minutes body minutesdto.Payload true "Minutes"
// @Accept			json
// @Produce			json
// @Success			200 					{object} 	minutes.MeetingMinutes
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/minutes/{id} [put]
// @Security		BearerAuth
func Update(ctx echo.Context) error {
	return resource.Update(ctx)
}

// @Summary 		Delete meeting minutes
// @Description 	Board members only.
// @ID 				minutes-delete
// @Tags			minutes
// @Param 			id path string true "Minutes id"
// @Success			204
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/minutes/{id} [delete]
// @Security		BearerAuth
func Delete(ctx echo.Context) error {
	return resource.Delete(ctx)
}
