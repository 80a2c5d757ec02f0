package meetingcontroller

import (
	"context"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/meeting"
	MeetingDTO "hoa/packages/core/meeting/DTO"
	"hoa/packages/core/minutes"
	MinutesDTO "hoa/packages/core/minutes/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/DB"
	"hoa/packages/infrastructure/email"
	controller "hoa/packages/presentation/api/http/controllers"
	"hoa/packages/presentation/api/http/request"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var resource = &controller.Resource[meeting.BoardMeeting, MeetingDTO.Payload]{
	Processor:   sieve.New(meeting.Fields),
	Repo:        DB.Database.Meetings,
	New:         meeting.New,
	Apply:       (*meeting.BoardMeeting).Apply,
	AfterCreate: announce,
}

var minutesOfMeeting = &controller.Resource[minutes.MeetingMinutes, MinutesDTO.Payload]{
	Processor: sieve.New(minutes.Fields),
	Repo:      DB.Database.Minutes,
}

func meetingExists(ctx context.Context, id uuid.UUID) *Error.Status {
	_, err := DB.Database.Meetings.GetByID(ctx, id)
	return err
}

// Queues announcement of the meeting to every resident.
// Meeting is already created, so failures are only logged.
func announce(ctx echo.Context, m *meeting.BoardMeeting) {
	reqMeta := request.FindMetadata(ctx)

	recipients, err := DB.Database.Users.Emails(ctx.Request().Context())
	if err != nil {
		controller.Logger.Error("Failed to get recipients of meeting announcement", err.Error(), reqMeta)
		return
	}

	if err := email.EnqueueMeetingAnnouncement(m, recipients); err != nil {
		controller.Logger.Error("Failed to queue meeting announcement", err.Error(), reqMeta)
	}
}

// @Summary 		List board meetings
// @Description 	Page metadata is returned in X-Pagination header.
// @ID 				meetings-list
// @Tags			meetings
// @Param 			filters query string false "Filters, e.g. ScheduledAt>=2025-01-01,OrganizerEmail==board@example.com"
// @Param 			sorts query string false "Sorts, e.g. -ScheduledAt"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	meeting.BoardMeeting
// @Failure			400,500 		{object} 	response.ParseError
// @Router			/v1/meetings [get]
func List(ctx echo.Context) error {
	return resource.List(ctx)
}

// @Summary 		List minutes of the meeting
// @Description 	Page metadata is returned in X-Pagination header.
// @ID 				meetings-minutes-list
// @Tags			meetings,minutes
// @Param 			id path string true "Meeting id"
// @Param 			filters query string false "Filters, e.g. ApprovedAt!=null"
// @Param 			sorts query string false "Sorts, e.g. -Created"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	minutes.MeetingMinutes
// @Failure			400,404,500 	{object} 	response.ParseError
// @Router			/v1/meetings/{id}/minutes [get]
func ListMinutes(ctx echo.Context) error {
	return minutesOfMeeting.ListOf(meetingExists, minutes.OfMeeting)(ctx)
}

// @Summary 		Get board meeting
// @ID 				meetings-get
// @Tags			meetings
// @Param 			id path string true "Meeting id"
// @Produce			json
// @Success			200 			{object} 	meeting.BoardMeeting
// @Failure			400,404,500 	{object} 	response.Error
// @Router			/v1/meetings/{id} [get]
func Get(ctx echo.Context) error {
	return resource.Get(ctx)
}

// @Summary 		Schedule board meeting
// @Description 	Announcement is sent to every resident by E-Mail. Board members only.
// @ID 				meetings-create
// @Tags			meetings
// @Param 			Meeting body meetingdto.Payload true "Meeting"
// @Accept			json
// @Produce			json
// @Success			201 				{object} 	meeting.BoardMeeting
// @Failure			400,401,403,500 	{object} 	response.Error
// @Router			/v1/meetings [post]
// @Security		BearerAuth
func Create(ctx echo.Context) error {
	return resource.Create(ctx)
}

// @Summary 		Update board meeting
// @Description 	Board members only.
// @ID 				meetings-update
// @Tags			meetings
// @Param 			id path string true "Meeting id"
// @Param 			Meeting body meetingdto.Payload true "Meeting"
// @Accept			json
// @Produce			json
// @Success			200 					{object} 	meeting.BoardMeeting
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/meetings/{id} [put]
// @Security		BearerAuth
func Update(ctx echo.Context) error {
	return resource.Update(ctx)
}

// @Summary 		Cancel board meeting
// @Description 	Board members only.
// @ID 				meetings-delete
// @Tags			meetings
// @Param 			id path string true "Meeting id"
// @Success			204
// @Failure			400,401,403,404,409,500 	{object} 	response.Error
// @Router			/v1/meetings/{id} [delete]
// @Security		BearerAuth
func Delete(ctx echo.Context) error {
	return resource.Delete(ctx)
}
