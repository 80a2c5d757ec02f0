package eventcontroller

import (
	"hoa/packages/core/event"
	EventDTO "hoa/packages/core/event/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/DB"
	controller "hoa/packages/presentation/api/http/controllers"

	"github.com/labstack/echo/v4"
)

var resource = &controller.Resource[event.Event, EventDTO.Payload]{
	Processor: sieve.New(event.Fields),
	Repo:      DB.Database.Events,
	New:       event.New,
	Apply:     (*event.Event).Apply,
	Validate:  event.ValidatePayload,
}

// @Summary 		List community events
// @Description 	Page metadata is returned in X-Pagination header.
// @ID 				events-list
// @Tags			events
// @Param 			filters query string false "Filters, e.g. Title@=*garage,StartsAt>=2025-06-01"
// @Param 			sorts query string false "Sorts, e.g. -StartsAt,Title"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	event.Event
// @Failure			400,500 		{object} 	response.ParseError
// @Router			/v1/events [get]
func List(ctx echo.Context) error {
	return resource.List(ctx)
}

// @Summary 		Get event
// @ID 				events-get
// @Tags			events
// @Param 			id path string true "Event id"
// @Produce			json
// @Success			200 			{object} 	event.Event
// @Failure			400,404,500 	{object} 	response.Error
// @Router			/v1/events/{id} [get]
func Get(ctx echo.Context) error {
	return resource.Get(ctx)
}

// @Summary 		Create event
// @Description 	Authenticated user becomes the owner of the event.
// @ID 				events-create
// @Tags			events
// @Param 			Event body eventdto.Payload true "Event"
// @Accept			json
// @Produce			json
// @Success			201 				{object} 	event.Event
// @Failure			400,401,403,500 	{object} 	response.Error
// @Router			/v1/events [post]
// @Security		BearerAuth
func Create(ctx echo.Context) error {
	return resource.Create(ctx)
}

// @Summary 		Update event
// @Description 	Only the owner and board members can update event.
// @ID 				events-update
// @Tags			events
// @Param 			id path string true "Event id"
// @Param 			Event body eventdto.Payload true "Event"
// @Accept			json
// @Produce			json
// @Success			200 					{object} 	event.Event
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/events/{id} [put]
// @Security		BearerAuth
func Update(ctx echo.Context) error {
	return resource.Update(ctx)
}

// @Summary 		Delete event
// @Description 	Only the owner and board members can delete event.
// @ID 				events-delete
// @Tags			events
// @Param 			id path string true "Event id"
// @Success			204
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/events/{id} [delete]
// @Security		BearerAuth
func Delete(ctx echo.Context) error {
	return resource.Delete(ctx)
}
