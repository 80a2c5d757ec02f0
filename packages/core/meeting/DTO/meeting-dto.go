package meetingdto

import "time"

type Payload struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Agenda      string    `json:"agenda" validate:"required,max=10000"`
	Location    string    `json:"location" validate:"required,max=200"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
}
