package event

import (
	Error "hoa/packages/common/errors"
	EventDTO "hoa/packages/core/event/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/core/user"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Community event, e.g. garage sale or pool party.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	// Loaded together with event, nil if owner doesn't exist anymore.
	Owner     *user.User `json:"owner,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

const Table = "events"

var OwnerJoin = sieve.Join{
	Table: user.Table,
	Alias: "owner",
	On:    `"owner".id = "events".owner_id`,
}

var Fields = newFields()

func newFields() *sieve.Registry[Event] {
	r := sieve.NewRegistry[Event]("event", Table).
		UUID("Id", "id", func(e Event) uuid.UUID { return e.ID }).
		String("Title", "title", func(e Event) string { return e.Title }).
		String("Description", "description", func(e Event) string { return e.Description }).
		String("Location", "location", func(e Event) string { return e.Location }).
		Time("StartsAt", "starts_at", func(e Event) time.Time { return e.StartsAt }).
		NullableTime("EndsAt", "ends_at", func(e Event) *time.Time { return e.EndsAt }).
		UUID("OwnerId", "owner_id", func(e Event) uuid.UUID { return e.OwnerID }).
		Time("Created", "created_at", func(e Event) time.Time { return e.CreatedAt }).
		Time("Updated", "updated_at", func(e Event) time.Time { return e.UpdatedAt })

	sieve.Relate(r, "Owner", OwnerJoin, func(e Event) *user.User { return e.Owner }, user.Fields)

	return r.Alias("OwnerEmail", "Owner.Email")
}

var ErrInvalidEndTime = Error.NewStatusError(
	"Event can't end before it starts",
	http.StatusBadRequest,
)

func ValidatePayload(payload *EventDTO.Payload) *Error.Status {
	if payload.EndsAt != nil && payload.EndsAt.Before(payload.StartsAt) {
		return ErrInvalidEndTime
	}
	return nil
}

func New(payload *EventDTO.Payload, ownerID uuid.UUID) *Event {
	now := time.Now().UTC()

	e := &Event{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	e.Apply(payload)
	e.UpdatedAt = now

	return e
}

func (e *Event) Apply(payload *EventDTO.Payload) {
	e.Title = strings.TrimSpace(payload.Title)
	e.Description = payload.Description
	e.Location = strings.TrimSpace(payload.Location)
	e.StartsAt = payload.StartsAt.UTC()
	e.EndsAt = nil
	if payload.EndsAt != nil {
		endsAt := payload.EndsAt.UTC()
		e.EndsAt = &endsAt
	}
	e.UpdatedAt = time.Now().UTC()
}

func (e *Event) CreatedBy() uuid.UUID {
	return e.OwnerID
}
