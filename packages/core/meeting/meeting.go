package meeting

import (
	MeetingDTO "hoa/packages/core/meeting/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/core/user"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BoardMeeting struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Agenda      string     `json:"agenda"`
	Location    string     `json:"location"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	OrganizerID uuid.UUID  `json:"organizerId"`
	Organizer   *user.User `json:"organizer,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

const Table = "meetings"

var OrganizerJoin = sieve.Join{
	Table: user.Table,
	Alias: "organizer",
	On:    `"organizer".id = "meetings".organizer_id`,
}

var Fields = newFields()

func newFields() *sieve.Registry[BoardMeeting] {
	r := sieve.NewRegistry[BoardMeeting]("meeting", Table).
		UUID("Id", "id", func(m BoardMeeting) uuid.UUID { return m.ID }).
		String("Title", "title", func(m BoardMeeting) string { return m.Title }).
		String("Agenda", "agenda", func(m BoardMeeting) string { return m.Agenda }, sieve.NoSort).
		String("Location", "location", func(m BoardMeeting) string { return m.Location }).
		Time("ScheduledAt", "scheduled_at", func(m BoardMeeting) time.Time { return m.ScheduledAt }).
		UUID("OrganizerId", "organizer_id", func(m BoardMeeting) uuid.UUID { return m.OrganizerID }).
		Time("Created", "created_at", func(m BoardMeeting) time.Time { return m.CreatedAt })

	sieve.Relate(r, "Organizer", OrganizerJoin, func(m BoardMeeting) *user.User { return m.Organizer }, user.Fields)

	return r.Alias("OrganizerEmail", "Organizer.Email")
}

func New(payload *MeetingDTO.Payload, organizerID uuid.UUID) *BoardMeeting {
	m := &BoardMeeting{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		CreatedAt:   time.Now().UTC(),
	}
	m.Apply(payload)

	return m
}

func (m *BoardMeeting) Apply(payload *MeetingDTO.Payload) {
	m.Title = strings.TrimSpace(payload.Title)
	m.Agenda = payload.Agenda
	m.Location = strings.TrimSpace(payload.Location)
	m.ScheduledAt = payload.ScheduledAt.UTC()
}

func (m *BoardMeeting) CreatedBy() uuid.UUID {
	return m.OrganizerID
}
