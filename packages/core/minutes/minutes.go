package minutes

import (
	Error "hoa/packages/common/errors"
	"hoa/packages/core/meeting"
	MinutesDTO "hoa/packages/core/minutes/DTO"
	"hoa/packages/core/sieve"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Minutes of the board meeting.
type MeetingMinutes struct {
	ID         uuid.UUID             `json:"id"`
	MeetingID  uuid.UUID             `json:"meetingId"`
	Meeting    *meeting.BoardMeeting `json:"meeting,omitempty"`
	Body       string                `json:"body"`
	ApprovedAt *time.Time            `json:"approvedAt"`
	CreatedAt  time.Time             `json:"createdAt"`
}

const Table = "meeting_minutes"

var MeetingJoin = sieve.Join{
	Table: meeting.Table,
	Alias: "meeting",
	On:    `"meeting".id = "meeting_minutes".meeting_id`,
}

var Fields = newFields()

func newFields() *sieve.Registry[MeetingMinutes] {
	r := sieve.NewRegistry[MeetingMinutes]("minutes", Table).
		UUID("Id", "id", func(m MeetingMinutes) uuid.UUID { return m.ID }).
		UUID("MeetingId", "meeting_id", func(m MeetingMinutes) uuid.UUID { return m.MeetingID }).
		String("Body", "body", func(m MeetingMinutes) string { return m.Body }, sieve.NoSort).
		NullableTime("ApprovedAt", "approved_at", func(m MeetingMinutes) *time.Time { return m.ApprovedAt }).
		Time("Created", "created_at", func(m MeetingMinutes) time.Time { return m.CreatedAt })

	sieve.Relate(r, "Meeting", MeetingJoin, func(m MeetingMinutes) *meeting.BoardMeeting { return m.Meeting }, meeting.Fields)

	return r.Alias("MeetingTitle", "Meeting.Title")
}

// Restricts minutes to the ones of the given meeting.
func OfMeeting(meetingID uuid.UUID) sieve.FilterClause {
	return sieve.FilterClause{
		Field:    "MeetingId",
		Operator: sieve.Equals,
		Value:    meetingID,
		Raw:      "MeetingId==" + meetingID.String(),
	}
}

var ErrMeetingNotFound = Error.NewStatusError(
	"Can't add minutes to meeting which doesn't exist",
	http.StatusUnprocessableEntity,
)

func New(payload *MinutesDTO.Payload) *MeetingMinutes {
	m := &MeetingMinutes{
		ID:        uuid.New(),
		MeetingID: payload.MeetingID,
		CreatedAt: time.Now().UTC(),
	}
	m.Apply(payload)

	return m
}

func (m *MeetingMinutes) Apply(payload *MinutesDTO.Payload) {
	m.Body = payload.Body
	m.ApprovedAt = nil
	if payload.ApprovedAt != nil {
		approvedAt := payload.ApprovedAt.UTC()
		m.ApprovedAt = &approvedAt
	}
}
