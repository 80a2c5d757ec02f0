package minutestable

import (
	"hoa/packages/core/minutes"
	"hoa/packages/infrastructure/DB/postgres/query"
	"hoa/packages/infrastructure/DB/postgres/table"
	meetingtable "hoa/packages/infrastructure/DB/postgres/table/meeting"

	"github.com/google/uuid"
)

var columns = append(
	query.Columns(minutes.Table,
		"id",
		"meeting_id",
		"body",
		"approved_at",
		"created_at",
	),
	meetingtable.Columns(minutes.MeetingJoin.Alias)...,
)

func scanner() ([]any, func() *minutes.MeetingMinutes) {
	m := new(minutes.MeetingMinutes)
	meeting := new(meetingtable.Nullable)

	dests := append([]any{
		&m.ID,
		&m.MeetingID,
		&m.Body,
		&m.ApprovedAt,
		&m.CreatedAt,
	}, meeting.Dests()...)

	return dests, func() *minutes.MeetingMinutes {
		m.Meeting = meeting.Meeting()
		return m
	}
}

type Manager struct {
	*table.Table[minutes.MeetingMinutes]
}

func NewManager() *Manager {
	return &Manager{
		Table: table.New("minutes", table.Schema[minutes.MeetingMinutes]{
			Select:  query.NewSelect(minutes.Fields, columns...),
			Scanner: scanner,
			ID: func(m *minutes.MeetingMinutes) uuid.UUID {
				return m.ID
			},
			Insert: func(m *minutes.MeetingMinutes) *query.Query {
				return query.New(
					`INSERT INTO "meeting_minutes" (id, meeting_id, body, approved_at, created_at)
					VALUES ($1, $2, $3, $4, $5);`,
					m.ID, m.MeetingID, m.Body, m.ApprovedAt, m.CreatedAt,
				).OnViolation("meeting_minutes_meeting_id_fkey", minutes.ErrMeetingNotFound)
			},
			Update: func(m *minutes.MeetingMinutes) *query.Query {
				return query.New(
					`UPDATE "meeting_minutes" SET body = $2, approved_at = $3 WHERE id = $1;`,
					m.ID, m.Body, m.ApprovedAt,
				)
			},
			Delete: func(id uuid.UUID) []*query.Query {
				return []*query.Query{query.New(`DELETE FROM "meeting_minutes" WHERE id = $1;`, id)}
			},
		}),
	}
}
