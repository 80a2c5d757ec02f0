package meetingtable

import (
	"hoa/packages/core/meeting"
	"hoa/packages/core/minutes"
	"hoa/packages/core/user"
	"hoa/packages/infrastructure/DB/postgres/query"
	"hoa/packages/infrastructure/DB/postgres/table"
	usertable "hoa/packages/infrastructure/DB/postgres/table/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var ownColumns = []string{
	"id",
	"title",
	"agenda",
	"location",
	"scheduled_at",
	"organizer_id",
	"created_at",
}

// Own columns of the meeting relation with the given alias.
func Columns(alias string) []string {
	return query.Columns(alias, ownColumns...)
}

var columns = append(Columns(meeting.Table), usertable.Columns(meeting.OrganizerJoin.Alias)...)

// Scan destinations for meeting reached via LEFT JOIN, which may be missing.
// Organizer isn't loaded.
type Nullable struct {
	ID          pgtype.UUID
	Title       pgtype.Text
	Agenda      pgtype.Text
	Location    pgtype.Text
	ScheduledAt pgtype.Timestamptz
	OrganizerID pgtype.UUID
	CreatedAt   pgtype.Timestamptz
}

func (n *Nullable) Dests() []any {
	return []any{
		&n.ID,
		&n.Title,
		&n.Agenda,
		&n.Location,
		&n.ScheduledAt,
		&n.OrganizerID,
		&n.CreatedAt,
	}
}

// Returns nil if there was no meeting.
func (n *Nullable) Meeting() *meeting.BoardMeeting {
	if !n.ID.Valid {
		return nil
	}

	return &meeting.BoardMeeting{
		ID:          uuid.UUID(n.ID.Bytes),
		Title:       n.Title.String,
		Agenda:      n.Agenda.String,
		Location:    n.Location.String,
		ScheduledAt: n.ScheduledAt.Time,
		OrganizerID: uuid.UUID(n.OrganizerID.Bytes),
		CreatedAt:   n.CreatedAt.Time,
	}
}

func scanner() ([]any, func() *meeting.BoardMeeting) {
	m := new(meeting.BoardMeeting)
	organizer := new(usertable.Nullable)

	dests := append([]any{
		&m.ID,
		&m.Title,
		&m.Agenda,
		&m.Location,
		&m.ScheduledAt,
		&m.OrganizerID,
		&m.CreatedAt,
	}, organizer.Dests()...)

	return dests, func() *meeting.BoardMeeting {
		m.Organizer = organizer.User()
		return m
	}
}

type Manager struct {
	*table.Table[meeting.BoardMeeting]
}

func NewManager() *Manager {
	return &Manager{
		Table: table.New("meeting", table.Schema[meeting.BoardMeeting]{
			Select:  query.NewSelect(meeting.Fields, columns...),
			Scanner: scanner,
			ID: func(m *meeting.BoardMeeting) uuid.UUID {
				return m.ID
			},
			Insert: func(m *meeting.BoardMeeting) *query.Query {
				return query.New(
					`INSERT INTO "meetings" (id, title, agenda, location, scheduled_at, organizer_id, created_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7);`,
					m.ID, m.Title, m.Agenda, m.Location, m.ScheduledAt, m.OrganizerID, m.CreatedAt,
				).OnViolation("meetings_organizer_id_fkey", user.ErrNotRegistered)
			},
			Update: func(m *meeting.BoardMeeting) *query.Query {
				return query.New(
					`UPDATE "meetings" SET title = $2, agenda = $3, location = $4, scheduled_at = $5 WHERE id = $1;`,
					m.ID, m.Title, m.Agenda, m.Location, m.ScheduledAt,
				)
			},
			// Meeting is deleted together with its minutes
			Delete: func(id uuid.UUID) []*query.Query {
				return []*query.Query{
					query.New(`DELETE FROM "`+minutes.Table+`" WHERE meeting_id = $1;`, id),
					query.New(`DELETE FROM "meetings" WHERE id = $1;`, id),
				}
			},
		}),
	}
}
