package eventtable

import (
	"hoa/packages/core/event"
	"hoa/packages/core/user"
	"hoa/packages/infrastructure/DB/postgres/query"
	"hoa/packages/infrastructure/DB/postgres/table"
	usertable "hoa/packages/infrastructure/DB/postgres/table/user"

	"github.com/google/uuid"
)

var columns = append(
	query.Columns(event.Table,
		"id",
		"title",
		"description",
		"location",
		"starts_at",
		"ends_at",
		"owner_id",
		"created_at",
		"updated_at",
	),
	usertable.Columns(event.OwnerJoin.Alias)...,
)

func scanner() ([]any, func() *event.Event) {
	e := new(event.Event)
	owner := new(usertable.Nullable)

	dests := append([]any{
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.StartsAt,
		&e.EndsAt,
		&e.OwnerID,
		&e.CreatedAt,
		&e.UpdatedAt,
	}, owner.Dests()...)

	return dests, func() *event.Event {
		e.Owner = owner.User()
		return e
	}
}

type Manager struct {
	*table.Table[event.Event]
}

func NewManager() *Manager {
	return &Manager{
		Table: table.New("event", table.Schema[event.Event]{
			Select:  query.NewSelect(event.Fields, columns...),
			Scanner: scanner,
			ID: func(e *event.Event) uuid.UUID {
				return e.ID
			},
			Insert: func(e *event.Event) *query.Query {
				return query.New(
					`INSERT INTO "events" (id, title, description, location, starts_at, ends_at, owner_id, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
					e.ID, e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt, e.OwnerID, e.CreatedAt, e.UpdatedAt,
				).OnViolation("events_owner_id_fkey", user.ErrNotRegistered)
			},
			Update: func(e *event.Event) *query.Query {
				return query.New(
					`UPDATE "events" SET title = $2, description = $3, location = $4, starts_at = $5, ends_at = $6, updated_at = $7
					WHERE id = $1;`,
					e.ID, e.Title, e.Description, e.Location, e.StartsAt, e.EndsAt, e.UpdatedAt,
				)
			},
			Delete: func(id uuid.UUID) []*query.Query {
				return []*query.Query{query.New(`DELETE FROM "events" WHERE id = $1;`, id)}
			},
		}),
	}
}
