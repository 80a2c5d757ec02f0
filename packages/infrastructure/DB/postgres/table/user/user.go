package usertable

import (
	"context"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/user"
	"hoa/packages/infrastructure/DB/postgres/connection"
	"hoa/packages/infrastructure/DB/postgres/executor"
	log "hoa/packages/infrastructure/DB/postgres/logger"
	"hoa/packages/infrastructure/DB/postgres/query"
	"hoa/packages/infrastructure/DB/postgres/table"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var columns = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"unit",
	"is_board_member",
	"created_at",
	"updated_at",
}

// Columns of the user relation with the given alias.
func Columns(alias string) []string {
	return query.Columns(alias, columns...)
}

func dests(u *user.User) []any {
	return []any{
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Unit,
		&u.IsBoardMember,
		&u.CreatedAt,
		&u.UpdatedAt,
	}
}

// Scan destinations for user reached via LEFT JOIN, which may be missing.
type Nullable struct {
	ID            pgtype.UUID
	Email         pgtype.Text
	FirstName     pgtype.Text
	LastName      pgtype.Text
	Unit          pgtype.Text
	IsBoardMember pgtype.Bool
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (n *Nullable) Dests() []any {
	return []any{
		&n.ID,
		&n.Email,
		&n.FirstName,
		&n.LastName,
		&n.Unit,
		&n.IsBoardMember,
		&n.CreatedAt,
		&n.UpdatedAt,
	}
}

// Returns nil if there was no user.
func (n *Nullable) User() *user.User {
	if !n.ID.Valid {
		return nil
	}

	return &user.User{
		ID:            uuid.UUID(n.ID.Bytes),
		Email:         n.Email.String,
		FirstName:     n.FirstName.String,
		LastName:      n.LastName.String,
		Unit:          n.Unit.String,
		IsBoardMember: n.IsBoardMember.Bool,
		CreatedAt:     n.CreatedAt.Time,
		UpdatedAt:     n.UpdatedAt.Time,
	}
}

var ErrUserHasContent = Error.NewStatusError(
	"Resident can't be deleted while they own events, posts, comments or meetings",
	http.StatusConflict,
)

const emailConstraint = "users_email_key"

// Foreign keys that reference users
var referencingConstraints = []string{
	"events_owner_id_fkey",
	"posts_author_id_fkey",
	"comments_author_id_fkey",
	"meetings_organizer_id_fkey",
}

type Manager struct {
	*table.Table[user.User]
}

func NewManager() *Manager {
	return &Manager{
		Table: table.New("user", table.Schema[user.User]{
			Select: query.NewSelect(user.Fields, Columns(user.Table)...),
			Scanner: func() ([]any, func() *user.User) {
				u := new(user.User)
				return dests(u), func() *user.User { return u }
			},
			ID: func(u *user.User) uuid.UUID {
				return u.ID
			},
			Insert: func(u *user.User) *query.Query {
				return query.New(
					`INSERT INTO "users" (id, email, first_name, last_name, unit, is_board_member, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
					u.ID, u.Email, u.FirstName, u.LastName, u.Unit, u.IsBoardMember, u.CreatedAt, u.UpdatedAt,
				).OnViolation(emailConstraint, user.ErrEmailTaken)
			},
			Update: func(u *user.User) *query.Query {
				return query.New(
					`UPDATE "users" SET email = $2, first_name = $3, last_name = $4, unit = $5, is_board_member = $6, updated_at = $7
					WHERE id = $1;`,
					u.ID, u.Email, u.FirstName, u.LastName, u.Unit, u.IsBoardMember, u.UpdatedAt,
				).OnViolation(emailConstraint, user.ErrEmailTaken)
			},
			Delete: func(id uuid.UUID) []*query.Query {
				q := query.New(`DELETE FROM "users" WHERE id = $1;`, id)
				for _, constraint := range referencingConstraints {
					q.OnViolation(constraint, ErrUserHasContent)
				}
				return []*query.Query{q}
			},
		}),
	}
}

func (m *Manager) Emails(ctx context.Context) ([]string, *Error.Status) {
	log.DB.Trace("Selecting residents E-Mails...", nil)

	emails, err := executor.Collect(
		ctx,
		connection.Replica,
		query.New(`SELECT email FROM "users" ORDER BY created_at, id;`),
		pgx.RowTo[string],
	)
	if err != nil {
		log.DB.Error("Failed to select residents E-Mails", err.Error(), nil)
		return nil, err
	}

	log.DB.Trace("Selecting residents E-Mails: OK", nil)

	return emails, nil
}
