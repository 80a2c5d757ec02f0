package usertable

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable(t *testing.T) {
	t.Run("missing user", func(t *testing.T) {
		assert.Nil(t, new(Nullable).User())
	})

	t.Run("joined user", func(t *testing.T) {
		id := uuid.New()
		created := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)

		n := Nullable{
			ID:            pgtype.UUID{Bytes: id, Valid: true},
			Email:         pgtype.Text{String: "jane@example.com", Valid: true},
			FirstName:     pgtype.Text{String: "Jane", Valid: true},
			LastName:      pgtype.Text{String: "Doe", Valid: true},
			Unit:          pgtype.Text{String: "12B", Valid: true},
			IsBoardMember: pgtype.Bool{Bool: true, Valid: true},
			CreatedAt:     pgtype.Timestamptz{Time: created, Valid: true},
			UpdatedAt:     pgtype.Timestamptz{Time: created, Valid: true},
		}

		u := n.User()
		require.NotNil(t, u)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.Equal(t, "12B", u.Unit)
		assert.True(t, u.IsBoardMember)
		assert.Equal(t, created, u.CreatedAt)
	})

	t.Run("destinations match columns", func(t *testing.T) {
		assert.Len(t, new(Nullable).Dests(), len(columns))
	})
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{
		`"owner".id`,
		`"owner".email`,
		`"owner".first_name`,
		`"owner".last_name`,
		`"owner".unit`,
		`"owner".is_board_member`,
		`"owner".created_at`,
		`"owner".updated_at`,
	}, Columns("owner"))
}
