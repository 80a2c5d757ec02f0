package eventtable

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	dests, build := scanner()
	require.Len(t, dests, len(columns))

	id, ownerID := uuid.New(), uuid.New()
	startsAt := time.Date(2024, time.July, 4, 18, 0, 0, 0, time.UTC)

	*dests[0].(*uuid.UUID) = id
	*dests[1].(*string) = "Fireworks"
	*dests[4].(*time.Time) = startsAt
	*dests[6].(*uuid.UUID) = ownerID
	*dests[9].(*pgtype.UUID) = pgtype.UUID{Bytes: ownerID, Valid: true}
	*dests[10].(*pgtype.Text) = pgtype.Text{String: "jane@example.com", Valid: true}

	e := build()

	assert.Equal(t, id, e.ID)
	assert.Equal(t, "Fireworks", e.Title)
	assert.Equal(t, startsAt, e.StartsAt)
	assert.Nil(t, e.EndsAt)
	require.NotNil(t, e.Owner)
	assert.Equal(t, ownerID, e.Owner.ID)
	assert.Equal(t, "jane@example.com", e.Owner.Email)
}

func TestScannerWithoutOwner(t *testing.T) {
	_, build := scanner()
	assert.Nil(t, build().Owner)
}
