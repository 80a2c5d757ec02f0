package minutestable

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	dests, build := scanner()
	require.Len(t, dests, len(columns))

	meetingID := uuid.New()

	*dests[1].(*uuid.UUID) = meetingID
	*dests[5].(*pgtype.UUID) = pgtype.UUID{Bytes: meetingID, Valid: true}
	*dests[6].(*pgtype.Text) = pgtype.Text{String: "Annual budget", Valid: true}

	m := build()

	require.NotNil(t, m.Meeting)
	assert.Equal(t, meetingID, m.Meeting.ID)
	assert.Equal(t, "Annual budget", m.Meeting.Title)
	assert.Nil(t, m.Meeting.Organizer)
}
