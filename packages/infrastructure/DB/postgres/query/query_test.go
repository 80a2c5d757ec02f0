package query

import (
	"context"
	"errors"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/sieve"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type author struct {
	Email string
}

type note struct {
	ID       uuid.UUID
	Title    string
	Views    int64
	Archived *time.Time
	Created  time.Time
	Author   *author
}

func newNotes() *sieve.Registry[note] {
	authors := sieve.NewRegistry[author]("author", "users").
		String("Email", "email", func(a author) string { return a.Email })

	r := sieve.NewRegistry[note]("note", "notes").
		UUID("Id", "id", func(n note) uuid.UUID { return n.ID }).
		String("Title", "title", func(n note) string { return n.Title }).
		Int("Views", "views", func(n note) int64 { return n.Views }).
		NullableTime("Archived", "archived_at", func(n note) *time.Time { return n.Archived }).
		Time("Created", "created_at", func(n note) time.Time { return n.Created })

	join := sieve.Join{Table: "users", Alias: "author", On: `"author".id = "notes".author_id`}

	return sieve.Relate(r, "Author", join, func(n note) *author { return n.Author }, authors)
}

var notes = newNotes()
var processor = sieve.New(notes)
var selectNotes = NewSelect(notes, Columns("notes", "id", "title")...)

func mustFilters(t *testing.T, raw string) sieve.FilterExpression {
	t.Helper()
	expr, err := processor.ParseFilters(raw)
	require.NoError(t, err)
	return expr
}

func mustSorts(t *testing.T, raw string) sieve.SortSpec {
	t.Helper()
	spec, err := processor.ParseSorts(raw)
	require.NoError(t, err)
	return spec
}

func TestWhere(t *testing.T) {
	id := uuid.MustParse("2b0a8f54-9d8e-4c0a-a1de-7a3c9e6b1f00")

	cases := []struct {
		filters string
		cond    string
		args    []any
	}{
		{"", "", []any{}},
		{"Title==Pool", `"notes".title COLLATE "C" = $1`, []any{"Pool"}},
		{"Title!=*pool", `LOWER("notes".title) COLLATE "C" <> LOWER($1)`, []any{"pool"}},
		{"Title>=*M", `LOWER("notes".title) COLLATE "C" >= LOWER($1)`, []any{"M"}},
		{"Title<*m", `LOWER("notes".title) COLLATE "C" < LOWER($1)`, []any{"m"}},
		{"Title>=m", `"notes".title COLLATE "C" >= $1`, []any{"m"}},
		{"Title@=50%_off", `"notes".title ILIKE $1 ESCAPE '\'`, []any{`%50\%\_off%`}},
		{"Title!@=a", `"notes".title NOT ILIKE $1 ESCAPE '\'`, []any{"%a%"}},
		{"Title_=a", `"notes".title ILIKE $1 ESCAPE '\'`, []any{"a%"}},
		{"Title!_=a", `"notes".title NOT ILIKE $1 ESCAPE '\'`, []any{"a%"}},
		{"Title_-=a", `"notes".title ILIKE $1 ESCAPE '\'`, []any{"%a"}},
		{"Title!_-=a", `"notes".title NOT ILIKE $1 ESCAPE '\'`, []any{"%a"}},
		{"Id_=2b0a", `"notes".id::text ILIKE $1 ESCAPE '\'`, []any{"2b0a%"}},
		{"Id==" + id.String(), `"notes".id = $1`, []any{id}},
		{"Views<10", `"notes".views < $1`, []any{int64(10)}},
		{"Archived==null", `"notes".archived_at IS NULL`, []any{}},
		{"Archived!=null", `"notes".archived_at IS NOT NULL`, []any{}},
		{"Created>2024-01-01", `"notes".created_at > $1`, []any{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}},
		{"Author.Email==null", `"author".email IS NULL`, []any{}},
		{
			"Title@=*pool, Views>=3, Author.Email==*A@B.C, Archived==null, Views<=9",
			`"notes".title ILIKE $1 ESCAPE '\' AND "notes".views >= $2 AND LOWER("author".email) COLLATE "C" = LOWER($3) AND "notes".archived_at IS NULL AND "notes".views <= $4`,
			[]any{"%pool%", int64(3), "A@B.C", int64(9)},
		},
	}

	for _, c := range cases {
		t.Run(c.filters, func(t *testing.T) {
			cond, args, err := selectNotes.Where(mustFilters(t, c.filters), 1)
			require.NoError(t, err)

			assert.Equal(t, c.cond, cond)
			assert.Equal(t, c.args, args)
		})
	}

	t.Run("placeholders start from the given number", func(t *testing.T) {
		cond, _, err := selectNotes.Where(mustFilters(t, "Views>1,Views<5"), 3)
		require.NoError(t, err)
		assert.Equal(t, `"notes".views > $3 AND "notes".views < $4`, cond)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, err := selectNotes.Where(sieve.FilterExpression{{Field: "Bogus", Operator: sieve.Equals, Value: "x"}}, 1)

		parseErr, ok := sieve.IsParseError(err)
		require.True(t, ok)
		assert.Equal(t, "Bogus", parseErr.Field)
	})
}

func TestOrderBy(t *testing.T) {
	cases := []struct {
		sorts    string
		expected string
	}{
		{"", `"notes".created_at, "notes".id`},
		{"Title", `"notes".title COLLATE "C" ASC NULLS LAST, "notes".created_at, "notes".id`},
		{"-Archived,Views", `"notes".archived_at DESC NULLS FIRST, "notes".views ASC NULLS LAST, "notes".created_at, "notes".id`},
		{"-Author.Email", `"author".email COLLATE "C" DESC NULLS FIRST, "notes".created_at, "notes".id`},
	}

	for _, c := range cases {
		t.Run(c.sorts, func(t *testing.T) {
			orderBy, err := selectNotes.OrderBy(mustSorts(t, c.sorts))
			require.NoError(t, err)
			assert.Equal(t, c.expected, orderBy)
		})
	}
}

func TestPage(t *testing.T) {
	q, err := selectNotes.Page(mustFilters(t, "Title@=pool,Views>=3"), mustSorts(t, "-Created"), 10, 5)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "notes".id, "notes".title, COUNT(*) OVER() AS total`+
			` FROM "notes" LEFT JOIN "users" AS "author" ON "author".id = "notes".author_id`+
			` WHERE "notes".title ILIKE $1 ESCAPE '\' AND "notes".views >= $2`+
			` ORDER BY "notes".created_at DESC NULLS FIRST, "notes".created_at, "notes".id`+
			` LIMIT $3 OFFSET $4;`,
		q.SQL,
	)
	assert.Equal(t, []any{"%pool%", int64(3), 5, 10}, q.Args)

	t.Run("without filters", func(t *testing.T) {
		q, err := selectNotes.Page(nil, nil, 0, 5)
		require.NoError(t, err)

		assert.Equal(t,
			`SELECT "notes".id, "notes".title, COUNT(*) OVER() AS total`+
				` FROM "notes" LEFT JOIN "users" AS "author" ON "author".id = "notes".author_id`+
				` ORDER BY "notes".created_at, "notes".id LIMIT $1 OFFSET $2;`,
			q.SQL,
		)
		assert.Equal(t, []any{5, 0}, q.Args)
	})
}

func TestCountAndByID(t *testing.T) {
	q, err := selectNotes.Count(mustFilters(t, "Views>3"))
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM "notes" LEFT JOIN "users" AS "author" ON "author".id = "notes".author_id WHERE "notes".views > $1;`, q.SQL)
	assert.Equal(t, []any{int64(3)}, q.Args)

	id := uuid.New()
	q = selectNotes.ByID(id)
	assert.Equal(t, `SELECT "notes".id, "notes".title FROM "notes" LEFT JOIN "users" AS "author" ON "author".id = "notes".author_id WHERE "notes".id = $1;`, q.SQL)
	assert.Equal(t, []any{id}, q.Args)
}

func TestConvertError(t *testing.T) {
	conflict := Error.NewStatusError("already exists", http.StatusConflict)
	q := New("INSERT INTO notes VALUES ($1);", 1).OnViolation("notes_title_key", conflict)

	cases := []struct {
		name     string
		err      error
		expected *Error.Status
	}{
		{"no rows", pgx.ErrNoRows, Error.StatusNotFound},
		{"timeout", context.DeadlineExceeded, Error.StatusTimeout},
		{"bound constraint", &pgconn.PgError{Code: "23505", ConstraintName: "notes_title_key"}, conflict},
		{"unbound constraint", &pgconn.PgError{Code: "23503", ConstraintName: "notes_author_id_fkey"}, Error.StatusInternalError},
		{"other", errors.New("connection reset"), Error.StatusInternalError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Same(t, c.expected, q.ConvertError(c.err))
		})
	}
}
