package commenttable

import (
	"hoa/packages/core/comment"
	"hoa/packages/core/user"
	"hoa/packages/infrastructure/DB/postgres/query"
	"hoa/packages/infrastructure/DB/postgres/table"
	usertable "hoa/packages/infrastructure/DB/postgres/table/user"

	"github.com/google/uuid"
)

var columns = append(
	query.Columns(comment.Table,
		"id",
		"post_id",
		"body",
		"author_id",
		"created_at",
	),
	usertable.Columns(comment.AuthorJoin.Alias)...,
)

func scanner() ([]any, func() *comment.Comment) {
	c := new(comment.Comment)
	author := new(usertable.Nullable)

	dests := append([]any{
		&c.ID,
		&c.PostID,
		&c.Body,
		&c.AuthorID,
		&c.CreatedAt,
	}, author.Dests()...)

	return dests, func() *comment.Comment {
		c.Author = author.User()
		return c
	}
}

type Manager struct {
	*table.Table[comment.Comment]
}

func NewManager() *Manager {
	return &Manager{
		Table: table.New("comment", table.Schema[comment.Comment]{
			Select:  query.NewSelect(comment.Fields, columns...),
			Scanner: scanner,
			ID: func(c *comment.Comment) uuid.UUID {
				return c.ID
			},
			Insert: func(c *comment.Comment) *query.Query {
				return query.New(
					`INSERT INTO "comments" (id, post_id, body, author_id, created_at)
					VALUES ($1, $2, $3, $4, $5);`,
					c.ID, c.PostID, c.Body, c.AuthorID, c.CreatedAt,
				).
					OnViolation("comments_post_id_fkey", comment.ErrPostNotFound).
					OnViolation("comments_author_id_fkey", user.ErrNotRegistered)
			},
			Update: func(c *comment.Comment) *query.Query {
				return query.New(`UPDATE "comments" SET body = $2 WHERE id = $1;`, c.ID, c.Body)
			},
			Delete: func(id uuid.UUID) []*query.Query {
				return []*query.Query{query.New(`DELETE FROM "comments" WHERE id = $1;`, id)}
			},
		}),
	}
}
