package posttable

import (
	"hoa/packages/core/comment"
	"hoa/packages/core/post"
	"hoa/packages/core/user"
	"hoa/packages/infrastructure/DB/postgres/query"
	"hoa/packages/infrastructure/DB/postgres/table"
	usertable "hoa/packages/infrastructure/DB/postgres/table/user"

	"github.com/google/uuid"
)

var columns = append(
	query.Columns(post.Table,
		"id",
		"title",
		"body",
		"author_id",
		"created_at",
		"updated_at",
	),
	usertable.Columns(post.AuthorJoin.Alias)...,
)

func scanner() ([]any, func() *post.Post) {
	p := new(post.Post)
	author := new(usertable.Nullable)

	dests := append([]any{
		&p.ID,
		&p.Title,
		&p.Body,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	}, author.Dests()...)

	return dests, func() *post.Post {
		p.Author = author.User()
		return p
	}
}

type Manager struct {
	*table.Table[post.Post]
}

func NewManager() *Manager {
	return &Manager{
		Table: table.New("post", table.Schema[post.Post]{
			Select:  query.NewSelect(post.Fields, columns...),
			Scanner: scanner,
			ID: func(p *post.Post) uuid.UUID {
				return p.ID
			},
			Insert: func(p *post.Post) *query.Query {
				return query.New(
					`INSERT INTO "posts" (id, title, body, author_id, created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6);`,
					p.ID, p.Title, p.Body, p.AuthorID, p.CreatedAt, p.UpdatedAt,
				).OnViolation("posts_author_id_fkey", user.ErrNotRegistered)
			},
			Update: func(p *post.Post) *query.Query {
				return query.New(
					`UPDATE "posts" SET title = $2, body = $3, updated_at = $4 WHERE id = $1;`,
					p.ID, p.Title, p.Body, p.UpdatedAt,
				)
			},
			// Post is deleted together with its comments
			Delete: func(id uuid.UUID) []*query.Query {
				return []*query.Query{
					query.New(`DELETE FROM "`+comment.Table+`" WHERE post_id = $1;`, id),
					query.New(`DELETE FROM "posts" WHERE id = $1;`, id),
				}
			},
		}),
	}
}
