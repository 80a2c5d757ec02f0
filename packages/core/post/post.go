package post

import (
	PostDTO "hoa/packages/core/post/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/core/user"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bulletin board post.
type Post struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	AuthorID  uuid.UUID  `json:"authorId"`
	Author    *user.User `json:"author,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

const Table = "posts"

var AuthorJoin = sieve.Join{
	Table: user.Table,
	Alias: "author",
	On:    `"author".id = "posts".author_id`,
}

var Fields = newFields()

func newFields() *sieve.Registry[Post] {
	r := sieve.NewRegistry[Post]("post", Table).
		UUID("Id", "id", func(p Post) uuid.UUID { return p.ID }).
		String("Title", "title", func(p Post) string { return p.Title }).
		String("Body", "body", func(p Post) string { return p.Body }, sieve.NoSort).
		UUID("AuthorId", "author_id", func(p Post) uuid.UUID { return p.AuthorID }).
		Time("Created", "created_at", func(p Post) time.Time { return p.CreatedAt }).
		Time("Updated", "updated_at", func(p Post) time.Time { return p.UpdatedAt })

	sieve.Relate(r, "Author", AuthorJoin, func(p Post) *user.User { return p.Author }, user.Fields)

	return r.Alias("AuthorEmail", "Author.Email")
}

func New(payload *PostDTO.Payload, authorID uuid.UUID) *Post {
	now := time.Now().UTC()

	p := &Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		CreatedAt: now,
	}
	p.Apply(payload)
	p.UpdatedAt = now

	return p
}

func (p *Post) Apply(payload *PostDTO.Payload) {
	p.Title = strings.TrimSpace(payload.Title)
	p.Body = payload.Body
	p.UpdatedAt = time.Now().UTC()
}

func (p *Post) CreatedBy() uuid.UUID {
	return p.AuthorID
}
