package comment

import (
	Error "hoa/packages/common/errors"
	CommentDTO "hoa/packages/core/comment/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/core/user"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"postId"`
	Body      string     `json:"body"`
	AuthorID  uuid.UUID  `json:"authorId"`
	Author    *user.User `json:"author,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

const Table = "comments"

var AuthorJoin = sieve.Join{
	Table: user.Table,
	Alias: "author",
	On:    `"author".id = "comments".author_id`,
}

var Fields = newFields()

func newFields() *sieve.Registry[Comment] {
	r := sieve.NewRegistry[Comment]("comment", Table).
		UUID("Id", "id", func(c Comment) uuid.UUID { return c.ID }).
		UUID("PostId", "post_id", func(c Comment) uuid.UUID { return c.PostID }).
		String("Body", "body", func(c Comment) string { return c.Body }, sieve.NoSort).
		UUID("AuthorId", "author_id", func(c Comment) uuid.UUID { return c.AuthorID }).
		Time("Created", "created_at", func(c Comment) time.Time { return c.CreatedAt })

	sieve.Relate(r, "Author", AuthorJoin, func(c Comment) *user.User { return c.Author }, user.Fields)

	return r.Alias("AuthorEmail", "Author.Email")
}

// Restricts comments to the ones of the given post.
func OfPost(postID uuid.UUID) sieve.FilterClause {
	return sieve.FilterClause{
		Field:    "PostId",
		Operator: sieve.Equals,
		Value:    postID,
		Raw:      "PostId==" + postID.String(),
	}
}

func New(payload *CommentDTO.Payload, authorID uuid.UUID) *Comment {
	return &Comment{
		ID:        uuid.New(),
		PostID:    payload.PostID,
		Body:      payload.Body,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
}

// Only body can be changed, comment can't be moved to another post.
func (c *Comment) Apply(payload *CommentDTO.Payload) {
	c.Body = payload.Body
}

func (c *Comment) CreatedBy() uuid.UUID {
	return c.AuthorID
}

var ErrPostNotFound = Error.NewStatusError(
	"Can't comment post which doesn't exist",
	http.StatusUnprocessableEntity,
)
