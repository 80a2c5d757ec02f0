package commentdto

import "github.com/google/uuid"

type Payload struct {
	PostID uuid.UUID `json:"postId" validate:"required"`
	Body   string    `json:"body" validate:"required,max=5000"`
}
