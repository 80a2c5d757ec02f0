package core

import (
	"context"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/paging"

	"github.com/google/uuid"
)

// CRUD storage of entities of type T.
// List is served by paging.Source, so filters, sorts and slicing
// are translated into the storage's query.
type Repository[T any] interface {
	paging.Source[T]

	GetByID(ctx context.Context, id uuid.UUID) (*T, *Error.Status)

	Create(ctx context.Context, entity *T) *Error.Status

	Update(ctx context.Context, entity *T) *Error.Status

	Delete(ctx context.Context, id uuid.UUID) *Error.Status
}

// Entity which belongs to the user who created it.
// Only this user and board members can modify it.
type Owned interface {
	CreatedBy() uuid.UUID
}
