package post

import "hoa/packages/core"

// Deleting a post also deletes all of its comments.
type Repository interface {
	core.Repository[Post]
}
