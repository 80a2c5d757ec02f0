package postcontroller

import (
	"context"
	Error "hoa/packages/common/errors"
	"hoa/packages/core/comment"
	CommentDTO "hoa/packages/core/comment/DTO"
	"hoa/packages/core/post"
	PostDTO "hoa/packages/core/post/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/DB"
	controller "hoa/packages/presentation/api/http/controllers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var resource = &controller.Resource[post.Post, PostDTO.Payload]{
	Processor: sieve.New(post.Fields),
	Repo:      DB.Database.Posts,
	New:       post.New,
	Apply:     (*post.Post).Apply,
}

var comments = &controller.Resource[comment.Comment, CommentDTO.Payload]{
	Processor: sieve.New(comment.Fields),
	Repo:      DB.Database.Comments,
}

func postExists(ctx context.Context, id uuid.UUID) *Error.Status {
	_, err := DB.Database.Posts.GetByID(ctx, id)
	return err
}

// @Summary 		List bulletin board posts
// @Description 	Page metadata is returned in X-Pagination header.
// @ID 				posts-list
// @Tags			posts
// @Param 			filters query string false "Filters, e.g. AuthorEmail==jane@example.com"
// @Param 			sorts query string false "Sorts, e.g. -Created"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	post.Post
// @Failure			400,500 		{object} 	response.ParseError
// @Router			/v1/posts [get]
func List(ctx echo.Context) error {
	return resource.List(ctx)
}

// @Summary 		List comments of the post
// @Description 	Page metadata is returned in X-Pagination header.
// @ID 				posts-comments-list
// @Tags			posts,comments
// @Param 			id path string true "Post id"
// @Param 			filters query string false "Filters, e.g. Body@=*parking"
// @Param 			sorts query string false "Sorts, e.g. Created"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	comment.Comment
// @Failure			400,404,500 	{object} 	response.ParseError
// @Router			/v1/posts/{id}/comments [get]
func ListComments(ctx echo.Context) error {
	return comments.ListOf(postExists, comment.OfPost)(ctx)
}

// @Summary 		Get post
// @ID 				posts-get
// @Tags			posts
// @Param 			id path string true "Post id"
// @Produce			json
// @Success			200 			{object} 	post.Post
// @Failure			400,404,500 	{object} 	response.Error
// @Router			/v1/posts/{id} [get]
func Get(ctx echo.Context) error {
	return resource.Get(ctx)
}

// @Summary 		Create post
// @ID 				posts-create
// @Tags			posts
// @Param 			Post body postdto.Payload true "Post"
// @Accept			json
// @Produce			json
// @Success			201 				{object} 	post.Post
// @Failure			400,401,403,500 	{object} 	response.Error
// @Router			/v1/posts [post]
// @Security		BearerAuth
func Create(ctx echo.Context) error {
	return resource.Create(ctx)
}

// @Summary 		Update post
// @Description 	Only the author and board members can update post.
// @ID 				posts-update
// @Tags			posts
// @Param 			id path string true "Post id"
// @Param 			Post body postdto.Payload true "Post"
// @Accept			json
// @Produce			json
// @Success			200 					{object} 	post.Post
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/posts/{id} [put]
// @Security		BearerAuth
func Update(ctx echo.Context) error {
	return resource.Update(ctx)
}

// @Summary 		Delete post
// @Description 	Comments of the post are deleted as well. Only the author and board members can delete post.
// @ID 				posts-delete
// @Tags			posts
// @Param 			id path string true "Post id"
// @Success			204
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/posts/{id} [delete]
// @Security		BearerAuth
func Delete(ctx echo.Context) error {
	return resource.Delete(ctx)
}
