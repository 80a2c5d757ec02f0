package commentcontroller

import (
	"hoa/packages/core/comment"
	CommentDTO "hoa/packages/core/comment/DTO"
	"hoa/packages/core/sieve"
	"hoa/packages/infrastructure/DB"
	controller "hoa/packages/presentation/api/http/controllers"

	"github.com/labstack/echo/v4"
)

var resource = &controller.Resource[comment.Comment, CommentDTO.Payload]{
	Processor: sieve.New(comment.Fields),
	Repo:      DB.Database.Comments,
	New:       comment.New,
	Apply:     (*comment.Comment).Apply,
}

// @Summary 		List comments
// @Description 	Comments of all posts. Page metadata is returned in X-Pagination header.
// @ID 				comments-list
// @Tags			comments
// @Param 			filters query string false "Filters, e.g. PostId==<uuid>"
// @Param 			sorts query string false "Sorts, e.g. -Created"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	comment.Comment
// @Failure			400,500 		{object} 	response.ParseError
// @Router			/v1/comments [get]
func List(ctx echo.Context) error {
	return resource.List(ctx)
}

// @Summary 		Get comment
// @ID 				comments-get
// @Tags			comments
// @Param 			id path string true "Comment id"
// @Produce			json
// @Success			200 			{object} 	comment.Comment
// @Failure			400,404,500 	{object} 	response.Error
// @Router			/v1/comments/{id} [get]
func Get(ctx echo.Context) error {
	return resource.Get(ctx)
}

// @Summary 		Comment post
// @ID 				comments-create
// @Tags			comments
// @Param 			Comment body commentdto.Payload true "Comment"
// @Accept			json
// @Produce			json
// @Success			201 					{object} 	comment.Comment
// @Failure			400,401,403,422,500 	{object} 	response.Error
// @Router			/v1/comments [post]
// @Security		BearerAuth
func Create(ctx echo.Context) error {
	return resource.Create(ctx)
}

// @Summary 		Update comment
// @Description 	Comment can't be moved to another post. Only the author and board members can update comment.
// @ID 				comments-update
// @Tags			comments
// @Param 			id path string true "Comment id"
// @Param 			Comment body commentdto.Payload true "Comment"
// @Accept			json
// @Produce			json
// @Success			200 					{object} 	comment.Comment
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/comments/{id} [put]
// @Security		BearerAuth
func Update(ctx echo.Context) error {
	return resource.Update(ctx)
}

// @Summary 		Delete comment
// @Description 	Only the author and board members can delete comment.
// @ID 				comments-delete
// @Tags			comments
// @Param 			id path string true "Comment id"
// @Success			204
// @Failure			400,401,403,404,500 	{object} 	response.Error
// @Router			/v1/comments/{id} [delete]
// @Security		BearerAuth
func Delete(ctx echo.Context) error {
	return resource.Delete(ctx)
}
