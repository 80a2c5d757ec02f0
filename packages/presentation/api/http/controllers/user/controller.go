package usercontroller

import (
	"hoa/packages/core/sieve"
	"hoa/packages/core/user"
	UserDTO "hoa/packages/core/user/DTO"
	"hoa/packages/infrastructure/DB"
	controller "hoa/packages/presentation/api/http/controllers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var resource = &controller.Resource[user.User, UserDTO.Payload]{
	Processor: sieve.New(user.Fields),
	Repo:      DB.Database.Users,
	New: func(payload *UserDTO.Payload, _ uuid.UUID) *user.User {
		return user.New(payload)
	},
	Apply: (*user.User).Apply,
}

// @Summary 		List residents
// @Description 	Page metadata is returned in X-Pagination header.
// @ID 				users-list
// @Tags			users
// @Param 			filters query string false "Filters, e.g. Unit==12B,IsBoardMember==true"
// @Param 			sorts query string false "Sorts, e.g. LastName,FirstName"
// @Param 			page query int false "Page number, starts from 1"
// @Param 			pageSize query int false "Page size"
// @Produce			json
// @Success			200 			{array} 	user.User
// @Failure			400,500 		{object} 	response.ParseError
// @Router			/v1/users [get]
func List(ctx echo.Context) error {
	return resource.List(ctx)
}

// @Summary 		Get resident
// @ID 				users-get
// @Tags			users
// @Param 			id path string true "User id"
// @Produce			json
// @Success			200 			{object} 	user.User
// @Failure			400,404,500 	{object} 	response.Error
// @Router			/v1/users/{id} [get]
func Get(ctx echo.Context) error {
	return resource.Get(ctx)
}

// @Summary 		Register resident
// @Description 	Id of the created user must be used as subject of access tokens. Board members only.
// @ID 				users-create
// @Tags			users
// @Param 			User body userdto.Payload true "User"
// @Accept			json
// @Produce			json
// @Success			201 					{object} 	user.User
// @Failure			400,401,403,409,500 	{object} 	response.Error
// @Router			/v1/users [post]
// @Security		BearerAuth
func Create(ctx echo.Context) error {
	return resource.Create(ctx)
}

// @Summary 		Update resident
// @Description 	Board members only.
// @ID 				users-update
// @Tags			users
// @Param 			id path string true "User id"
// @Param 			User body userdto.Payload true "User"
// @Accept			json
// @Produce			json
// @Success			200 						{object} 	user.User
// @Failure			400,401,403,404,409,500 	{object} 	response.Error
// @Router			/v1/users/{id} [put]
// @Security		BearerAuth
func Update(ctx echo.Context) error {
	return resource.Update(ctx)
}

// @Summary 		Remove resident
// @Description 	Resident who has created posts, events or meetings can't be removed. Board members only.
// @ID 				users-delete
// @Tags			users
// @Param 			id path string true "User id"
// @Success			204
// @Failure			400,401,403,404,409,500 	{object} 	response.Error
// @Router			/v1/users/{id} [delete]
// @Security		BearerAuth
func Delete(ctx echo.Context) error {
	return resource.Delete(ctx)
}
