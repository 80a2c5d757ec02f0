package controller

import (
	"hoa/packages/common/logger"
	"hoa/packages/common/validation"
	"hoa/packages/core"
	"hoa/packages/presentation/api/http/middleware"
	"hoa/packages/presentation/api/http/request"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var Logger = logger.NewSource("CONTROLLER", logger.Default)

// Value of the "roles" claim which grants board member permissions.
// Set by the router from config.
var BoardRole = "board"

func BindAndValidate[T any](ctx echo.Context) (*T, error) {
	reqMeta := request.FindMetadata(ctx)

	Logger.Trace("Binding and validating request...", reqMeta)

	dest := new(T)

	if err := ctx.Bind(dest); err != nil {
		Logger.Error("Failed to bind request", err.Error(), reqMeta)
		return nil, err
	}

	if err := validation.Struct(dest); err != nil {
		Logger.Trace("Request validation failed: "+err.Error(), reqMeta)
		return nil, ConvertErrorStatusToHTTP(err)
	}

	Logger.Trace("Binding and validating request: OK", reqMeta)

	return dest, nil
}

// Parses path parameter as uuid.
func ParseID(ctx echo.Context, param string) (uuid.UUID, error) {
	id, err := validation.UUID(ctx.Param(param))
	if err != nil {
		return uuid.Nil, ConvertErrorStatusToHTTP(err.Describe("Path parameter '"+param+"'", "a valid uuid"))
	}
	return id, nil
}

func IsBoardMember(ctx echo.Context) bool {
	claims, ok := middleware.GetClaims(ctx)
	return ok && claims.HasRole(BoardRole)
}

// Returns id of authenticated user.
// Route must be secured via middleware.Authenticate.
func UserID(ctx echo.Context) (uuid.UUID, error) {
	id, ok := middleware.GetUserID(ctx)
	if !ok {
		Logger.Error(
			"Failed to get user id",
			"Route must be secured via Authenticate middleware",
			request.FindMetadata(ctx),
		)
		return uuid.Nil, echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
	}
	return id, nil
}

var errNotOwner = echo.NewHTTPError(
	http.StatusForbidden,
	"Only the author or board members can modify this resource",
)

// Board members can modify everything.
// Other residents can modify only entities they have created,
// entities without owner are available only for board members.
func Authorize(ctx echo.Context, entity any) error {
	if IsBoardMember(ctx) {
		return nil
	}

	userID, err := UserID(ctx)
	if err != nil {
		return err
	}

	if owned, ok := entity.(core.Owned); ok && owned.CreatedBy() == userID {
		return nil
	}

	Logger.Info("Access denied: user "+userID.String()+" isn't the owner", request.FindMetadata(ctx))

	return errNotOwner
}
