package cachecontroller

import (
	"hoa/packages/infrastructure/cache"
	controller "hoa/packages/presentation/api/http/controllers"
	"hoa/packages/presentation/api/http/request"
	"net/http"

	"github.com/labstack/echo/v4"
)

// @Summary 		Drop cache
// @Description 	Removes all cached list pages. Board members only.
// @ID 				cache-drop
// @Tags			cache
// @Success			204
// @Failure			401,403,500 	{object} 	response.Error
// @Router			/v1/cache [delete]
// @Security		BearerAuth
func Drop(ctx echo.Context) error {
	reqMeta := request.FindMetadata(ctx)

	if !cache.Client.IsConnected() {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := cache.Client.FlushAll(); err != nil {
		controller.Logger.Error("Failed to drop cache", err.Error(), reqMeta)
		return controller.ConvertErrorStatusToHTTP(err)
	}

	controller.Logger.Info("Cache dropped", reqMeta)

	return ctx.NoContent(http.StatusNoContent)
}
