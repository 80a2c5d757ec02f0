package docscontroller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Bearer token entered in UI survives page reloads,
// operations are collapsed since list endpoints share the same parameters.
var swaggerHandler = echoSwagger.EchoWrapHandler(
	echoSwagger.PersistAuthorization(true),
	echoSwagger.DocExpansion("none"),
)

// @Summary 		This page
// @Description 	HOA API documentation (Swagger UI)
// @ID 				api-docs
func Swagger(ctx echo.Context) error {
	return swaggerHandler(ctx)
}

// Redirects bare docs path to Swagger UI index page.
func Index(ctx echo.Context) error {
	return ctx.Redirect(http.StatusMovedPermanently, "/docs/index.html")
}
