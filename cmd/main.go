package main

import (
	"hoa/cmd/app"
)

// @title						HOA community API
// @version					1.0
// @description				Community events, bulletin board, board meetings and their minutes.
// @description				List endpoints accept "filters", "sorts", "page" and "pageSize" query parameters, page metadata is returned in X-Pagination header.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Access token issued by the identity service: "Bearer <token>"
func main() {
	app.Args.Parse()

	app.StartInit()

	app.InitDefault(*app.Args.ConfigPath, app.Args)

	app.InitModules()

	app.InitConnections()

	Router := app.InitRouter()

	app.EndInit()

	app.Start(Router)
}
