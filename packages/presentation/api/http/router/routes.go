package router

import (
	_ "hoa/docs"
	"hoa/packages/common/config"
	"hoa/packages/common/logger"
	controller "hoa/packages/presentation/api/http/controllers"
	Cache "hoa/packages/presentation/api/http/controllers/cache"
	Comment "hoa/packages/presentation/api/http/controllers/comment"
	Docs "hoa/packages/presentation/api/http/controllers/docs"
	Event "hoa/packages/presentation/api/http/controllers/event"
	Meeting "hoa/packages/presentation/api/http/controllers/meeting"
	Minutes "hoa/packages/presentation/api/http/controllers/minutes"
	Post "hoa/packages/presentation/api/http/controllers/post"
	User "hoa/packages/presentation/api/http/controllers/user"
	hoamiddleware "hoa/packages/presentation/api/http/middleware"
	"hoa/packages/presentation/api/http/request"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var log = logger.NewSource("ROUTER", logger.Default)

const rootPath = ""

func initSentry() {
	if config.Secret.SentryDSN == "" {
		log.Info("Sentry DSN isn't set, error tracking disabled", nil)
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              config.Secret.SentryDSN,
		Debug:            config.Debug.Enabled,
		ServerName:       config.App.ServiceID,
		AttachStacktrace: true,
	}); err != nil {
		log.Panic("Sentry initialization failed", err.Error(), nil)
	}
}

// Skips nil middlewares, e.g. disabled rate limiter.
func use(mws ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	result := make([]echo.MiddlewareFunc, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			result = append(result, mw)
		}
	}
	return result
}

func Create() *echo.Echo {
	initSentry()

	controller.BoardRole = config.Auth.BoardRole

	router := echo.New()

	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = handleHttpError
	router.JSONSerializer = serializer{}
	router.Binder = &binder{}

	cors := middleware.CORSConfig{
		Skipper:      middleware.DefaultSkipper,
		AllowOrigins: config.HTTP.AllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
		},
		ExposeHeaders: []string{
			controller.PaginationHeader,
			echo.HeaderXRequestID,
		},
	}

	router.Use(hoamiddleware.SecurityHeaders)
	router.Use(middleware.BodyLimit("1M"))
	if config.HTTP.Secured {
		router.Use(middleware.HTTPSRedirect())
	}
	router.Use(middleware.CORSWithConfig(cors))
	router.Use(middleware.RequestID())
	router.Use(request.Middleware)
	router.Use(hoamiddleware.CheckOrigin(config.HTTP.AllowedOrigins))
	router.Use(sentryecho.New(sentryecho.Options{
		Repanic: true,
	}))
	router.Use(use(hoamiddleware.RateLimiter(config.HTTP.RateLimit, config.HTTP.RateLimitBurst))...)

	if config.Debug.Enabled {
		router.Use(middleware.Logger())
	}

	authenticate := hoamiddleware.Authenticate(config.Secret.AccessTokenPublicKey, config.Auth.Issuer)
	boardOnly := hoamiddleware.RequireRole(config.Auth.BoardRole)

	read := hoamiddleware.Sensitivity(hoamiddleware.InsignificantEndpoint)
	write := []echo.MiddlewareFunc{
		hoamiddleware.Sensitivity(hoamiddleware.DefaultEndpoint),
		hoamiddleware.WriteRateLimiter(),
		authenticate,
	}
	boardWrite := []echo.MiddlewareFunc{
		hoamiddleware.Sensitivity(hoamiddleware.SensitiveEndpoint),
		hoamiddleware.WriteRateLimiter(),
		authenticate,
		boardOnly,
	}

	apiV1 := router.Group("/v1", hoamiddleware.NoCache)

	events := apiV1.Group("/events")

	events.GET(rootPath, Event.List, read)
	events.GET("/:id", Event.Get, read)
	events.POST(rootPath, Event.Create, write...)
	events.PUT("/:id", Event.Update, write...)
	events.DELETE("/:id", Event.Delete, write...)

	posts := apiV1.Group("/posts")

	posts.GET(rootPath, Post.List, read)
	posts.GET("/:id", Post.Get, read)
	posts.GET("/:id/comments", Post.ListComments, read)
	posts.POST(rootPath, Post.Create, write...)
	posts.PUT("/:id", Post.Update, write...)
	posts.DELETE("/:id", Post.Delete, write...)

	comments := apiV1.Group("/comments")

	comments.GET(rootPath, Comment.List, read)
	comments.GET("/:id", Comment.Get, read)
	comments.POST(rootPath, Comment.Create, write...)
	comments.PUT("/:id", Comment.Update, write...)
	comments.DELETE("/:id", Comment.Delete, write...)

	meetings := apiV1.Group("/meetings")

	meetings.GET(rootPath, Meeting.List, read)
	meetings.GET("/:id", Meeting.Get, read)
	meetings.GET("/:id/minutes", Meeting.ListMinutes, read)
	meetings.POST(rootPath, Meeting.Create, boardWrite...)
	meetings.PUT("/:id", Meeting.Update, boardWrite...)
	meetings.DELETE("/:id", Meeting.Delete, boardWrite...)

	minutes := apiV1.Group("/minutes")

	minutes.GET(rootPath, Minutes.List, read)
	minutes.GET("/:id", Minutes.Get, read)
	minutes.POST(rootPath, Minutes.Create, boardWrite...)
	minutes.PUT("/:id", Minutes.Update, boardWrite...)
	minutes.DELETE("/:id", Minutes.Delete, boardWrite...)

	users := apiV1.Group("/users")

	users.GET(rootPath, User.List, read)
	users.GET("/:id", User.Get, read)
	users.POST(rootPath, User.Create, boardWrite...)
	users.PUT("/:id", User.Update, boardWrite...)
	users.DELETE("/:id", User.Delete, boardWrite...)

	apiV1.DELETE("/cache", Cache.Drop, boardWrite...)

	docs := router.Group("/docs")

	docs.GET("", Docs.Index)
	docs.GET("/*", Docs.Swagger)

	return router
}
