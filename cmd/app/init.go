package app

import (
	"context"
	"hoa/packages/common/config"
	"hoa/packages/common/logger"
	"hoa/packages/infrastructure/DB"
	"hoa/packages/infrastructure/cache"
	"hoa/packages/infrastructure/email"
	"hoa/packages/presentation/api/http/router"
	"time"

	"github.com/labstack/echo/v4"
)

func StartInit() {
	// All init logs will be shown anyway
	if err := logger.Default.NewForwarding(logger.Stdout); err != nil {
		panic(err.Error())
	}
}

func EndInit() {
	if !config.App.ShowLogs {
		if err := logger.Default.RemoveForwarding(logger.Stdout); err != nil {
			panic(err.Error())
		}
	}
}

// Loads config, applies command line flags and starts file logger.
func InitDefault(configPath string, args *appArgs) {
	config.Init(configPath)

	if args != nil {
		args.Apply(&config.Debug.Enabled, &config.App.ShowLogs, &config.App.TraceLogsEnabled)
	}

	logger.Default.Init(config.App.ServiceID)

	logger.Debug.Store(config.Debug.Enabled)
	logger.Trace.Store(config.App.TraceLogsEnabled)

	if err := logger.Default.Start(config.App.LogsDir); err != nil {
		panic(err.Error())
	}
}

func InitModules() {
	appLogger.Info("Initializing modules...", nil)

	if err := email.Run(); err != nil {
		appLogger.Fatal("Failed to start mailer", err.Error(), nil)
	}

	appLogger.Info("Initializing modules: OK", nil)
}

func InitConnections() {
	appLogger.Info("Initializing connections...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	cache.Client.Connect()
	DB.Database.Connect(ctx)

	appLogger.Info("Initializing connections: OK", nil)
}

func InitRouter() *echo.Echo {
	appLogger.Info("Initializing router...", nil)

	Router := router.Create()

	appLogger.Info("Initializing router: OK", nil)

	return Router
}
