package main

import (
	"context"
	"fmt"
	"hoa/cmd/app"
	"hoa/packages/common/config"
	"hoa/packages/common/logger"
	"hoa/packages/infrastructure/DB"
	"os"
	"strconv"
	"time"

	"github.com/akamensky/argparse"
)

var migrateLogger = logger.NewSource("MIGRATE", logger.Default)

var args = new(migrateArgs)

func main() {
	args.Parse()

	app.StartInit()

	config.Init(*args.ConfigPath)

	if *args.Debug {
		config.Debug.Enabled = true
	}
	if *args.ShowLogs {
		config.App.ShowLogs = true
	}
	if *args.TraceLogs {
		config.App.TraceLogsEnabled = true
	}

	// Tables may not exist yet, so there is nothing to verify
	config.DB.SkipPostConnection = true

	logger.Default.Init(config.App.ServiceID)

	logger.Debug.Store(config.Debug.Enabled)
	logger.Trace.Store(config.App.TraceLogsEnabled)

	if err := logger.Default.Start(config.App.LogsDir); err != nil {
		panic(err.Error())
	}
	defer func() {
		if err := logger.Default.Stop(); err != nil {
			fmt.Println("Failed to stop logger: " + err.Error())
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	DB.Database.Connect(ctx)

	app.EndInit()

	code := migrateDB(*args.Steps)

	if err := DB.Database.Disconnect(); err != nil {
		migrateLogger.Error("Failed to disconnect from DB", err.Error(), nil)
	}

	if code != 0 {
		logger.Default.Stop()
		os.Exit(code)
	}
}

func migrateDB(steps string) int {
	var err error

	migrate := DB.Database.Migrate()

	switch steps {
	case "Up", "up":
		err = migrate.Up()
	case "Down", "down":
		err = migrate.Down()
	default:
		n, e := strconv.Atoi(steps)
		if e != nil {
			println("Invalid 'steps' argument value. Expected: number or 'Up' or 'Down'. Got: " + steps)
			return 1
		}

		err = migrate.Steps(n)
	}

	if err != nil {
		println("Failed to apply migration.\n" + err.Error())
		return 1
	}

	return 0
}

type migrateArgs struct {
	Debug      *bool
	ShowLogs   *bool
	TraceLogs  *bool
	ConfigPath *string
	Steps      *string
}

func (a *migrateArgs) Parse() {
	parser := argparse.NewParser("hoa-migrate", "Application for applying database migrations to HOA DB")

	a.Debug = parser.Flag("d", "debug", &argparse.Options{
		Help: "Enable debug mode",
	})
	a.ShowLogs = parser.Flag("l", "show-logs", &argparse.Options{
		Help: "Show logs in terminal",
	})
	a.TraceLogs = parser.Flag("t", "trace-logs", &argparse.Options{
		Help: "Enable trace logs",
	})
	a.ConfigPath = parser.String("c", "config", &argparse.Options{
		Default: "hoa.config.yaml",
		Help:    "Path to the config file",
	})
	a.Steps = parser.String("s", "steps", &argparse.Options{
		Required: true,
		Help: "(Required) Amount of database migration steps. Valid values:\n" +
			"\t\t\t- Up: Apply all pending migrations\n" +
			"\t\t\t- Down: Migrate back on 1 version\n" +
			"\t\t\t- N: Number, if N > 0 then will migrate forward on N versions, if N < 0 then will migrate back on N versions",
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Println(parser.Usage(err))
		os.Exit(1)
	}
}
