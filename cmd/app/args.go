package app

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
)

type appArgs struct {
	Debug      *bool
	ShowLogs   *bool
	TraceLogs  *bool
	ConfigPath *string
}

var Args = new(appArgs)

func (a *appArgs) Parse() {
	parser := argparse.NewParser(
		"hoa",
		"HOA community API: events, bulletin board, board meetings and their minutes",
	)

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

	if err := parser.Parse(os.Args); err != nil {
		fmt.Println(parser.Usage(err))
		os.Exit(1)
	}
}

// Overrides config by command line flags.
// Flags can only enable options, not disable them.
func (a *appArgs) Apply(debug *bool, showLogs *bool, traceLogs *bool) {
	*debug = *debug || *a.Debug
	*showLogs = *showLogs || *a.ShowLogs
	*traceLogs = *traceLogs || *a.TraceLogs
}
