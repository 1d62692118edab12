package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/toasts/internal/commands"
	"github.com/hay-kot/toasts/internal/core/faults"
	"github.com/hay-kot/toasts/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{
		Hub:  faults.NewHub(),
		Logs: &logutils.Deferred{},
	}

	app := &cli.Command{
		Name:      "toasts",
		Usage:     "Transient toast notifications with error reporting",
		UsageText: "toasts [global options] command [command options]",
		Description: `toasts manages short-lived notifications: create, edit and delete them,
let them expire, and report panics, failed background tasks and error log
lines as red error toasts.

Run 'toasts demo' for an interactive playground.
Run 'toasts replay <file>' to run a scripted scenario headlessly.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TOASTS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs are printed to stderr on exit when unset)",
				Sources:     cli.EnvVars("TOASTS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TOASTS_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level := flags.LogLevel
			if cfg, err := flags.Config(); err == nil && !c.IsSet("log-level") {
				level = cfg.LogLevel
			}

			if flags.LogFile != "" {
				logger, closer, err := logutils.New(level, flags.LogFile, flags.Hub.LogWriter())
				if err != nil {
					return ctx, fmt.Errorf("setup logger: %w", err)
				}
				log.Logger = logger
				logCloser = closer
				return ctx, nil
			}

			logger, err := logutils.NewWithWriter(level, flags.Logs, flags.Hub.LogWriter())
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			flags.Hub.Wait()

			if logCloser != nil {
				logCloser()
			}
			return flags.Logs.Flush(os.Stderr)
		},
	}

	app = commands.NewDemoCmd(flags).Register(app)
	app = commands.NewReplayCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
