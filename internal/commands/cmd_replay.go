package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/toasts/internal/core/notify"
	"github.com/hay-kot/toasts/internal/core/replay"
	"github.com/hay-kot/toasts/pkg/iojson"
	"github.com/hay-kot/toasts/pkg/ioyaml"
)

type ReplayCmd struct {
	flags  *Flags
	reader ioyaml.FileReader[replay.Scenario]
	json   bool
}

// NewReplayCmd creates a new replay command.
func NewReplayCmd(flags *Flags) *ReplayCmd {
	return &ReplayCmd{flags: flags}
}

// Register adds the replay command to the application.
func (cmd *ReplayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "replay",
		Usage:     "Run a notification scenario headlessly",
		UsageText: "toasts replay [options] [file]",
		Description: `Runs a YAML scenario of timed create, edit and delete steps in real time
against a notification manager whose sink prints every render, update, hide
and detach instruction.

Example scenario:

  settle: 2s
  steps:
    - {at: 0s, op: create, ref: upload, info: {title: Uploading, duration: 5s}}
    - {at: 1s, op: edit, ref: upload, info: {message: "50%", icon: null}}
    - {at: 2s, op: delete, ref: upload}`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print step results as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ReplayCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 0 {
		cmd.reader.SetPath(c.Args().First())
	}

	scenario, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	cfg, err := cmd.flags.Config()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out := c.Root().Writer
	sinkOut := out
	if cmd.json {
		sinkOut = c.Root().ErrWriter
	}

	sink := notify.LogSink{
		Logger: zerolog.New(zerolog.ConsoleWriter{Out: sinkOut, TimeFormat: "15:04:05.000"}).
			With().Timestamp().Logger(),
	}

	notifyPlugin, pluginMgr, err := startPlugins(ctx, cfg, cmd.flags.Hub, sink)
	if err != nil {
		return err
	}
	defer pluginMgr.CloseAll()

	results, err := replay.NewRunner(notifyPlugin.API(), replay.Sleep).Run(ctx, scenario)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	if cmd.json {
		return iojson.Write(out, c.Root().ErrWriter, results)
	}

	p := printer{w: out}
	for _, r := range results {
		switch {
		case r.Error != "":
			p.Errorf("%-8s %-6s %s: %s", r.At, r.Op, r.Ref, r.Error)
		case !r.Found:
			p.Infof("%-8s %-6s %s: not live", r.At, r.Op, r.Ref)
		default:
			p.Successf("%-8s %-6s %s -> %s", r.At, r.Op, r.Ref, r.ID)
		}
	}
	return nil
}
