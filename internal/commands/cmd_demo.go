package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/toasts/internal/tui"
)

type DemoCmd struct {
	flags *Flags
}

// NewDemoCmd creates a new demo command.
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Register adds the demo command to the application.
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Interactive toast playground",
		UsageText: "toasts demo",
		Description: `Opens a full-screen demo that renders notifications in the lower-right corner.

Keys create, edit and delete toasts, and trigger a recovered panic, a failing
background task and an error log line to show the error reporting adapters.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *DemoCmd) run(ctx context.Context, _ *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("demo requires an interactive terminal")
	}

	cfg, err := cmd.flags.Config()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := tui.NewSink()
	notifyPlugin, pluginMgr, err := startPlugins(ctx, cfg, cmd.flags.Hub, sink)
	if err != nil {
		return err
	}
	defer pluginMgr.CloseAll()

	m := tui.New(ctx, tui.Options{
		API:        notifyPlugin.API(),
		Hub:        cmd.flags.Hub,
		Logger:     log.Logger,
		MaxVisible: cfg.Toasts.MaxVisible,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	go sink.Forward(ctx, p.Send)

	_, err = p.Run()
	cancel()
	cmd.flags.Hub.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run demo: %w", err)
	}
	return nil
}
