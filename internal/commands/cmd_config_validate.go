package commands

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/toasts/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "toasts config validate [options]",
				Description: "Loads the configuration file and checks log level, durations, colors and limits.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// ValidationError is one problem found in the configuration.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	_, err := cmd.flags.Config()
	problems := validationErrors(err)

	if cmd.format == "json" {
		out := struct {
			Path   string            `json:"path"`
			Valid  bool              `json:"valid"`
			Errors []ValidationError `json:"errors,omitempty"`
		}{
			Path:   cmd.flags.ConfigPath,
			Valid:  len(problems) == 0,
			Errors: problems,
		}
		if err := iojson.Write(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
		if len(problems) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer{w: c.Root().Writer}
	if len(problems) == 0 {
		p.Successf("Configuration is valid (%s)", cmd.flags.ConfigPath)
		return nil
	}

	for _, prob := range problems {
		if prob.Field != "" {
			p.Errorf("%s: %s", prob.Field, prob.Message)
		} else {
			p.Errorf("%s", prob.Message)
		}
	}
	p.Printf("")
	p.Errorf("%d error(s) found", len(problems))
	return cli.Exit("", 1)
}

// validationErrors flattens a config load error into per-field problems.
func validationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}
