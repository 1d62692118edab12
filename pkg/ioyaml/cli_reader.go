// Package ioyaml reads YAML (or JSON) command input from a file flag or
// from piped stdin.
package ioyaml

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// FileReader decodes a T from the --file flag, or from stdin when the flag
// is empty and stdin is not a terminal.
type FileReader[T any] struct {
	path  string
	stdin *os.File
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to YAML file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

// SetPath overrides the flag value, e.g. with a positional argument.
func (fr *FileReader[T]) SetPath(path string) {
	fr.path = path
}

func (fr *FileReader[T]) Read() (T, error) {
	var input T

	var reader io.Reader
	if fr.path != "" {
		f, err := os.Open(fr.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		stdin := fr.stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		if term.IsTerminal(int(stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe YAML input")
		}
		reader = stdin
	}

	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(&input); err != nil {
		return input, fmt.Errorf("decode YAML: %w", err)
	}

	return input, nil
}
