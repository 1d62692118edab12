package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hay-kot/toasts/internal/core/logging"
)

// New returns a new logger that writes JSON to the specified file.
// If file is empty, logs are written to stderr so they never mix with
// command output or a terminal UI drawn on stdout.
//
// Every line is also written to each of the extra writers. Writers that
// implement zerolog.LevelWriter receive the line's level, which is how the
// critical log channel taps error lines. Extra writers receive error lines
// even when level is set above error.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string, extra ...io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	if _, err := zerolog.ParseLevel(level); err != nil {
		return zerolog.Logger{}, closer, err
	}

	// File Setup
	var writer io.Writer = os.Stderr
	if file != "" {
		logsDir := filepath.Dir(file)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	l, err := NewWithWriter(level, writer, extra...)
	if err != nil {
		closer()
		return zerolog.Logger{}, func() {}, err
	}
	return l, closer, nil
}

// NewWithWriter returns a JSON logger writing to w and to each of the extra
// writers. Only w is filtered by level; extras always see error lines.
func NewWithWriter(level string, w io.Writer, extra ...io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, err
	}

	if len(extra) > 0 {
		primary := &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: w},
			Level:  lvl,
		}
		w = zerolog.MultiLevelWriter(append([]io.Writer{primary}, extra...)...)
		lvl = min(lvl, zerolog.ErrorLevel)
	}

	l := zerolog.New(w).
		Hook(logging.ContextHook{}).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, nil
}
