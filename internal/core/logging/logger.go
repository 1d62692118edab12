package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field that names the emitting component.
const ComponentKey = "cmp"

// Component creates a new logger with a component identifier. The logger
// is derived from the global logger at call time, so create component
// loggers after the global logger is configured.
func Component(name string) zerolog.Logger {
	return log.With().Str(ComponentKey, name).Logger()
}
