package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that the configuration is valid. Errors are returned as
// criterio.FieldErrors keyed by the YAML path of the offending field.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("log_level", c.LogLevel, isLogLevel),
		criterio.Run("toasts.grace_period", c.Toasts.GracePeriod, isPositiveDuration),
		criterio.Run("toasts.error_duration", c.Toasts.ErrorDuration, isPositiveDuration),
		criterio.Run("toasts.error_title_color", c.Toasts.ErrorTitleColor, IsColor),
		criterio.Run("toasts.max_visible", c.Toasts.MaxVisible, isPositiveInt),
	)
}

// IsColor validates a #rgb or #rrggbb color.
func IsColor(s string) error {
	if !hexColor.MatchString(s) {
		return fmt.Errorf("invalid color %q, expected #rgb or #rrggbb", s)
	}
	return nil
}

func isLogLevel(s string) error {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return fmt.Errorf("invalid log level %q", s)
	}
	return nil
}

func isPositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive, got %s", d)
	}
	return nil
}

func isPositiveInt(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}
