package notifications

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/toasts/internal/core/faults"
	"github.com/hay-kot/toasts/internal/core/notify"
)

const (
	titleSync     = "Error: "
	titleAsync    = "Async error: "
	titleCritical = "Critical error: "
)

// Named is implemented by errors that carry a display name.
type Named interface {
	Name() string
}

// reporter turns fault events into notifications.
type reporter struct {
	api      notify.API
	duration time.Duration
	color    string
	active   func() bool
	log      zerolog.Logger
}

func (r *reporter) reportPanic(e faults.PanicEvent) {
	var name, message string
	switch v := e.Value.(type) {
	case error:
		name, message = errorName(v), v.Error()
	case string:
		name, message = "panic", v
	case nil:
	default:
		name, message = typeName(v), fmt.Sprint(v)
	}
	r.report(titleSync, name, message)
}

func (r *reporter) reportAsync(e faults.AsyncEvent) {
	if e.Err == nil {
		r.log.Debug().Str("task", e.Task).Msg("async event without error ignored")
		return
	}

	name := e.Task
	var named Named
	if errors.As(e.Err, &named) {
		name = named.Name()
	}
	r.report(titleAsync, name, e.Err.Error())
}

func (r *reporter) reportCritical(e faults.LogEvent) {
	if e.Level != zerolog.ErrorLevel && e.Level != zerolog.FatalLevel {
		return
	}

	name := e.Component
	if name == "" {
		name = e.Level.String()
	}
	r.report(titleCritical, name, e.Error)
}

func (r *reporter) report(prefix, name, message string) {
	if name == "" || message == "" {
		r.log.Debug().Str("name", name).Str("message", message).Msg("malformed error event ignored")
		return
	}
	if r.active != nil && !r.active() {
		return
	}

	_, err := r.api.Create(notify.Info{
		Title:      notify.Set(prefix + name),
		Message:    notify.Set(message),
		Duration:   notify.Set(r.duration),
		TitleColor: notify.Set(r.color),
	})
	if err != nil {
		r.log.Debug().Err(err).Str("name", name).Msg("error notification not shown")
	}
}

// errorName returns the display name of err: its Name method when the
// chain has one, otherwise its dynamic type.
func errorName(err error) string {
	var named Named
	if errors.As(err, &named) {
		return named.Name()
	}
	return typeName(err)
}

func typeName(v any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
}
