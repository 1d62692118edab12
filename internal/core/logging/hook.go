package logging

import "github.com/rs/zerolog"

// ContextHook adds the plugin_id and toast_id stored in an event's context.
// Events must be given the context with Event.Ctx.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	f := fromContext(e.GetCtx())
	if f.pluginID != "" {
		e.Str("plugin_id", f.pluginID)
	}
	if f.toastID != "" {
		e.Str("toast_id", f.toastID)
	}
}
