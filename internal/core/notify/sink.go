package notify

import "github.com/rs/zerolog"

// Sink renders notifications. It is driven only by the Manager, which
// calls it with its event-loop lock held: implementations must return
// promptly and must not call back into the Manager.
type Sink interface {
	// Render shows a new element for id.
	Render(id ID, d Displayed)
	// UpdateField changes one displayed attribute of an existing element.
	UpdateField(id ID, field FieldName, value string)
	// Hide marks the element for removal and starts its exit animation.
	Hide(id ID)
	// Detach removes the element after the grace period.
	Detach(id ID)
}

// LogSink writes every sink instruction to a logger. It is used by the
// headless replay command.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) Render(id ID, d Displayed) {
	s.Logger.Info().
		Stringer("id", id).
		Str("title", d.Title).
		Str("message", d.Message).
		Str("icon", d.Icon).
		Str("title_color", d.TitleColor).
		Str("message_color", d.MessageColor).
		Msg("render")
}

func (s LogSink) UpdateField(id ID, field FieldName, value string) {
	s.Logger.Info().
		Stringer("id", id).
		Str("field", string(field)).
		Str("value", value).
		Msg("update")
}

func (s LogSink) Hide(id ID) {
	s.Logger.Info().Stringer("id", id).Msg("hide")
}

func (s LogSink) Detach(id ID) {
	s.Logger.Info().Stringer("id", id).Msg("detach")
}
