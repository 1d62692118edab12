// Package notify owns the lifecycle of transient toast notifications:
// identity allocation, the live record store, expiry scheduling and the
// ordering of create, edit, delete and expiry against a presentation sink.
package notify

import (
	"errors"
	"fmt"
	"time"
)

// DefaultColor is used for title and message text when no color is given.
const DefaultColor = "#ffffff"

// DefaultGracePeriod is the delay between hiding an element and detaching it.
const DefaultGracePeriod = 1000 * time.Millisecond

var (
	// ErrUninitialized is returned by every operation before a sink is wired.
	ErrUninitialized = errors.New("notification manager not initialized")
	// ErrInvalidArgument is returned by Create for a missing or non-positive duration.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ID identifies a notification while it is live or hiding.
type ID uint32

func (id ID) String() string {
	return fmt.Sprintf("%08x", uint32(id))
}

// Info describes notification content. Every field is optional; see Field
// for the unspecified, clear and set semantics applied by Edit.
type Info struct {
	Title        Field[string]
	Message      Field[string]
	Icon         Field[string]
	Duration     Field[time.Duration]
	TitleColor   Field[string]
	MessageColor Field[string]
}

// Displayed is the concrete content a sink renders for a notification.
// An empty Icon means the icon is hidden.
type Displayed struct {
	Title        string
	Message      string
	Icon         string
	TitleColor   string
	MessageColor string
}

// FieldName names a displayed attribute for Sink.UpdateField.
type FieldName string

const (
	FieldTitle        FieldName = "title"
	FieldMessage      FieldName = "message"
	FieldIcon         FieldName = "icon"
	FieldTitleColor   FieldName = "title_color"
	FieldMessageColor FieldName = "message_color"
)

// State is the lifecycle state of a notification id.
type State int

const (
	// StateRemoved also covers ids that were never allocated.
	StateRemoved State = iota
	StateCreated
	StateLive
	StateHiding
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateLive:
		return "live"
	case StateHiding:
		return "hiding"
	default:
		return "removed"
	}
}

// API is the surface exposed to other plugins.
type API interface {
	Create(info Info) (ID, error)
	Edit(id ID, info Info) (bool, error)
	Delete(id ID) (bool, error)
}

// displayedFrom builds the initial content for Create.
func displayedFrom(info Info) Displayed {
	return Displayed{
		Title:        info.Title.ValueOr(""),
		Message:      info.Message.ValueOr(""),
		Icon:         info.Icon.ValueOr(""),
		TitleColor:   colorOrDefault(info.TitleColor),
		MessageColor: colorOrDefault(info.MessageColor),
	}
}

func colorOrDefault(f Field[string]) string {
	if v, ok := f.Get(); ok && v != "" {
		return v
	}
	return DefaultColor
}

type fieldChange struct {
	name  FieldName
	value string
}

// apply computes the content after an edit and the attributes that changed.
func (d Displayed) apply(info Info) (Displayed, []fieldChange) {
	next := d
	var changes []fieldChange

	text := func(name FieldName, cur *string, f Field[string]) {
		if f.IsUnspecified() {
			return
		}
		v := f.ValueOr("")
		if v == *cur {
			return
		}
		*cur = v
		changes = append(changes, fieldChange{name: name, value: v})
	}
	color := func(name FieldName, cur *string, f Field[string]) {
		if f.IsUnspecified() {
			return
		}
		v := colorOrDefault(f)
		if v == *cur {
			return
		}
		*cur = v
		changes = append(changes, fieldChange{name: name, value: v})
	}

	text(FieldTitle, &next.Title, info.Title)
	text(FieldMessage, &next.Message, info.Message)
	text(FieldIcon, &next.Icon, info.Icon)
	color(FieldTitleColor, &next.TitleColor, info.TitleColor)
	color(FieldMessageColor, &next.MessageColor, info.MessageColor)

	return next, changes
}
