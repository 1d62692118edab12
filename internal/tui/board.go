package tui

import (
	"slices"

	"github.com/hay-kot/toasts/internal/core/notify"
)

type toast struct {
	id        notify.ID
	displayed notify.Displayed
	hiding    bool
}

// Board holds the elements the sink has rendered, oldest first. It is the
// view-side mirror of the manager's live and hiding notifications.
type Board struct {
	toasts     []toast
	maxVisible int
}

func NewBoard(maxVisible int) *Board {
	if maxVisible <= 0 {
		maxVisible = 5
	}
	return &Board{maxVisible: maxVisible}
}

func (b *Board) index(id notify.ID) int {
	return slices.IndexFunc(b.toasts, func(t toast) bool { return t.id == id })
}

func (b *Board) Render(id notify.ID, d notify.Displayed) {
	if i := b.index(id); i >= 0 {
		b.toasts[i] = toast{id: id, displayed: d}
		return
	}
	b.toasts = append(b.toasts, toast{id: id, displayed: d})
}

func (b *Board) UpdateField(id notify.ID, field notify.FieldName, value string) {
	i := b.index(id)
	if i < 0 {
		return
	}

	d := &b.toasts[i].displayed
	switch field {
	case notify.FieldTitle:
		d.Title = value
	case notify.FieldMessage:
		d.Message = value
	case notify.FieldIcon:
		d.Icon = value
	case notify.FieldTitleColor:
		d.TitleColor = value
	case notify.FieldMessageColor:
		d.MessageColor = value
	}
}

func (b *Board) Hide(id notify.ID) {
	if i := b.index(id); i >= 0 {
		b.toasts[i].hiding = true
	}
}

func (b *Board) Detach(id notify.ID) {
	b.toasts = slices.DeleteFunc(b.toasts, func(t toast) bool { return t.id == id })
}

// Visible returns the newest elements, at most maxVisible, oldest first.
func (b *Board) Visible() []toast {
	if len(b.toasts) > b.maxVisible {
		return b.toasts[len(b.toasts)-b.maxVisible:]
	}
	return b.toasts
}

// Newest returns the id of the most recently rendered element that is not
// hiding.
func (b *Board) Newest() (notify.ID, bool) {
	for i := len(b.toasts) - 1; i >= 0; i-- {
		if !b.toasts[i].hiding {
			return b.toasts[i].id, true
		}
	}
	return 0, false
}

func (b *Board) Len() int {
	return len(b.toasts)
}
