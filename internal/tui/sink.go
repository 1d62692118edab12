package tui

import (
	"context"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/toasts/internal/core/notify"
)

type (
	renderMsg struct {
		id        notify.ID
		displayed notify.Displayed
	}
	updateFieldMsg struct {
		id    notify.ID
		field notify.FieldName
		value string
	}
	hideMsg   struct{ id notify.ID }
	detachMsg struct{ id notify.ID }
)

// Sink is a notify.Sink that turns instructions into bubbletea messages.
// The manager calls it with its lock held, so instructions are queued and
// handed to the program by Forward on another goroutine.
type Sink struct {
	mu    sync.Mutex
	queue []tea.Msg
	wake  chan struct{}
}

var _ notify.Sink = (*Sink)(nil)

func NewSink() *Sink {
	return &Sink{wake: make(chan struct{}, 1)}
}

func (s *Sink) Render(id notify.ID, d notify.Displayed) {
	s.push(renderMsg{id: id, displayed: d})
}

func (s *Sink) UpdateField(id notify.ID, field notify.FieldName, value string) {
	s.push(updateFieldMsg{id: id, field: field, value: value})
}

func (s *Sink) Hide(id notify.ID) {
	s.push(hideMsg{id: id})
}

func (s *Sink) Detach(id notify.ID) {
	s.push(detachMsg{id: id})
}

func (s *Sink) push(msg tea.Msg) {
	s.mu.Lock()
	s.queue = append(s.queue, msg)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
		// wake-up already pending
	}
}

// Drain removes and returns the queued messages in order.
func (s *Sink) Drain() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := slices.Clone(s.queue)
	s.queue = s.queue[:0]
	return msgs
}

// Forward delivers queued messages to send, usually tea.Program.Send,
// until ctx is done.
func (s *Sink) Forward(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}

		for _, msg := range s.Drain() {
			send(msg)
		}
	}
}
