// Package faults collects the host's global error channels: recovered
// panics, failed background tasks and error-level log lines. Subscribers
// are called inline; a panicking subscriber is recovered and logged.
package faults

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hay-kot/toasts/internal/core/logging"
)

// PanicEvent is published when Recover catches a panic.
type PanicEvent struct {
	Value any
	Stack []byte
}

// AsyncEvent is published when a task started with Go returns an error
// that nobody handled.
type AsyncEvent struct {
	Task string
	Err  error
}

// LogEvent is published for log lines at error level or above.
type LogEvent struct {
	Level     zerolog.Level
	Message   string
	Error     string
	Component string
}

// Hub fans global error events out to subscribers.
type Hub struct {
	mu       sync.RWMutex
	panics   []func(PanicEvent)
	async    []func(AsyncEvent)
	critical []func(LogEvent)
	ignored  map[string]struct{}

	tasks errgroup.Group
}

// NewHub creates a hub with no subscribers. It can be created before the
// global logger is configured.
func NewHub() *Hub {
	h := &Hub{ignored: map[string]struct{}{}}
	h.IgnoreComponents(component)
	return h
}

const component = "faults"

func (h *Hub) log() zerolog.Logger {
	return logging.Component(component)
}

// IgnoreComponents stops log lines tagged with any of the given components
// from reaching the critical channel. Subscribers register the components
// they log under so their own error lines are not reported back to them.
func (h *Hub) IgnoreComponents(names ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, name := range names {
		h.ignored[name] = struct{}{}
	}
}

func (h *Hub) isIgnored(cmp string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.ignored[cmp]
	return ok
}

// SubscribePanic registers fn for recovered panics.
func (h *Hub) SubscribePanic(fn func(PanicEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, fn)
}

// SubscribeAsync registers fn for failed background tasks.
func (h *Hub) SubscribeAsync(fn func(AsyncEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.async = append(h.async, fn)
}

// SubscribeCritical registers fn for error-level log lines.
func (h *Hub) SubscribeCritical(fn func(LogEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.critical = append(h.critical, fn)
}

// Recover publishes a panic in progress and stops it. It must be deferred
// directly:
//
//	defer hub.Recover()
func (h *Hub) Recover() {
	if r := recover(); r != nil {
		h.PublishPanic(PanicEvent{Value: r, Stack: debug.Stack()})
	}
}

// Guard runs fn, publishing and stopping any panic it raises.
func (h *Hub) Guard(fn func()) {
	defer h.Recover()
	fn()
}

// Go runs fn in the background. A returned error is published as an
// AsyncEvent and a panic as a PanicEvent.
func (h *Hub) Go(ctx context.Context, task string, fn func(ctx context.Context) error) {
	h.tasks.Go(func() error {
		defer h.Recover()

		if err := fn(ctx); err != nil {
			h.PublishAsync(AsyncEvent{Task: task, Err: err})
		}
		return nil
	})
}

// Wait blocks until every task started with Go has returned.
func (h *Hub) Wait() {
	_ = h.tasks.Wait()
}

func (h *Hub) PublishPanic(e PanicEvent) {
	h.mu.RLock()
	subs := make([]func(PanicEvent), len(h.panics))
	copy(subs, h.panics)
	h.mu.RUnlock()

	h.log().Debug().Str("value", fmt.Sprint(e.Value)).Int("subscribers", len(subs)).Msg("panic recovered")
	for _, fn := range subs {
		h.safely("panic", func() { fn(e) })
	}
}

func (h *Hub) PublishAsync(e AsyncEvent) {
	h.mu.RLock()
	subs := make([]func(AsyncEvent), len(h.async))
	copy(subs, h.async)
	h.mu.RUnlock()

	h.log().Debug().Str("task", e.Task).AnErr("cause", e.Err).Int("subscribers", len(subs)).Msg("task failed")
	for _, fn := range subs {
		h.safely("async", func() { fn(e) })
	}
}

func (h *Hub) PublishCritical(e LogEvent) {
	h.mu.RLock()
	subs := make([]func(LogEvent), len(h.critical))
	copy(subs, h.critical)
	h.mu.RUnlock()

	for _, fn := range subs {
		h.safely("critical", func() { fn(e) })
	}
}

func (h *Hub) safely(channel string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			h.log().Warn().Str("channel", channel).Str("panic", fmt.Sprint(r)).Msg("fault subscriber panicked")
		}
	}()
	fn()
}

// LogWriter returns a zerolog writer that publishes error, fatal and panic
// level lines. Add it to the logger with zerolog.MultiLevelWriter.
//
// Lines are published one at a time. A line written while another is being
// dispatched is queued and published by the dispatching goroutine before
// that goroutine's write returns.
func (h *Hub) LogWriter() zerolog.LevelWriter {
	return &criticalWriter{hub: h}
}

// maxPendingLines bounds the dispatch queue and the number of lines one
// dispatching goroutine publishes. Lines past it are dropped.
const maxPendingLines = 1024

type criticalWriter struct {
	hub *Hub

	mu          sync.Mutex
	dispatching bool
	pending     []LogEvent
}

func (w *criticalWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func (w *criticalWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.ErrorLevel || level > zerolog.PanicLevel {
		return len(p), nil
	}

	var line map[string]any
	if err := json.Unmarshal(p, &line); err != nil {
		return len(p), nil
	}

	e := LogEvent{
		Level:     level,
		Message:   stringOf(line[zerolog.MessageFieldName]),
		Error:     stringOf(line[zerolog.ErrorFieldName]),
		Component: stringOf(line[logging.ComponentKey]),
	}
	if w.hub.isIgnored(e.Component) {
		return len(p), nil
	}

	w.dispatch(e)
	return len(p), nil
}

func (w *criticalWriter) dispatch(e LogEvent) {
	w.mu.Lock()
	if len(w.pending) < maxPendingLines {
		w.pending = append(w.pending, e)
	}
	if w.dispatching {
		w.mu.Unlock()
		return
	}

	w.dispatching = true
	for published := 0; len(w.pending) > 0 && published < maxPendingLines; published++ {
		next := w.pending[0]
		w.pending = w.pending[1:]
		w.mu.Unlock()

		w.hub.PublishCritical(next)

		w.mu.Lock()
	}
	w.dispatching = false
	w.pending = nil
	w.mu.Unlock()
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}
