// Package notifytest provides a fake clock and a recording sink for
// testing code built on the notify package.
package notifytest

import (
	"slices"
	"sync"
	"time"

	"github.com/hay-kot/toasts/internal/core/notify"
)

// FakeClock is a notify.Clock whose time only moves on Advance. Timer
// callbacks run synchronously on the goroutine calling Advance.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	at      time.Time
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

var _ notify.Clock = (*FakeClock)(nil)

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) AfterFunc(d time.Duration, f func()) notify.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := &fakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, firing due timers in deadline order.
// Timers armed by a callback fire in the same call when they fall due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.compact()
			c.mu.Unlock()
			return
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *FakeClock) nextDue(target time.Time) *fakeTimer {
	var next *fakeTimer
	for _, t := range c.timers {
		if t.stopped || t.fired || t.at.After(target) {
			continue
		}
		if next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (c *FakeClock) compact() {
	c.timers = slices.DeleteFunc(c.timers, func(t *fakeTimer) bool {
		return t.stopped || t.fired
	})
}

// Op names a sink instruction.
type Op string

const (
	OpRender Op = "render"
	OpUpdate Op = "update"
	OpHide   Op = "hide"
	OpDetach Op = "detach"
)

// Call is one recorded sink instruction.
type Call struct {
	Op        Op
	ID        notify.ID
	Displayed notify.Displayed
	Field     notify.FieldName
	Value     string
}

// Element is the sink-side view of a rendered notification.
type Element struct {
	Displayed notify.Displayed
	Hidden    bool
}

// RecordingSink records every instruction and tracks the resulting
// elements the way a real sink would.
type RecordingSink struct {
	mu       sync.Mutex
	calls    []Call
	elements map[notify.ID]*Element
}

var _ notify.Sink = (*RecordingSink)(nil)

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{elements: make(map[notify.ID]*Element)}
}

func (s *RecordingSink) Render(id notify.ID, d notify.Displayed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpRender, ID: id, Displayed: d})
	s.elements[id] = &Element{Displayed: d}
}

func (s *RecordingSink) UpdateField(id notify.ID, field notify.FieldName, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpUpdate, ID: id, Field: field, Value: value})

	el, ok := s.elements[id]
	if !ok {
		return
	}
	switch field {
	case notify.FieldTitle:
		el.Displayed.Title = value
	case notify.FieldMessage:
		el.Displayed.Message = value
	case notify.FieldIcon:
		el.Displayed.Icon = value
	case notify.FieldTitleColor:
		el.Displayed.TitleColor = value
	case notify.FieldMessageColor:
		el.Displayed.MessageColor = value
	}
}

func (s *RecordingSink) Hide(id notify.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpHide, ID: id})
	if el, ok := s.elements[id]; ok {
		el.Hidden = true
	}
}

func (s *RecordingSink) Detach(id notify.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpDetach, ID: id})
	delete(s.elements, id)
}

// Calls returns a copy of all recorded instructions.
func (s *RecordingSink) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Count returns how many instructions of op were recorded for id.
func (s *RecordingSink) Count(op Op, id notify.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.calls {
		if c.Op == op && c.ID == id {
			n++
		}
	}
	return n
}

// Element returns the current element for id.
func (s *RecordingSink) Element(id notify.ID) (Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.elements[id]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Reset clears recorded calls but keeps elements.
func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
