package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/toasts/internal/core/logging"
)

// LogComponent tags the manager's log lines.
const LogComponent = "notify"

// Manager owns the notification store, the expiry scheduler and the
// identity allocator, and orders every mutation against the sink.
//
// A Manager starts unwired: every operation returns ErrUninitialized
// until Wire attaches a sink.
type Manager struct {
	// mu is the event loop. Operations and timer callbacks hold it for
	// their whole duration.
	mu sync.Mutex

	sink   Sink
	store  *Store
	sched  *Scheduler
	hiding map[ID]Handle

	alloc      Allocator
	clock      Clock
	grace      time.Duration
	persistent bool
	log        zerolog.Logger
}

var _ API = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

func WithAllocator(a Allocator) Option {
	return func(m *Manager) { m.alloc = a }
}

// WithGracePeriod sets the delay between Hide and Detach.
func WithGracePeriod(d time.Duration) Option {
	return func(m *Manager) { m.grace = d }
}

// WithPersistent allows notifications without a duration. They stay
// until deleted, or until an edit sets a duration.
func WithPersistent(allow bool) Option {
	return func(m *Manager) { m.persistent = allow }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:  NewStore(),
		hiding: make(map[ID]Handle),
		alloc:  RandomAllocator{},
		clock:  RealClock{},
		grace:  DefaultGracePeriod,
		log:    logging.Component(LogComponent),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sched = NewScheduler(m.clock, &m.mu)
	return m
}

// Wire attaches the presentation sink and makes the manager usable.
func (m *Manager) Wire(sink Sink) error {
	if sink == nil {
		return fmt.Errorf("wire sink: %w", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink = sink
	return nil
}

// Wired reports whether a sink is attached.
func (m *Manager) Wired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sink != nil
}

// Create renders a new notification, arms its expiry and returns its id.
func (m *Manager) Create(info Info) (ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sink == nil {
		return 0, ErrUninitialized
	}

	d, hasDuration := info.Duration.Get()
	switch {
	case hasDuration && d <= 0:
		return 0, fmt.Errorf("duration must be positive, got %s: %w", d, ErrInvalidArgument)
	case !hasDuration && !m.persistent:
		return 0, fmt.Errorf("duration is required: %w", ErrInvalidArgument)
	}

	id := m.allocate()
	n := Notification{
		ID:        id,
		Info:      info,
		Displayed: displayedFrom(info),
	}

	m.sink.Render(id, n.Displayed)

	if hasDuration {
		n.handle = m.armExpiry(id, d)
		n.ExpiresAt = m.clock.Now().Add(d)
	}

	m.store.Insert(n)

	m.log.Debug().
		Stringer("id", id).
		Dur("duration", d).
		Str("title", n.Displayed.Title).
		Msg("notification created")

	return id, nil
}

// Edit applies info to a live notification. Unspecified fields keep their
// displayed value. Returns false when id is not live.
func (m *Manager) Edit(id ID, info Info) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sink == nil {
		return false, ErrUninitialized
	}

	ok := m.store.Update(id, func(n *Notification) {
		next, changes := n.Displayed.apply(info)
		for _, c := range changes {
			m.sink.UpdateField(id, c.name, c.value)
		}
		n.Displayed = next

		m.rearm(n, info.Duration)
		n.Info = info

		m.log.Debug().
			Stringer("id", id).
			Int("changed", len(changes)).
			Msg("notification edited")
	})

	return ok, nil
}

// Delete hides a live notification immediately. Returns false when id is
// not live.
func (m *Manager) Delete(id ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sink == nil {
		return false, ErrUninitialized
	}

	n, ok := m.store.Remove(id)
	if !ok {
		return false, nil
	}

	m.sched.Cancel(n.handle)
	m.hide(id)

	m.log.Debug().Stringer("id", id).Msg("notification deleted")
	return true, nil
}

// State reports the lifecycle state of id.
func (m *Manager) State(id ID) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store.Has(id) {
		return StateLive
	}
	if _, ok := m.hiding[id]; ok {
		return StateHiding
	}
	return StateRemoved
}

// Get returns a copy of the live record for id.
func (m *Manager) Get(id ID) (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Get(id)
}

// Live returns the ids of all live notifications.
func (m *Manager) Live() []ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.IDs()
}

// Close cancels all timers, detaches every element and unwires the sink.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sink == nil {
		return
	}

	m.sched.CancelAll()
	for _, id := range m.store.IDs() {
		m.store.Remove(id)
		m.sink.Detach(id)
	}
	for id := range m.hiding {
		delete(m.hiding, id)
		m.sink.Detach(id)
	}

	m.sink = nil
	m.log.Debug().Msg("notification manager closed")
}

// allocate returns an id that is neither live nor hiding. Ids stay reserved
// through the hide grace window, so a sink never receives a render for an
// id it is still animating out, even though the notification is already
// gone from the store and Get reports it missing.
func (m *Manager) allocate() ID {
	for {
		id := m.alloc.Allocate()
		if _, hiding := m.hiding[id]; hiding || m.store.Has(id) {
			m.log.Debug().Stringer("id", id).Msg("id collision, retrying")
			continue
		}
		return id
	}
}

func (m *Manager) armExpiry(id ID, d time.Duration) Handle {
	return m.sched.Arm(d, func() {
		if _, ok := m.store.Remove(id); !ok {
			return
		}
		m.log.Debug().Stringer("id", id).Msg("notification expired")
		m.hide(id)
	})
}

// rearm replaces the expiry timer of n according to the edited duration.
func (m *Manager) rearm(n *Notification, dur Field[time.Duration]) {
	if d, ok := dur.Get(); ok {
		if d <= 0 {
			return
		}
		m.sched.Cancel(n.handle)
		n.handle = m.armExpiry(n.ID, d)
		n.ExpiresAt = m.clock.Now().Add(d)
		return
	}

	if dur.IsClear() && m.persistent {
		m.sched.Cancel(n.handle)
		n.handle = Handle{}
		n.ExpiresAt = time.Time{}
	}
}

// hide moves id from live to hiding. The caller has already removed it
// from the store.
func (m *Manager) hide(id ID) {
	m.sink.Hide(id)
	m.hiding[id] = m.sched.Arm(m.grace, func() {
		delete(m.hiding, id)
		m.sink.Detach(id)
	})
}
