package notify

import (
	"sync"
	"time"
)

// Handle refers to one armed timer. The zero Handle refers to nothing and
// is safe to cancel.
type Handle struct {
	seq uint64
}

func (h Handle) IsZero() bool { return h.seq == 0 }

// Scheduler runs deferred callbacks on the manager's event loop.
//
// Arm, Cancel and CancelAll must be called with loop held. A fired timer
// acquires loop and then checks that its handle is still pending, so a
// callback whose timer fired while Cancel was running never executes.
type Scheduler struct {
	clock   Clock
	loop    sync.Locker
	seq     uint64
	pending map[uint64]Timer
}

func NewScheduler(clock Clock, loop sync.Locker) *Scheduler {
	return &Scheduler{
		clock:   clock,
		loop:    loop,
		pending: make(map[uint64]Timer),
	}
}

// Arm schedules onFire to run once after delay, with loop held.
func (s *Scheduler) Arm(delay time.Duration, onFire func()) Handle {
	s.seq++
	seq := s.seq

	s.pending[seq] = s.clock.AfterFunc(delay, func() {
		s.loop.Lock()
		defer s.loop.Unlock()

		if _, ok := s.pending[seq]; !ok {
			return
		}
		delete(s.pending, seq)
		onFire()
	})

	return Handle{seq: seq}
}

// Cancel stops the timer for h. It reports whether h was still pending.
func (s *Scheduler) Cancel(h Handle) bool {
	if h.IsZero() {
		return false
	}

	t, ok := s.pending[h.seq]
	if !ok {
		return false
	}
	delete(s.pending, h.seq)
	t.Stop()
	return true
}

// CancelAll stops every pending timer.
func (s *Scheduler) CancelAll() {
	for seq, t := range s.pending {
		t.Stop()
		delete(s.pending, seq)
	}
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
