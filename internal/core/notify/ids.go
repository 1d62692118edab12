package notify

import (
	"math/rand/v2"
	"sync"
)

// Allocator produces candidate notification ids. Candidates are not
// required to be unique; the Manager retries until it finds a free one.
type Allocator interface {
	Allocate() ID
}

// RandomAllocator samples ids uniformly over the full 32-bit range.
type RandomAllocator struct{}

func (RandomAllocator) Allocate() ID {
	return ID(rand.Uint32())
}

// SequenceAllocator hands out ids from a fixed list, then counts up from
// the last one. Replay scenarios and tests use it for stable ids.
type SequenceAllocator struct {
	mu   sync.Mutex
	ids  []ID
	next ID
}

func NewSequenceAllocator(ids ...ID) *SequenceAllocator {
	return &SequenceAllocator{ids: ids, next: 1}
}

func (a *SequenceAllocator) Allocate() ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.ids) > 0 {
		id := a.ids[0]
		a.ids = a.ids[1:]
		a.next = id + 1
		return id
	}

	id := a.next
	a.next++
	return id
}
