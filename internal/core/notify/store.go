package notify

import (
	"maps"
	"slices"
	"time"
)

// Notification is the record kept for a live notification.
type Notification struct {
	ID ID
	// Info is the last info submitted by Create or Edit, stored as given.
	Info Info
	// Displayed is what the sink currently shows for this id.
	Displayed Displayed
	// ExpiresAt is zero for persistent notifications.
	ExpiresAt time.Time

	handle Handle
}

// Store maps ids to live notification records. It is owned by the
// Manager and is not safe for concurrent use on its own.
type Store struct {
	records map[ID]*Notification
}

func NewStore() *Store {
	return &Store{records: make(map[ID]*Notification)}
}

// Insert adds or replaces the record for n.ID.
func (s *Store) Insert(n Notification) {
	s.records[n.ID] = &n
}

// Get returns a copy of the record for id.
func (s *Store) Get(id ID) (Notification, bool) {
	n, ok := s.records[id]
	if !ok {
		return Notification{}, false
	}
	return *n, true
}

// Update applies fn to the stored record in place. Returns false when id
// is not present.
func (s *Store) Update(id ID, fn func(n *Notification)) bool {
	n, ok := s.records[id]
	if !ok {
		return false
	}
	fn(n)
	return true
}

// Remove deletes the record for id and returns it. Removing an absent id
// is a no-op that returns false.
func (s *Store) Remove(id ID) (Notification, bool) {
	n, ok := s.records[id]
	if !ok {
		return Notification{}, false
	}
	delete(s.records, id)
	return *n, true
}

func (s *Store) Has(id ID) bool {
	_, ok := s.records[id]
	return ok
}

func (s *Store) Len() int {
	return len(s.records)
}

// IDs returns the live ids in ascending order.
func (s *Store) IDs() []ID {
	return slices.Sorted(maps.Keys(s.records))
}
