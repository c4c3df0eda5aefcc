// Package collision tracks custom property names and detects names shared by
// more than one property id.
package collision

import "slices"

// Tracker maps dictionary names to the property ids that carry them.
// It keeps the order in which names were first seen so enumeration is stable.
type Tracker struct {
	ids          map[string][]uint32 // name → ascending ids
	names        []string            // first-seen order
	hasCollision bool
}

// NewTracker creates a new name tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:   make(map[string][]uint32),
		names: make([]string, 0),
	}
}

// Track records that id carries name.
// Tracking a second id under an existing name marks a collision; tracking the
// same (id, name) pair twice is a no-op.
func (t *Tracker) Track(id uint32, name string) {
	existing, ok := t.ids[name]
	if !ok {
		t.ids[name] = []uint32{id}
		t.names = append(t.names, name)

		return
	}

	pos, found := slices.BinarySearch(existing, id)
	if found {
		return
	}
	t.ids[name] = slices.Insert(existing, pos, id)
	t.hasCollision = true
}

// Lowest returns the smallest id that carries name.
func (t *Tracker) Lowest(name string) (uint32, bool) {
	ids, ok := t.ids[name]
	if !ok {
		return 0, false
	}

	return ids[0], true
}

// IDs returns all ids carrying name in ascending order.
func (t *Tracker) IDs(name string) []uint32 {
	return slices.Clone(t.ids[name])
}

// HasCollision returns true if any name is carried by more than one id.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the distinct names in first-seen order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of distinct names.
func (t *Tracker) Count() int {
	return len(t.names)
}
