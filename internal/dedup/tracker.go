// Package dedup tracks node labels seen while parsing model-definition
// records, so the model store can apply first-seen-wins semantics and warn
// on duplicates instead of failing the parse (spec §3.2, §7: DuplicateNode
// is a non-fatal error kind).
package dedup

import "github.com/opencae/fil2ensight/errs"

// Tracker records which node labels have already been defined. It keeps an
// ordered list alongside the membership set so callers that need
// first-seen order can recover it through Labels without a second
// structure.
type Tracker struct {
	seen  map[int64]struct{}
	order []int64
}

// NewTracker creates an empty label tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen:  make(map[int64]struct{}),
		order: make([]int64, 0),
	}
}

// Track records label as seen. It returns ErrDuplicateNode if the label was
// already tracked; the caller decides whether that is fatal. The first
// definition of a label always wins — Track does not overwrite anything, it
// only reports whether this is a repeat.
func (t *Tracker) Track(label int64) error {
	if _, exists := t.seen[label]; exists {
		return errs.ErrDuplicateNode
	}

	t.seen[label] = struct{}{}
	t.order = append(t.order, label)

	return nil
}

// Seen reports whether label has already been tracked.
func (t *Tracker) Seen(label int64) bool {
	_, exists := t.seen[label]
	return exists
}

// Labels returns the tracked labels in first-seen order.
func (t *Tracker) Labels() []int64 {
	return t.order
}

// Count returns the number of distinct labels tracked.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked labels, preserving allocated capacity for reuse
// across increments.
func (t *Tracker) Reset() {
	for k := range t.seen {
		delete(t.seen, k)
	}
	t.order = t.order[:0]
}
