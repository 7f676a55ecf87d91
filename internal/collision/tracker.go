// Package collision detects field-schema drift across the sessions of a
// merged blackbox dump.
package collision

// Tracker records the header.FieldTable.SchemaHash of each session visited
// so far and flags when a later session's schema disagrees with the first
// one seen. A merged flash-chip dump spanning two firmware builds (or two
// arm/disarm cycles with different logged fields) produces exactly this
// symptom; blackbox.Reader exposes the flag rather than silently decoding
// later sessions against the wrong field layout.
type Tracker struct {
	hashes      map[int]uint64 // session index -> schema hash
	order       []int          // session indices in the order first tracked
	baseline    uint64
	baselineSet bool
	hasDrift    bool
}

// NewTracker creates a new schema-drift tracker.
func NewTracker() *Tracker {
	return &Tracker{
		hashes: make(map[int]uint64),
		order:  make([]int, 0),
	}
}

// Track records sessionIndex's schema hash. The first call establishes the
// baseline; every subsequent call compares against it.
func (t *Tracker) Track(sessionIndex int, schemaHash uint64) {
	if !t.baselineSet {
		t.baseline = schemaHash
		t.baselineSet = true
	} else if schemaHash != t.baseline {
		t.hasDrift = true
	}

	if _, exists := t.hashes[sessionIndex]; !exists {
		t.order = append(t.order, sessionIndex)
	}
	t.hashes[sessionIndex] = schemaHash
}

// HasDrift reports whether any tracked session's schema hash differs from
// the baseline (the first session tracked).
func (t *Tracker) HasDrift() bool {
	return t.hasDrift
}

// HashFor returns the schema hash recorded for sessionIndex, if any.
func (t *Tracker) HashFor(sessionIndex int) (uint64, bool) {
	h, ok := t.hashes[sessionIndex]
	return h, ok
}

// Count returns the number of distinct sessions tracked.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked sessions and drift state, for reuse across a new
// file.
func (t *Tracker) Reset() {
	for k := range t.hashes {
		delete(t.hashes, k)
	}
	t.order = t.order[:0]
	t.baselineSet = false
	t.hasDrift = false
}
