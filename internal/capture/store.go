package capture

// DefaultCapacity bounds each bucket. A single request that raises more
// events than this keeps the most recent ones and drops the oldest.
const DefaultCapacity = 500

// Counts holds the bucket sizes exposed to the indicator.
type Counts struct {
	Errors   int
	Warnings int
	Notices  int
	Dumps    int
}

// Total returns the sum across all four buckets.
func (c Counts) Total() int {
	return c.Errors + c.Warnings + c.Notices + c.Dumps
}

// Of returns the count for the named category.
func (c Counts) Of(cat Category) int {
	switch cat {
	case Errors:
		return c.Errors
	case Warnings:
		return c.Warnings
	case Notices:
		return c.Notices
	case Dumps:
		return c.Dumps
	}
	return 0
}

// Store is the per-request capture buffer: four ordered buckets, one per
// category, most recent event first. The request model is single-threaded
// (the runtime delivers errors synchronously and serially), so Store does
// no locking.
type Store struct {
	buckets map[Category][]Event
	cap     int
}

// NewStore creates an empty store with the given per-bucket capacity.
// Capacity must be at least 1.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		buckets: make(map[Category][]Event, 4),
		cap:     capacity,
	}
}

// Record prepends the event to the named bucket, so the bucket's first
// element is always the most recently recorded one. When the bucket is at
// capacity the oldest event is dropped. Events for unknown categories land
// in the notices bucket rather than being lost.
func (s *Store) Record(cat Category, ev Event) {
	if !cat.Valid() {
		cat = Notices
	}
	bucket := s.buckets[cat]
	if len(bucket) == s.cap {
		bucket = bucket[:len(bucket)-1]
	}
	s.buckets[cat] = append([]Event{ev}, bucket...)
}

// Counts returns the current bucket sizes. Safe to call before any write.
func (s *Store) Counts() Counts {
	return Counts{
		Errors:   len(s.buckets[Errors]),
		Warnings: len(s.buckets[Warnings]),
		Notices:  len(s.buckets[Notices]),
		Dumps:    len(s.buckets[Dumps]),
	}
}

// Events returns the named bucket, most recent first. The returned slice
// is the store's own; callers must not mutate it.
func (s *Store) Events(cat Category) []Event {
	return s.buckets[cat]
}

// All returns the four buckets in fixed enumeration order
// [errors, warnings, notices, dumps]. Empty buckets are present as nil
// slices so the result always has four entries.
func (s *Store) All() [][]Event {
	out := make([][]Event, 0, 4)
	for _, cat := range Categories() {
		out = append(out, s.buckets[cat])
	}
	return out
}
