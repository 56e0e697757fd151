package reconcile

// Allocator hands out global sequence ids in scrape order.
//
// It is a single mutable counter and is not safe for concurrent use; one run owns
// one Allocator. Ids are persisted downstream as foreign keys, so replaying a set
// from Reset must always produce the same sequence.
type Allocator struct {
	starts  map[string]int
	gaps    []Gap
	counter int
}

// NewAllocator creates an allocator for the given sets and gap table.
// The gap table must be sorted by boundary (ParseTables guarantees it).
func NewAllocator(sets []SetDefinition, gaps []Gap) *Allocator {
	starts := make(map[string]int, len(sets))
	for _, s := range sets {
		starts[s.Code] = s.GlobalStartOffset
	}
	return &Allocator{
		starts: starts,
		gaps:   append([]Gap(nil), gaps...),
	}
}

// Reset seeds the counter with the set's start offset. Unknown sets start at 0.
func (a *Allocator) Reset(setCode string) {
	a.counter = a.starts[setCode]
}

// Next returns the id for the next card and advances the counter.
//
// At a gap boundary the boundary itself is returned and the counter jumps past
// the gap. A value inside a skipped range is shifted by the gap size without
// jumping again.
func (a *Allocator) Next() int {
	value := a.counter
	a.counter++

	for _, g := range a.gaps {
		if g.Boundary > value {
			break
		}
		if value == g.Boundary {
			a.counter = g.Boundary + g.Size + 1
			return value
		}
		if value <= g.Boundary+g.Size {
			return value + g.Size
		}
	}
	return value
}

// Skip advances the allocator by n positions without using the ids.
func (a *Allocator) Skip(n int) {
	for i := 0; i < n; i++ {
		a.Next()
	}
}
