package search

// Table holds, per minutes-left bucket, the best accumulated flow seen so far
// in the current search. Values only grow until Reset.
type Table struct {
	best []int
}

// NewTable returns a table with buckets 0..minutes.
func NewTable(minutes int) *Table {
	if minutes < 0 {
		minutes = 0
	}

	return &Table{best: make([]int, minutes+1)}
}

// Len returns the number of buckets.
func (t *Table) Len() int { return len(t.best) }

// Observe raises the bucket for minutes to flow if flow is larger.
// Minutes outside the table are ignored.
func (t *Table) Observe(minutes, flow int) {
	if minutes < 0 || minutes >= len(t.best) {
		return
	}
	if flow > t.best[minutes] {
		t.best[minutes] = flow
	}
}

// Best returns the mark for minutes, or 0 outside the table.
func (t *Table) Best(minutes int) int {
	if minutes < 0 || minutes >= len(t.best) {
		return 0
	}

	return t.best[minutes]
}

// Reset clears every bucket.
func (t *Table) Reset() {
	clear(t.best)
}
