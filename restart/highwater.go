package restart

import (
	"context"
	"sync/atomic"
)

// HighWater stores the best flow found across restarts. Offer must be an
// atomic "raise if larger"; implementations are safe for concurrent use.
type HighWater interface {
	// Offer raises the mark to flow if flow is larger. It returns the mark
	// after the call and whether this call raised it.
	Offer(ctx context.Context, flow int) (mark int, raised bool, err error)

	// Load returns the current mark.
	Load(ctx context.Context) (int, error)
}

// MemoryHighWater is an in-process HighWater.
type MemoryHighWater struct {
	v atomic.Int64
}

// NewMemoryHighWater returns a mark starting at 0.
func NewMemoryHighWater() *MemoryHighWater { return &MemoryHighWater{} }

// Offer implements HighWater with a compare-and-set loop.
func (m *MemoryHighWater) Offer(_ context.Context, flow int) (int, bool, error) {
	var (
		want = int64(flow)
		cur  int64
	)
	for {
		cur = m.v.Load()
		if want <= cur {
			return int(cur), false, nil
		}
		if m.v.CompareAndSwap(cur, want) {
			return flow, true, nil
		}
	}
}

// Load implements HighWater.
func (m *MemoryHighWater) Load(context.Context) (int, error) {
	return int(m.v.Load()), nil
}
