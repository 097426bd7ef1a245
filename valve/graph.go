package valve

import (
	"fmt"
	"math/rand"
)

// Graph is the resolved valve network.
//
// Graph is not safe for concurrent mutation: Shuffle must not run while
// another goroutine reads the same Graph. The restart driver gives every
// worker its own Clone.
type Graph struct {
	valves []Valve
	index  map[string]int
	entry  int

	// dist[i*n+j] is the hop count from i to j, or Unreachable.
	// Shared between clones; neighbor order does not affect it.
	dist []int
}

// NewGraph builds a Graph from records in two passes: first one valve per
// record, then every tunnel name is resolved to an index.
//
// Errors: ErrNoValves, ErrTooManyValves, ErrEmptyName, ErrNegativeFlow,
// ErrDuplicateValve, ErrUnknownTunnel, ErrEntryNotFound.
//
// Complexity: O(V + E) to resolve, O(V·(V+E)) for the distance matrix.
func NewGraph(records []Record, opts ...Option) (*Graph, error) {
	o := graphOptions{entry: DefaultEntry}
	for _, opt := range opts {
		opt(&o)
	}

	var n = len(records)
	if n == 0 {
		return nil, ErrNoValves
	}
	if n > MaxValves {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyValves, n, MaxValves)
	}

	g := &Graph{
		valves: make([]Valve, n),
		index:  make(map[string]int, n),
	}

	// Pass 1: register names.
	var (
		i   int
		rec Record
	)
	for i, rec = range records {
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: record %d", ErrEmptyName, i)
		}
		if rec.Flow < 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrNegativeFlow, rec.Name, rec.Flow)
		}
		if _, dup := g.index[rec.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateValve, rec.Name)
		}
		g.index[rec.Name] = i
		g.valves[i] = Valve{ID: rec.Name, Flow: rec.Flow}
	}

	// Pass 2: resolve tunnels.
	for i, rec = range records {
		tunnels := make([]int, 0, len(rec.Tunnels))
		for _, name := range rec.Tunnels {
			j, ok := g.index[name]
			if !ok {
				return nil, fmt.Errorf("%w: %s -> %q", ErrUnknownTunnel, rec.Name, name)
			}
			tunnels = append(tunnels, j)
		}
		g.valves[i].Tunnels = tunnels
	}

	entry, ok := g.index[o.entry]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, o.entry)
	}
	g.entry = entry
	g.dist = hopDistances(g.valves)

	return g, nil
}

// Len returns the number of valves.
func (g *Graph) Len() int { return len(g.valves) }

// Entry returns the index of the starting valve.
func (g *Graph) Entry() int { return g.entry }

// EntryID returns the name of the starting valve.
func (g *Graph) EntryID() string { return g.valves[g.entry].ID }

// Lookup returns the index of the named valve.
func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// ID returns the name of valve i.
func (g *Graph) ID(i int) string { return g.valves[i].ID }

// Flow returns the flow rate of valve i.
func (g *Graph) Flow(i int) int { return g.valves[i].Flow }

// Neighbors returns the tunnel list of valve i in its current order.
// The slice is owned by the Graph; callers must not modify it.
func (g *Graph) Neighbors(i int) []int { return g.valves[i].Tunnels }

// Distance returns the minimum number of moves from i to j, or Unreachable.
func (g *Graph) Distance(i, j int) int { return g.dist[i*len(g.valves)+j] }

// Valves returns a deep copy of all valves in index order.
func (g *Graph) Valves() []Valve {
	out := make([]Valve, len(g.valves))
	for i, v := range g.valves {
		out[i] = Valve{ID: v.ID, Flow: v.Flow, Tunnels: append([]int(nil), v.Tunnels...)}
	}

	return out
}

// Reachable returns the indices reachable from the entry valve, in index order.
func (g *Graph) Reachable() []int {
	out := make([]int, 0, len(g.valves))
	for j := range g.valves {
		if g.Distance(g.entry, j) != Unreachable {
			out = append(out, j)
		}
	}

	return out
}

// Clone returns an independent copy whose neighbor order can be shuffled
// without affecting g.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	c := &Graph{
		valves: g.Valves(),
		index:  g.index, // read-only after construction
		entry:  g.entry,
		dist:   g.dist, // read-only after construction
	}

	return c
}

// Shuffle permutes every valve's tunnel list uniformly at random
// (Fisher–Yates). A nil r leaves the order unchanged.
//
// Complexity: O(E).
func (g *Graph) Shuffle(r *rand.Rand) {
	if r == nil {
		return
	}
	var i, j int
	for v := range g.valves {
		t := g.valves[v].Tunnels
		for i = len(t) - 1; i > 0; i-- {
			j = r.Intn(i + 1)
			t[i], t[j] = t[j], t[i]
		}
	}
}
