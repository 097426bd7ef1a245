package search

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/valveflow/valve"
)

// Searcher runs searches over one graph. It owns its best-flow table, its
// path buffers and its RNG; nothing is shared between Searchers.
//
// The graph's tunnel order may change between runs (restart driver
// shuffles); it must not change during Run.
type Searcher struct {
	g     *valve.Graph
	opts  Options
	rng   *rand.Rand
	table *Table

	// byFlow lists positive-flow valves by descending flow (index tiebreak).
	byFlow []int

	// Per-run state, reset by Run.
	best     int
	path     Path
	bestPath Path
	nodes    int64
	pruned   int64
	bounded  int64
}

// New validates opts and returns a Searcher whose RNG is seeded from opts.Seed.
func New(g *valve.Graph, opts Options) (*Searcher, error) {
	return NewWithRand(g, opts, nil)
}

// NewWithRand is like New but uses r for pruning draws. A nil r falls back
// to NewRand(opts.Seed). r must not be shared with another goroutine.
func NewWithRand(g *valve.Graph, opts Options, r *rand.Rand) (*Searcher, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand(opts.Seed)
	}

	s := &Searcher{
		g:        g,
		opts:     opts,
		rng:      r,
		table:    NewTable(opts.Minutes),
		path:     make(Path, 0, opts.Minutes),
		bestPath: make(Path, 0, opts.Minutes),
	}
	for v := 0; v < g.Len(); v++ {
		if g.Flow(v) > 0 {
			s.byFlow = append(s.byFlow, v)
		}
	}
	sort.SliceStable(s.byFlow, func(i, j int) bool {
		return g.Flow(s.byFlow[i]) > g.Flow(s.byFlow[j])
	})

	return s, nil
}

// Options returns the validated options.
func (s *Searcher) Options() Options { return s.opts }

// Graph returns the graph being searched.
func (s *Searcher) Graph() *valve.Graph { return s.g }

// Rand returns the Searcher's RNG, e.g. to shuffle the graph between runs.
func (s *Searcher) Rand() *rand.Rand { return s.rng }

// Run performs one complete search from the entry valve. The best-flow
// table and path buffers are reset first; the RNG is not.
func (s *Searcher) Run() Result {
	s.table.Reset()
	s.best = 0
	s.path = s.path[:0]
	s.bestPath = s.bestPath[:0]
	s.nodes, s.pruned, s.bounded = 0, 0, 0

	var (
		entry  = s.g.Entry()
		opened valve.Set
	)
	if s.opts.Agents == 1 {
		s.single(entry, opened, 0, s.opts.Minutes)
	} else {
		s.dual(entry, entry, opened, 0, s.opts.Minutes, s.opts.Minutes)
	}

	res := Result{
		Flow:    s.best,
		Nodes:   s.nodes,
		Pruned:  s.pruned,
		Bounded: s.bounded,
	}
	if s.opts.Agents == 1 && len(s.bestPath) > 0 {
		res.Path = append(Path(nil), s.bestPath...)
	}

	return res
}

// reject is the best-flow heuristic: a state trailing the table mark for its
// minutes left is dropped with probability PruneRate.
func (s *Searcher) reject(flow, minutes int) bool {
	if s.opts.PruneRate <= 0 || flow >= s.table.Best(minutes) {
		return false
	}

	return s.rng.Float64() < s.opts.PruneRate
}

// cut is the FlowBound test.
func (s *Searcher) cut(opened valve.Set, flow, a, ma, b, mb int) bool {
	if s.opts.Bound != FlowBound {
		return false
	}

	return flow+s.potential(opened, a, ma, b, mb) <= s.best
}

// record keeps flow as the incumbent if it is strictly better.
func (s *Searcher) record(flow int, withPath bool) {
	if flow <= s.best {
		return
	}
	s.best = flow
	if withPath {
		s.bestPath = append(s.bestPath[:0], s.path...)
	}
}

// Solve validates opts and runs a single search.
func Solve(g *valve.Graph, opts Options) (Result, error) {
	s, err := New(g, opts)
	if err != nil {
		return Result{}, err
	}

	return s.Run(), nil
}
