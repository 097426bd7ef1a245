package search_test

import (
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/search"
	"github.com/katalvlaran/valveflow/valve"
)

// mustGraph builds a graph or fails the test.
func mustGraph(t testing.TB, recs []valve.Record) *valve.Graph {
	t.Helper()
	g, err := valve.NewGraph(recs)
	require.NoError(t, err)

	return g
}

// triangle is AA(0) → BB(13), CC(2) with BB ↔ CC.
func triangle(t testing.TB) *valve.Graph {
	return mustGraph(t, []valve.Record{
		{Name: "AA", Flow: 0, Tunnels: []string{"BB", "CC"}},
		{Name: "BB", Flow: 13, Tunnels: []string{"AA", "CC"}},
		{Name: "CC", Flow: 2, Tunnels: []string{"AA", "BB"}},
	})
}

// loadExample reads the ten-valve example network.
func loadExample(t testing.TB) *valve.Graph {
	t.Helper()
	f, err := os.Open("testdata/example.txt")
	require.NoError(t, err)
	defer f.Close()

	recs, err := valve.Parse(f)
	require.NoError(t, err)

	return mustGraph(t, recs)
}

// randomGraph returns a connected-ish graph of n valves named AA, BB, ...
// with 1..3 tunnels each and roughly a third of the flows at zero.
func randomGraph(t testing.TB, r *rand.Rand, n int) *valve.Graph {
	t.Helper()
	names := make([]string, n)
	for i := range names {
		c := byte('A' + i)
		names[i] = string([]byte{c, c})
	}

	recs := make([]valve.Record, n)
	for i := range recs {
		flow := 0
		if r.Intn(3) != 0 {
			flow = 1 + r.Intn(20)
		}
		seen := map[int]bool{i: true}
		var tunnels []string
		// Chain to the next valve so every valve is reachable from AA.
		if i+1 < n {
			tunnels = append(tunnels, names[i+1])
			seen[i+1] = true
		}
		for k := r.Intn(3); k > 0; k-- {
			j := r.Intn(n)
			if seen[j] {
				continue
			}
			seen[j] = true
			tunnels = append(tunnels, names[j])
		}
		if len(tunnels) == 0 {
			tunnels = append(tunnels, names[0])
		}
		recs[i] = valve.Record{Name: names[i], Flow: flow, Tunnels: tunnels}
	}

	return mustGraph(t, recs)
}

type singleKey struct {
	cur     int
	opened  valve.Set
	minutes int
}

// bruteSingle is the exhaustive single-agent optimum, memoized on
// (valve, opened set, minutes left).
func bruteSingle(g *valve.Graph, minutes int) int {
	memo := make(map[singleKey]int)

	var rec func(cur int, opened valve.Set, m int) int
	rec = func(cur int, opened valve.Set, m int) int {
		next := g.Neighbors(cur)
		if m <= 1 || len(next) == 0 {
			return 0
		}
		k := singleKey{cur, opened, m}
		if v, ok := memo[k]; ok {
			return v
		}
		best := 0
		for _, v := range next {
			if g.Flow(cur) > 0 && !opened.Has(cur) {
				best = max(best, g.Flow(cur)*(m-1)+rec(v, opened.With(cur), m-2))
			}
			best = max(best, rec(v, opened, m-1))
		}
		memo[k] = best

		return best
	}

	return rec(g.Entry(), 0, minutes)
}

type dualKey struct {
	a, b   int
	opened valve.Set
	ma, mb int
}

// bruteDual is the exhaustive two-agent optimum under the same move rules
// as the engine, memoized on the full state.
func bruteDual(g *valve.Graph, minutes int) int {
	memo := make(map[dualKey]int)

	type move struct {
		to   int
		open bool
	}
	moves := func(at, m int, opened valve.Set) ([]move, bool) {
		next := g.Neighbors(at)
		if m <= 1 || len(next) == 0 {
			return []move{{to: at}}, false
		}
		var out []move
		for _, v := range next {
			out = append(out, move{to: v})
			if g.Flow(at) > 0 && !opened.Has(at) {
				out = append(out, move{to: v, open: true})
			}
		}
		return out, true
	}

	var rec func(a, b int, opened valve.Set, ma, mb int) int
	rec = func(a, b int, opened valve.Set, ma, mb int) int {
		movesA, activeA := moves(a, ma, opened)
		movesB, activeB := moves(b, mb, opened)
		if !activeA && !activeB {
			return 0
		}
		k := dualKey{a, b, opened, ma, mb}
		if v, ok := memo[k]; ok {
			return v
		}
		best := 0
		for _, x := range movesA {
			for _, y := range movesB {
				if x.open && y.open && a == b {
					continue
				}
				o, gain, na, nb := opened, 0, 0, 0
				if activeA {
					na = ma - 1
				}
				if activeB {
					nb = mb - 1
				}
				if x.open {
					o = o.With(a)
					gain += g.Flow(a) * (ma - 1)
					na--
				}
				if y.open {
					o = o.With(b)
					gain += g.Flow(b) * (mb - 1)
					nb--
				}
				best = max(best, gain+rec(x.to, y.to, o, na, nb))
			}
		}
		memo[k] = best

		return best
	}

	return rec(g.Entry(), g.Entry(), 0, minutes, minutes)
}

// exactOptions disables the heuristic so the search is exhaustive.
func exactOptions(agents, minutes int, bound search.BoundPolicy) search.Options {
	return search.Options{Agents: agents, Minutes: minutes, PruneRate: 0, Bound: bound}
}

func name(agents, minutes int) string { return fmt.Sprintf("agents=%d/minutes=%d", agents, minutes) }
