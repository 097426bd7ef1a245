package search

import "github.com/katalvlaran/valveflow/valve"

// dual explores two agents at a and b with ma and mb minutes left.
//
// An agent with <= 1 minute, or standing on a valve without tunnels, is
// idle: it stays put, opens nothing, and its clock drops to 0. The state is
// terminal once both agents are idle.
//
// Active agents branch over the cross product tunnels(a) × tunnels(b) ×
// {move, open} × {move, open}. A requested open that is not allowed
// (already open, zero flow) would degrade to a plain move, which is the
// combination already enumerated, so it is skipped rather than re-run. Both
// agents may not open the same valve in the same step.
func (s *Searcher) dual(a, b int, opened valve.Set, flow, ma, mb int) {
	s.nodes++

	if ma > 0 {
		s.table.Observe(ma, flow)
		if s.reject(flow, ma) {
			s.pruned++
			return
		}
	}
	if mb > 0 {
		s.table.Observe(mb, flow)
		if s.reject(flow, mb) {
			s.pruned++
			return
		}
	}

	var (
		nextA   = s.g.Neighbors(a)
		nextB   = s.g.Neighbors(b)
		activeA = ma > 1 && len(nextA) > 0
		activeB = mb > 1 && len(nextB) > 0
	)
	if !activeA && !activeB {
		s.record(flow, false)
		return
	}

	// Idle agents add no potential.
	var boundA, boundB = ma, mb
	if !activeA {
		boundA = 0
	}
	if !activeB {
		boundB = 0
	}
	if s.cut(opened, flow, a, boundA, b, boundB) {
		s.bounded++
		return
	}

	var (
		rateA    = s.g.Flow(a)
		rateB    = s.g.Flow(b)
		openA    = activeA && rateA > 0 && !opened.Has(a)
		openB    = activeB && rateB > 0 && !opened.Has(b)
		lenA     = 1
		lenB     = 1
		baseA    = 0 // minutes after a plain step
		baseB    = 0
		j, i     int
		oa, ob   int
		toA, toB int
	)
	if activeA {
		lenA = len(nextA)
		baseA = ma - 1
	}
	if activeB {
		lenB = len(nextB)
		baseB = mb - 1
	}

	for j = 0; j < lenA; j++ {
		toA = a
		if activeA {
			toA = nextA[j]
		}
		for i = 0; i < lenB; i++ {
			toB = b
			if activeB {
				toB = nextB[i]
			}
			for oa = 0; oa < 2; oa++ {
				if oa == 1 && !openA {
					continue
				}
				for ob = 0; ob < 2; ob++ {
					if ob == 1 && !openB {
						continue
					}
					if oa == 1 && ob == 1 && a == b {
						continue // one valve, one pair of hands
					}

					var (
						o    = opened
						gain = 0
						na   = baseA
						nb   = baseB
					)
					if oa == 1 {
						o = o.With(a)
						gain += rateA * (ma - 1)
						na--
					}
					if ob == 1 {
						o = o.With(b)
						gain += rateB * (mb - 1)
						nb--
					}
					s.dual(toA, toB, o, flow+gain, na, nb)
				}
			}
		}
	}
}
