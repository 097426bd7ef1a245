// Admissible potential for FlowBound.
//
// For the unopened positive-flow valves, the potential is the smaller of two
// upper bounds on the flow the active agents can still add:
//
//  1. Distance bound: valve v opened by an agent at p with m minutes left
//     yields at most flow(v)·(m − hops(p,v) − 1). Summing each valve's best
//     value over agents never undercounts.
//  2. Slot bound: consecutive opens by one agent are at least 2 minutes
//     apart, so its k-th open yields at most flow·(m − 1 − 2k). Pairing the
//     largest flows with the largest slots of all agents (rearrangement
//     inequality) never undercounts either.
//
// Both are admissible, hence so is their minimum. Pruning on
// flow + potential <= best keeps every strictly better completion.

package search

import "github.com/katalvlaran/valveflow/valve"

// potential returns the bound for agents at a (ma minutes) and b (mb
// minutes). Pass b < 0 for a single agent. Agents with <= 1 minute add
// nothing.
//
// Complexity: O(V).
func (s *Searcher) potential(opened valve.Set, a, ma, b, mb int) int {
	if b < 0 {
		mb = 0
	}
	if ma <= 1 && mb <= 1 {
		return 0
	}

	var (
		byDist int
		bySlot int
		slotA  = ma - 1
		slotB  = mb - 1
		slot   int
		f, t   int
		best   int
	)

	// s.byFlow lists positive-flow valves by descending flow, so slots are
	// handed out largest-first while walking it once.
	for _, v := range s.byFlow {
		if opened.Has(v) {
			continue
		}
		f = s.g.Flow(v)

		best = 0
		if ma > 1 {
			if d := s.g.Distance(a, v); d != valve.Unreachable {
				if t = ma - d - 1; t > 0 {
					best = f * t
				}
			}
		}
		if mb > 1 {
			if d := s.g.Distance(b, v); d != valve.Unreachable {
				if t = mb - d - 1; t > 0 && f*t > best {
					best = f * t
				}
			}
		}
		if best == 0 {
			continue // out of reach for everyone
		}
		byDist += best

		// Next largest slot across both agents.
		if slotA >= slotB {
			slot = slotA
			slotA -= 2
		} else {
			slot = slotB
			slotB -= 2
		}
		if slot > 0 {
			bySlot += f * slot
		}
	}

	if bySlot < byDist {
		return bySlot
	}

	return byDist
}
