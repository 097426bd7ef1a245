package search

import "github.com/katalvlaran/valveflow/valve"

// single explores one agent standing at cur with minutes left.
//
// Order per state: table update, heuristic prune, terminal check, bound,
// then for every tunnel "open here and move" (when allowed) before
// "just move". opened is passed by value, so no undo is needed.
func (s *Searcher) single(cur int, opened valve.Set, flow, minutes int) {
	s.nodes++

	s.table.Observe(minutes, flow)
	if s.reject(flow, minutes) {
		s.pruned++
		return
	}

	next := s.g.Neighbors(cur)
	if minutes <= 1 || len(next) == 0 {
		s.record(flow, true)
		return
	}

	if s.cut(opened, flow, cur, minutes, -1, 0) {
		s.bounded++
		return
	}

	var (
		id      = s.g.ID(cur)
		rate    = s.g.Flow(cur)
		canOpen = rate > 0 && !opened.Has(cur)
		gain    = rate * (minutes - 1)
	)
	for _, v := range next {
		if canOpen {
			s.path = append(s.path, Step{Valve: id, Open: true})
			s.single(v, opened.With(cur), flow+gain, minutes-2)
			s.path = s.path[:len(s.path)-1]
		}

		s.path = append(s.path, Step{Valve: id})
		s.single(v, opened, flow, minutes-1)
		s.path = s.path[:len(s.path)-1]
	}
}
