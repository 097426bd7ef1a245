// Package valve models the valve network searched by the engine.
//
// A Graph is built once from parsed Records and never changes afterwards,
// except for the order of each valve's tunnel list (see Graph.Shuffle),
// which the restart driver permutes between runs on its own clone.
//
// Valves are addressed by dense indices 0..Len()-1 in record order. That
// keeps the search hot path free of map lookups and lets an opened-valve
// state fit in a single machine word (Set), so graphs are limited to 64
// valves.
//
// Quick example:
//
//	AA(0) ─── BB(13)
//	  │      ╱
//	CC(2) ──╱
//
//	recs, _ := valve.Parse(strings.NewReader(input))
//	g, err := valve.NewGraph(recs)            // entry "AA" by default
//	i, _ := g.Lookup("BB")
//	fmt.Println(g.Flow(i), g.Distance(g.Entry(), i))
//
// Errors are sentinels (ErrUnknownTunnel, ErrEntryNotFound, ...) wrapped with
// the offending names; test them with errors.Is.
package valve
