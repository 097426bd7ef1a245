// Package valveflow searches valve networks for the plan that releases the
// most pressure before time runs out.
//
// A network is a set of named valves joined by tunnels. Moving through a
// tunnel costs one minute and opening a valve costs one more; an opened
// valve releases its flow rate every remaining minute. One agent or two
// agents working in parallel start at the entry valve (AA by default).
//
// Packages:
//
//	valve/    — parsing, the immutable Graph, hop distances, valve Set bitmask
//	search/   — single- and two-agent depth-first search with the best-flow
//	            table, heuristic pruning and an optional exact bound
//	restart/  — parallel restart loop, shared high-water mark (memory or
//	            Redis) and Prometheus metrics
//	status/   — HTTP view of a running loop: /healthz, /highwater, /metrics
//	config/   — YAML configuration
//	cmd/valveflow — the command-line front end
//
// Quick example:
//
//	recs, _ := valve.Parse(strings.NewReader(input))
//	g, _ := valve.NewGraph(recs)
//	res, _ := search.Solve(g, search.DefaultOptions())
//	fmt.Println(res.Flow, res.Path)
//
// The heuristic prune makes a single search a sample rather than a proof;
// restart.Driver repeats it with reshuffled tunnel orders and keeps the
// best. Setting PruneRate to 0 makes the search exact.
package valveflow
