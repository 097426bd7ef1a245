// Package search finds how much pressure one or two agents can release by
// opening valves within a time budget.
//
// The engine is a depth-first search over open/move decisions:
//
//   - Single agent: at each valve, for each tunnel, either open the valve
//     and move (2 minutes, gain flow·(minutes−1)) or just move (1 minute).
//   - Two agents: the cross product of both agents' tunnels and open
//     choices, except that both may not open the same valve in one step.
//
// Pruning:
//
//   - Best-flow table (heuristic, inexact). The best flow seen with exactly
//     m minutes left is remembered; a branch trailing that mark is dropped
//     with probability Options.PruneRate. This trades guaranteed optimality
//     for speed. Repeated runs over reshuffled tunnel orders (package
//     restart) converge toward the optimum.
//   - FlowBound (exact, optional). An admissible potential (see bound.go)
//     cuts branches that cannot beat the incumbent.
//
// With PruneRate == 0 the search is exhaustive; with FlowBound as well it is
// still exact and much faster.
//
// Determinism: the only randomness is the *rand.Rand given to (or derived
// for) a Searcher. Same seed, same graph order, same result.
//
// Concurrency: a Searcher is single-goroutine. Parallel runs need their own
// Searcher over their own valve.Graph clone.
package search
