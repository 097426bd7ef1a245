// Package restart drives repeated randomized searches and keeps the best
// flow ever found (the high-water mark).
//
// Each restart reshuffles every valve's tunnel order, which changes which
// branches the best-flow heuristic drops, so the mark creeps toward the true
// optimum. The driver never proves optimality; it reports a non-decreasing
// lower bound.
//
// Workers run restarts in parallel. Every worker owns a graph clone, an RNG
// stream derived from the base seed, and its own search.Searcher; the only
// shared state is the HighWater store, updated with a compare-and-set.
//
// Stop conditions (all optional, first one wins): context cancellation,
// Config.TimeLimit, Config.MaxRestarts, Config.Patience, Config.Target.
package restart
