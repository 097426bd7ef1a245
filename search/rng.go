// RNG utilities shared by the search and the restart driver.
//
// Policy:
//   - Determinism: same seed ⇒ identical pruning decisions and shuffles.
//   - No time-based sources in library code; callers that want fresh runs
//     pick a seed themselves (the CLI does, and logs it).
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Use DeriveRand to give every worker
//     its own stream.
package search

import "math/rand"

// defaultSeed is used when callers pass seed==0.
const defaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand. seed==0 selects defaultSeed.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	var s int64
	s = seed
	if s == 0 {
		s = defaultSeed
	}

	return rand.New(rand.NewSource(s))
}

// DeriveSeed mixes a parent seed and a stream identifier (SplitMix64
// finalizer), so neighboring stream ids give uncorrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveRand creates an independent stream for worker stream from base.
// base.Int63() is consumed once, so deriving the same stream id twice still
// yields different children. A nil base uses defaultSeed as the parent.
func DeriveRand(base *rand.Rand, stream uint64) *rand.Rand {
	var parent int64
	if base == nil {
		parent = defaultSeed
	} else {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}
