package valve

import "math/bits"

// Set is a set of valve indices, used by the search as its opened-valve
// state. It is a value type: With and Without return a new Set, so a
// recursive call can never leak an opened valve back to its caller.
type Set uint64

// Has reports whether valve i is in the set.
func (s Set) Has(i int) bool { return s&(1<<uint(i)) != 0 }

// With returns s plus valve i.
func (s Set) With(i int) Set { return s | 1<<uint(i) }

// Without returns s minus valve i.
func (s Set) Without(i int) Set { return s &^ (1 << uint(i)) }

// Len returns the number of valves in the set.
func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }
