package search

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults for the two search modes.
const (
	DefaultSingleMinutes   = 30
	DefaultDualMinutes     = 26
	DefaultSinglePruneRate = 0.74
	DefaultDualPruneRate   = 0.89

	// MaxMinutes bounds the budget, and with it the recursion depth.
	MaxMinutes = 256
)

// Sentinel errors for Options validation.
var (
	ErrNilGraph     = errors.New("search: graph is nil")
	ErrBadAgents    = errors.New("search: agents must be 1 or 2")
	ErrBadMinutes   = errors.New("search: minutes out of range")
	ErrBadPruneRate = errors.New("search: prune rate must be within [0,1]")
	ErrBadBound     = errors.New("search: unknown bound policy")
)

// BoundPolicy selects the exact pruning applied on top of the heuristic.
type BoundPolicy int

const (
	// NoBound relies on the best-flow table alone.
	NoBound BoundPolicy = iota

	// FlowBound also cuts branches whose admissible potential cannot beat
	// the incumbent.
	FlowBound
)

// String returns the configuration name of the policy.
func (b BoundPolicy) String() string {
	switch b {
	case NoBound:
		return "none"
	case FlowBound:
		return "flow"
	default:
		return fmt.Sprintf("BoundPolicy(%d)", int(b))
	}
}

// ParseBound maps a configuration name ("none", "flow") to a BoundPolicy.
// The empty string selects NoBound.
func ParseBound(s string) (BoundPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoBound, nil
	case "flow":
		return FlowBound, nil
	default:
		return NoBound, fmt.Errorf("%w: %q", ErrBadBound, s)
	}
}

// Options configures one search.
type Options struct {
	// Agents is 1 or 2.
	Agents int

	// Minutes is the time budget of every agent.
	Minutes int

	// PruneRate is the probability of abandoning a branch whose flow trails
	// the best-flow table for its minutes left. 0 disables the heuristic.
	PruneRate float64

	// Bound selects optional exact pruning.
	Bound BoundPolicy

	// Seed feeds the RNG when none is supplied; 0 selects a fixed default.
	Seed int64
}

// DefaultOptions returns the single-agent defaults: 30 minutes, prune rate 0.74.
func DefaultOptions() Options {
	return Options{
		Agents:    1,
		Minutes:   DefaultSingleMinutes,
		PruneRate: DefaultSinglePruneRate,
		Bound:     NoBound,
	}
}

// DualOptions returns the two-agent defaults: 26 minutes, prune rate 0.89.
func DualOptions() Options {
	return Options{
		Agents:    2,
		Minutes:   DefaultDualMinutes,
		PruneRate: DefaultDualPruneRate,
		Bound:     NoBound,
	}
}

// OptionsFor returns DefaultOptions or DualOptions by agent count.
func OptionsFor(agents int) Options {
	if agents == 2 {
		return DualOptions()
	}

	return DefaultOptions()
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if o.Agents != 1 && o.Agents != 2 {
		return fmt.Errorf("%w: got %d", ErrBadAgents, o.Agents)
	}
	if o.Minutes < 0 || o.Minutes > MaxMinutes {
		return fmt.Errorf("%w: got %d, want 0..%d", ErrBadMinutes, o.Minutes, MaxMinutes)
	}
	// NaN fails both comparisons, so test the valid range positively.
	if !(o.PruneRate >= 0 && o.PruneRate <= 1) {
		return fmt.Errorf("%w: got %v", ErrBadPruneRate, o.PruneRate)
	}
	if o.Bound != NoBound && o.Bound != FlowBound {
		return fmt.Errorf("%w: %d", ErrBadBound, int(o.Bound))
	}

	return nil
}

// Step is one single-agent decision: leave Valve, opening it first when Open.
type Step struct {
	Valve string
	Open  bool
}

// Path is an ordered list of steps.
type Path []Step

// String renders the path with upper-case names for opened valves and
// lower-case names for valves merely passed through, e.g. "aaDDccBB".
func (p Path) String() string {
	var sb strings.Builder
	for _, s := range p {
		if s.Open {
			sb.WriteString(strings.ToUpper(s.Valve))
		} else {
			sb.WriteString(strings.ToLower(s.Valve))
		}
	}

	return sb.String()
}

// Opened returns the names of the valves opened along the path, in order.
func (p Path) Opened() []string {
	var out []string
	for _, s := range p {
		if s.Open {
			out = append(out, s.Valve)
		}
	}

	return out
}

// Result is the outcome of one search.
type Result struct {
	// Flow is the best total pressure found.
	Flow int

	// Path is the plan behind Flow (single agent only; nil for two agents).
	Path Path

	// Nodes counts search states visited.
	Nodes int64

	// Pruned counts states dropped by the best-flow heuristic.
	Pruned int64

	// Bounded counts states cut by FlowBound.
	Bounded int64
}
