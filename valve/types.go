package valve

import "errors"

// MaxValves is the largest graph a Set can describe.
const MaxValves = 64

// DefaultEntry is the conventional starting valve.
const DefaultEntry = "AA"

// Unreachable is the hop distance reported between disconnected valves.
const Unreachable = -1

// Sentinel errors for graph construction and parsing.
var (
	// ErrNoValves indicates that NewGraph received no records.
	ErrNoValves = errors.New("valve: no valves")

	// ErrEmptyName indicates a record or tunnel with an empty valve name.
	ErrEmptyName = errors.New("valve: empty valve name")

	// ErrDuplicateValve indicates two records with the same name.
	ErrDuplicateValve = errors.New("valve: duplicate valve")

	// ErrNegativeFlow indicates a record with a flow rate below zero.
	ErrNegativeFlow = errors.New("valve: negative flow rate")

	// ErrUnknownTunnel indicates a tunnel to a valve that has no record.
	ErrUnknownTunnel = errors.New("valve: tunnel to unknown valve")

	// ErrEntryNotFound indicates that the configured entry valve has no record.
	ErrEntryNotFound = errors.New("valve: entry valve not found")

	// ErrTooManyValves indicates more than MaxValves records.
	ErrTooManyValves = errors.New("valve: too many valves")

	// ErrMalformedLine indicates an input line the parser cannot read.
	ErrMalformedLine = errors.New("valve: malformed line")
)

// Record is one parsed valve definition.
type Record struct {
	// Name uniquely identifies the valve (two letters by convention).
	Name string

	// Flow is the pressure released per minute once the valve is open.
	Flow int

	// Tunnels lists the names of directly reachable valves, in input order.
	Tunnels []string
}

// Valve is a resolved graph node.
type Valve struct {
	// ID is the valve name.
	ID string

	// Flow is the pressure released per minute once the valve is open.
	Flow int

	// Tunnels holds neighbor indices in their current order.
	Tunnels []int
}

// Option configures NewGraph.
type Option func(*graphOptions)

type graphOptions struct {
	entry string
}

// WithEntry sets the starting valve name. An empty name keeps DefaultEntry.
func WithEntry(name string) Option {
	return func(o *graphOptions) {
		if name != "" {
			o.entry = name
		}
	}
}
