package valve

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// lineRx matches both the plural and the singular tunnel phrasing:
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
//	Valve HH has flow rate=22; tunnel leads to valve GG
var lineRx = regexp.MustCompile(
	`^Valve\s+(\S+)\s+has flow rate=(-?\d+);\s+tunnels?\s+leads?\s+to\s+valves?\s*(.*)$`)

// ParseLine parses a single valve definition.
func ParseLine(line string) (Record, error) {
	m := lineRx.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}
	flow, err := strconv.Atoi(m[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: flow %q: %v", ErrMalformedLine, m[2], err)
	}

	rec := Record{Name: m[1], Flow: flow}
	for _, name := range strings.Split(m[3], ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		rec.Tunnels = append(rec.Tunnels, name)
	}

	return rec, nil
}

// Parse reads valve definitions, one per line. Blank lines are skipped.
// Errors carry the 1-based line number and wrap ErrMalformedLine.
func Parse(r io.Reader) ([]Record, error) {
	var (
		recs []Record
		no   int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		no++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", no, err)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("valve: read input: %w", err)
	}

	return recs, nil
}
