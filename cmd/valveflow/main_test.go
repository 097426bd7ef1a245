package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleInput = `Valve AA has flow rate=0; tunnels lead to valves BB, CC
Valve BB has flow rate=13; tunnels lead to valves AA, CC
Valve CC has flow rate=2; tunnels lead to valves AA, BB
`

// execute runs the command tree with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestSolve_Stdin(t *testing.T) {
	out, err := execute(t, triangleInput,
		"solve", "--minutes", "5", "--prune-rate", "0", "--bound", "flow", "--seed", "1")
	require.NoError(t, err)
	assert.Equal(t, "flow: 41\npath: aaBBCC\n", out)
}

func TestSolve_DualAgents(t *testing.T) {
	out, err := execute(t, triangleInput,
		"solve", "-", "--agents", "2", "--minutes", "5", "--prune-rate", "0", "--seed", "1")
	require.NoError(t, err)
	assert.Equal(t, "flow: 45\n", out)
}

func TestSolve_File(t *testing.T) {
	out, err := execute(t, "",
		"solve", "testdata/example.txt", "--minutes", "12", "--prune-rate", "0", "--bound", "flow", "--seed", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "flow: "), out)
	assert.Contains(t, out, "path: aa")
}

func TestSolve_Errors(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"bad agents", triangleInput, []string{"solve", "--agents", "3"}},
		{"bad bound", triangleInput, []string{"solve", "--bound", "tight"}},
		{"bad prune rate", triangleInput, []string{"solve", "--prune-rate", "1.5"}},
		{"bad log level", triangleInput, []string{"solve", "--log-level", "loud"}},
		{"missing entry", triangleInput, []string{"solve", "--entry", "ZZ"}},
		{"malformed input", "Valve AA is broken\n", []string{"solve"}},
		{"missing file", "", []string{"solve", "testdata/nope.txt"}},
		{"too many args", "", []string{"solve", "a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.stdin, tc.args...)
			assert.Error(t, err)
		})
	}
}

func TestRun_MaxRestarts(t *testing.T) {
	out, err := execute(t, triangleInput,
		"run", "--minutes", "5", "--prune-rate", "0", "--restarts", "3", "--workers", "2", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "flow: 41\n")
	assert.Contains(t, out, "path: ")
	assert.Contains(t, out, "restarts: 3\n")
	assert.Contains(t, out, "stopped: max_restarts")
}

func TestRun_TargetWithProgress(t *testing.T) {
	out, err := execute(t, triangleInput,
		"run", "--agents", "2", "--minutes", "5", "--prune-rate", "0",
		"--target", "45", "--restarts", "50", "--progress", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "restart 1: 45\n")
	assert.Contains(t, out, "flow: 45\n")
	assert.Contains(t, out, "stopped: target")
}

func TestRun_ConfigFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "valves.txt")
	require.NoError(t, os.WriteFile(input, []byte(triangleInput), 0o600))
	conf := filepath.Join(dir, "valveflow.yaml")
	require.NoError(t, os.WriteFile(conf, []byte(
		"input: "+input+"\nminutes: 5\nprune_rate: 0\nrestarts: 100\nlog:\n  level: error\n"), 0o600))

	// --restarts on the command line wins over the file.
	out, err := execute(t, "", "run", "--config", conf, "--restarts", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "flow: 41\n")
	assert.Contains(t, out, "restarts: 2\n")
}

func TestRun_UnknownConfigKey(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "valveflow.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("agent: 2\n"), 0o600))

	_, err := execute(t, triangleInput, "run", "--config", conf, "--restarts", "1")
	require.Error(t, err)
}

func TestGraph_Listing(t *testing.T) {
	out, err := execute(t, triangleInput+"Valve DD has flow rate=5; tunnel leads to valve DD\n", "graph")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"VALVE", "FLOW", "HOPS", "TUNNELS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"BB", "13", "1", "AA,CC"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"DD", "5", "-", "DD"}, strings.Fields(lines[4]))
	assert.Equal(t, "entry AA, 4 valves, 3 reachable", lines[5])
}
