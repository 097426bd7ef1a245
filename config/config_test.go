package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/search"
)

func TestLoad_File(t *testing.T) {
	t.Setenv("VALVEFLOW_REDIS_PASSWORD", "s3cret")

	cfg, err := config.Load("testdata/valveflow.yaml")
	require.NoError(t, err)

	require.Equal(t, "valves.txt", cfg.Input)
	require.Equal(t, 2, cfg.Agents)
	require.Equal(t, search.DefaultDualMinutes, cfg.Minutes, "minutes default follows agents")
	require.InDelta(t, 0.5, *cfg.PruneRate, 1e-12)
	require.Equal(t, 2*time.Minute, cfg.TimeLimit)
	require.Equal(t, "s3cret", cfg.Redis.Password())
	require.Equal(t, "example-part2", cfg.Redis.Key)
	require.Equal(t, ":2112", cfg.Status.Addr)

	rc, err := cfg.Restart()
	require.NoError(t, err)
	require.Equal(t, search.FlowBound, rc.Search.Bound)
	require.Equal(t, int64(42), rc.Search.Seed)
	require.Equal(t, 4, rc.Workers)
	require.Equal(t, 1000, rc.MaxRestarts)
	require.Equal(t, 50, rc.Patience)
	require.Equal(t, 1707, rc.Target)
}

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)

	opts, err := cfg.Search()
	require.NoError(t, err)
	require.Equal(t, search.DefaultOptions(), opts)
}

func TestParse_ZeroPruneRateIsKept(t *testing.T) {
	cfg, err := config.Parse([]byte("prune_rate: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.PruneRate)
	require.Zero(t, *cfg.PruneRate)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"agents":     "agents: 3\n",
		"prune rate": "prune_rate: 2\n",
		"bound":      "bound: tight\n",
		"workers":    "workers: -1\n",
		"log level":  "log: {level: chatty}\n",
		"log format": "log: {format: xml}\n",
		"redis db":   "redis: {db: -2}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := config.Parse([]byte("minuets: 30\n"))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("testdata/nope.yaml")
	require.Error(t, err)
}

func TestRead_LeavesDefaultsToCaller(t *testing.T) {
	cfg, err := config.Read("testdata/valveflow.yaml")
	require.NoError(t, err)
	require.Zero(t, cfg.Minutes)

	cfg.Agents = 1 // e.g. a flag override
	cfg.PruneRate = nil
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, search.DefaultSingleMinutes, cfg.Minutes)
	require.InDelta(t, search.DefaultSinglePruneRate, *cfg.PruneRate, 1e-12)
}
