package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/valveflow/config"
	"github.com/katalvlaran/valveflow/internal/logging"
	"github.com/katalvlaran/valveflow/valve"
)

// addSearchFlags registers the flags shared by solve and run.
func addSearchFlags(fs *pflag.FlagSet) {
	fs.Int("agents", 0, "number of agents, 1 or 2 (default 1)")
	fs.Int("minutes", 0, "time budget (default 30 for one agent, 26 for two)")
	fs.Float64("prune-rate", 0, "probability of dropping a trailing branch, 0 disables (default 0.74 / 0.89)")
	fs.String("bound", "", "exact pruning: none|flow")
	fs.Int64("seed", 0, "random seed (default: time based, logged)")
}

// settings loads --config (if any), layers changed flags on top, applies
// defaults and validates.
func settings(cmd *cobra.Command, args []string) (*config.Config, error) {
	var (
		cfg = &config.Config{}
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if cfg, err = config.Read(path); err != nil {
			return nil, err
		}
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}

	fs := cmd.Flags()
	setString(fs, "entry", &cfg.Entry)
	setString(fs, "log-level", &cfg.Log.Level)
	setString(fs, "log-format", &cfg.Log.Format)
	setInt(fs, "agents", &cfg.Agents)
	setInt(fs, "minutes", &cfg.Minutes)
	setString(fs, "bound", &cfg.Bound)
	if fs.Changed("seed") {
		cfg.Seed, _ = fs.GetInt64("seed")
	}
	if fs.Changed("prune-rate") {
		v, _ := fs.GetFloat64("prune-rate")
		cfg.PruneRate = &v
	}
	setInt(fs, "workers", &cfg.Workers)
	setInt(fs, "restarts", &cfg.Restarts)
	setInt(fs, "patience", &cfg.Patience)
	setInt(fs, "target", &cfg.Target)
	if fs.Lookup("timeout") != nil && fs.Changed("timeout") {
		cfg.TimeLimit, _ = fs.GetDuration("timeout")
	}
	setString(fs, "redis-addr", &cfg.Redis.Addr)
	setString(fs, "redis-key", &cfg.Redis.Key)
	setString(fs, "status-addr", &cfg.Status.Addr)

	cfg.ApplyDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setString(fs *pflag.FlagSet, name string, dst *string) {
	if fs.Lookup(name) != nil && fs.Changed(name) {
		*dst, _ = fs.GetString(name)
	}
}

func setInt(fs *pflag.FlagSet, name string, dst *int) {
	if fs.Lookup(name) != nil && fs.Changed(name) {
		*dst, _ = fs.GetInt(name)
	}
}

// newLogger builds the logger selected by cfg, writing to w.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	return logging.New(level, cfg.Log.Format, w)
}

// loadGraph reads cfg.Input ("" or "-" for stdin) and builds the graph.
func loadGraph(cfg *config.Config, stdin io.Reader) (*valve.Graph, error) {
	var r = stdin
	if cfg.Input != "" && cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	recs, err := valve.Parse(r)
	if err != nil {
		return nil, err
	}

	return valve.NewGraph(recs, valve.WithEntry(cfg.Entry))
}
