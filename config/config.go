package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/valveflow/internal/logging"
	"github.com/katalvlaran/valveflow/restart"
	"github.com/katalvlaran/valveflow/search"
	"github.com/katalvlaran/valveflow/valve"
)

// Defaults applied when fields are absent.
const (
	DefaultAgents    = 1
	DefaultWorkers   = 1
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultRedisKey  = "default"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the top-level configuration. Fields map 1:1 to the YAML keys.
type Config struct {
	// Input is the valve definition file; empty or "-" reads stdin.
	Input string `yaml:"input"`

	// Entry is the starting valve name.
	Entry string `yaml:"entry"`

	// Agents is 1 or 2.
	Agents int `yaml:"agents"`

	// Minutes is the time budget; 0 selects the per-mode default.
	Minutes int `yaml:"minutes"`

	// PruneRate is the probability of dropping a trailing branch. A nil
	// value selects the per-mode default; 0 disables the heuristic.
	PruneRate *float64 `yaml:"prune_rate"`

	// Bound is "none" or "flow".
	Bound string `yaml:"bound"`

	// Seed feeds all randomness; 0 lets the CLI pick one.
	Seed int64 `yaml:"seed"`

	// Workers is the number of parallel restart loops.
	Workers int `yaml:"workers"`

	// Restarts caps the number of searches; 0 means no cap.
	Restarts int `yaml:"restarts"`

	// Patience stops after this many restarts without improvement.
	Patience int `yaml:"patience"`

	// TimeLimit bounds the run's wall-clock time.
	TimeLimit time.Duration `yaml:"time_limit"`

	// Target stops the run once the high-water mark reaches it.
	Target int `yaml:"target"`

	Redis  RedisConfig  `yaml:"redis"`
	Status StatusConfig `yaml:"status"`
	Log    LogConfig    `yaml:"log"`
}

// RedisConfig enables the shared high-water mark when Addr is set.
type RedisConfig struct {
	Addr string `yaml:"addr"`
	// PasswordEnv names the environment variable holding the password.
	PasswordEnv string `yaml:"password_env"`
	DB          int    `yaml:"db"`
	Key         string `yaml:"key"`
}

// Password resolves the password from the environment.
func (r RedisConfig) Password() string {
	if r.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(r.PasswordEnv)
}

// StatusConfig enables the HTTP status endpoint when Addr is set.
type StatusConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads, defaults and validates the file at path.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	return finish(cfg)
}

// Read decodes the file at path without applying defaults, so callers can
// layer overrides (command-line flags) before ApplyDefaults and Validate.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Decode(data)
}

// Parse decodes YAML bytes, then defaults and validates.
func Parse(data []byte) (*Config, error) {
	cfg, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return finish(cfg)
}

// Decode decodes YAML bytes only. Unknown keys are rejected; empty input
// yields a zero Config.
func Decode(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	return &cfg, nil
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills zero-valued fields. Minutes and PruneRate depend on
// Agents, so set Agents first when building a Config by hand.
func (c *Config) ApplyDefaults() {
	if c.Entry == "" {
		c.Entry = valve.DefaultEntry
	}
	if c.Agents == 0 {
		c.Agents = DefaultAgents
	}
	mode := search.OptionsFor(c.Agents)
	if c.Minutes == 0 {
		c.Minutes = mode.Minutes
	}
	if c.PruneRate == nil {
		rate := mode.PruneRate
		c.PruneRate = &rate
	}
	if c.Bound == "" {
		c.Bound = search.NoBound.String()
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Redis.Key == "" {
		c.Redis.Key = DefaultRedisKey
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks the file-level fields and the derived search and restart
// settings.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("%w: redis db %d", ErrInvalid, c.Redis.DB)
	}
	rc, err := c.Restart()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Search converts the configuration into search options.
func (c *Config) Search() (search.Options, error) {
	bound, err := search.ParseBound(c.Bound)
	if err != nil {
		return search.Options{}, err
	}
	opts := search.Options{
		Agents:  c.Agents,
		Minutes: c.Minutes,
		Bound:   bound,
		Seed:    c.Seed,
	}
	if c.PruneRate != nil {
		opts.PruneRate = *c.PruneRate
	}

	return opts, nil
}

// Restart converts the configuration into a restart.Config.
func (c *Config) Restart() (restart.Config, error) {
	opts, err := c.Search()
	if err != nil {
		return restart.Config{}, err
	}

	return restart.Config{
		Search:      opts,
		Workers:     c.Workers,
		MaxRestarts: c.Restarts,
		Patience:    c.Patience,
		TimeLimit:   c.TimeLimit,
		Target:      c.Target,
	}, nil
}
