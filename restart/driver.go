package restart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/valveflow/internal/logging"
	"github.com/katalvlaran/valveflow/search"
	"github.com/katalvlaran/valveflow/valve"
)

// Sentinel errors for driver construction.
var (
	ErrNilGraph  = errors.New("restart: graph is nil")
	ErrBadConfig = errors.New("restart: invalid config")
)

// StopReason tells why Run returned.
type StopReason string

const (
	StopCanceled    StopReason = "canceled"
	StopTimeLimit   StopReason = "time_limit"
	StopMaxRestarts StopReason = "max_restarts"
	StopPatience    StopReason = "patience"
	StopTarget      StopReason = "target"
	StopError       StopReason = "error"
)

// stopCause carries a StopReason through context.WithCancelCause.
type stopCause struct{ reason StopReason }

func (c stopCause) Error() string { return "restart: stop: " + string(c.reason) }

// Config controls the restart loop. Zero stop fields mean "no limit".
type Config struct {
	// Search is applied to every restart. Search.Seed seeds the worker streams.
	Search search.Options

	// Workers is the number of parallel restart loops (>= 1).
	Workers int

	// MaxRestarts caps the total number of searches across workers.
	MaxRestarts int

	// Patience stops after this many consecutive restarts that did not raise
	// the high-water mark.
	Patience int

	// TimeLimit bounds the wall-clock time of Run.
	TimeLimit time.Duration

	// Target stops once the high-water mark reaches it (a known optimum).
	Target int
}

// DefaultConfig returns one worker with the search defaults for agents and
// no stop condition: Run then lasts until its context is cancelled.
func DefaultConfig(agents int) Config {
	return Config{
		Search:  search.OptionsFor(agents),
		Workers: 1,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.Search.Validate(); err != nil {
		return err
	}
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d < 1", ErrBadConfig, c.Workers)
	case c.MaxRestarts < 0:
		return fmt.Errorf("%w: max restarts %d < 0", ErrBadConfig, c.MaxRestarts)
	case c.Patience < 0:
		return fmt.Errorf("%w: patience %d < 0", ErrBadConfig, c.Patience)
	case c.TimeLimit < 0:
		return fmt.Errorf("%w: time limit %s < 0", ErrBadConfig, c.TimeLimit)
	case c.Target < 0:
		return fmt.Errorf("%w: target %d < 0", ErrBadConfig, c.Target)
	}

	return nil
}

// Report describes one finished restart.
type Report struct {
	Worker    int
	Restart   int64 // 1-based, across workers
	Result    search.Result
	HighWater int // never decreases from one report to the next
	Improved  bool
	Elapsed   time.Duration
}

// Summary is returned by Run.
type Summary struct {
	HighWater int
	Restarts  int64
	// Path is the plan of the best restart seen by this driver (single agent).
	Path    search.Path
	Elapsed time.Duration
	Reason  StopReason
}

// Option configures a Driver.
type Option func(*Driver)

// WithHighWater replaces the default in-memory mark, e.g. with a Redis store.
func WithHighWater(hw HighWater) Option {
	return func(d *Driver) {
		if hw != nil {
			d.mark = hw
		}
	}
}

// WithLogger sets the logger (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics makes the driver update m.
func WithMetrics(m *Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithObserver registers fn to receive every Report. Calls are serialized.
func WithObserver(fn func(Report)) Option {
	return func(d *Driver) { d.observer = fn }
}

// Driver runs restarts.
type Driver struct {
	g        *valve.Graph
	cfg      Config
	mark     HighWater
	logger   *slog.Logger
	metrics  *Metrics
	observer func(Report)

	restarts atomic.Int64
	stale    atomic.Int64

	mu       sync.Mutex // guards the fields below and observer calls
	lastMark int
	bestFlow int
	bestPath search.Path
}

// New validates cfg and returns a Driver. g itself is never shuffled; every
// worker gets a clone.
func New(g *valve.Graph, cfg Config, opts ...Option) (*Driver, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		g:      g,
		cfg:    cfg,
		mark:   NewMemoryHighWater(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// HighWater returns the store backing the mark.
func (d *Driver) HighWater() HighWater { return d.mark }

// Run executes restarts until a stop condition holds. Stopping, including
// by cancellation of ctx, is not an error; only a failing HighWater store is.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	var start = time.Now()

	d.restarts.Store(0)
	d.stale.Store(0)
	d.mu.Lock()
	d.lastMark, d.bestFlow, d.bestPath = 0, 0, nil
	d.mu.Unlock()

	if d.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.TimeLimit)
		defer cancel()
	}
	runCtx, stop := context.WithCancelCause(ctx)
	defer stop(nil)

	// One searcher per worker, each on its own clone and RNG stream.
	base := search.NewRand(d.cfg.Search.Seed)
	searchers := make([]*search.Searcher, d.cfg.Workers)
	for w := range searchers {
		s, err := search.NewWithRand(d.g.Clone(), d.cfg.Search, search.DeriveRand(base, uint64(w)))
		if err != nil {
			return Summary{}, err
		}
		searchers[w] = s
	}

	d.logger.Info("restart loop starting",
		"workers", d.cfg.Workers,
		"agents", d.cfg.Search.Agents,
		"minutes", d.cfg.Search.Minutes,
		"prune_rate", d.cfg.Search.PruneRate,
		"bound", d.cfg.Search.Bound.String(),
		"seed", d.cfg.Search.Seed,
	)

	eg, egCtx := errgroup.WithContext(runCtx)
	for w, s := range searchers {
		w, s := w, s
		eg.Go(func() error {
			return d.work(egCtx, w, s, stop)
		})
	}
	runErr := eg.Wait()

	var reason StopReason
	var sc stopCause
	switch cause := context.Cause(runCtx); {
	case runErr != nil:
		reason = StopError
	case errors.As(cause, &sc):
		reason = sc.reason
	case errors.Is(cause, context.DeadlineExceeded) && d.cfg.TimeLimit > 0:
		reason = StopTimeLimit
	default:
		reason = StopCanceled
	}

	mark, err := d.mark.Load(context.WithoutCancel(ctx))
	if err != nil && runErr == nil {
		runErr = err
	}

	d.mu.Lock()
	sum := Summary{
		HighWater: max(mark, d.lastMark),
		Restarts:  d.restarts.Load(),
		Path:      d.bestPath,
		Elapsed:   time.Since(start),
		Reason:    reason,
	}
	d.mu.Unlock()

	if runErr != nil {
		d.logger.Error("restart loop failed", "error", runErr, "restarts", sum.Restarts)
		return sum, runErr
	}
	d.logger.Info("restart loop stopped",
		"reason", string(sum.Reason),
		"high_water", sum.HighWater,
		"restarts", sum.Restarts,
		"elapsed", sum.Elapsed,
	)

	return sum, nil
}

// work is one worker's loop: search, offer, report, shuffle.
func (d *Driver) work(ctx context.Context, w int, s *search.Searcher, stop context.CancelCauseFunc) error {
	var (
		g        = s.Graph()
		offerCtx = context.WithoutCancel(ctx)
	)
	for ctx.Err() == nil {
		n := d.restarts.Add(1)
		if d.cfg.MaxRestarts > 0 && n > int64(d.cfg.MaxRestarts) {
			d.restarts.Add(-1)
			stop(stopCause{StopMaxRestarts})
			return nil
		}

		t0 := time.Now()
		res := s.Run()

		mark, raised, err := d.mark.Offer(offerCtx, res.Flow)
		if err != nil {
			return err
		}
		d.observe(Report{
			Worker:    w,
			Restart:   n,
			Result:    res,
			HighWater: mark,
			Improved:  raised,
			Elapsed:   time.Since(t0),
		})

		if raised {
			d.stale.Store(0)
		} else if d.cfg.Patience > 0 && d.stale.Add(1) >= int64(d.cfg.Patience) {
			stop(stopCause{StopPatience})
			return nil
		}
		if d.cfg.Target > 0 && mark >= d.cfg.Target {
			stop(stopCause{StopTarget})
			return nil
		}

		// Different tunnel order, different branches dropped next time.
		g.Shuffle(s.Rand())
	}

	return nil
}

// observe publishes a report to metrics, log and observer.
func (d *Driver) observe(r Report) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Offers from different workers can complete out of order.
	if r.HighWater < d.lastMark {
		r.HighWater = d.lastMark
	}
	d.lastMark = r.HighWater
	if r.Result.Flow > d.bestFlow {
		d.bestFlow = r.Result.Flow
		d.bestPath = r.Result.Path
	}

	if m := d.metrics; m != nil {
		m.Restarts.Inc()
		m.RestartFlow.Observe(float64(r.Result.Flow))
		m.HighWater.Set(float64(r.HighWater))
		m.Nodes.Add(float64(r.Result.Nodes))
		m.Pruned.Add(float64(r.Result.Pruned))
		m.Bounded.Add(float64(r.Result.Bounded))
		if r.Improved {
			m.Improvements.Inc()
		}
	}

	d.logger.Debug("restart finished",
		"worker", r.Worker,
		"restart", r.Restart,
		"flow", r.Result.Flow,
		"high_water", r.HighWater,
		"nodes", r.Result.Nodes,
		"pruned", r.Result.Pruned,
		"elapsed", r.Elapsed,
	)
	if r.Improved {
		d.logger.Info("high-water mark raised",
			"flow", r.HighWater,
			"restart", r.Restart,
			"path", r.Result.Path.String(),
		)
	}

	if d.observer != nil {
		d.observer(r)
	}
}
