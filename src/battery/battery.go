package battery

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lost-woods/randtest/src/bits"
)

const (
	// DefaultMinBits is the shortest sequence every analyzer is defined for:
	// one full Poker-16 block.
	DefaultMinBits = 16
	DefaultMaxBits = 1 << 26
)

type Analyzer struct {
	Name string
	Run  func(bits.Sequence) Result
}

// Analyzers lists the battery in report order.
var Analyzers = []Analyzer{
	{NameFrequency, Frequency},
	{NameSerial, Serial},
	{NamePoker8, Poker8},
	{NamePoker16, Poker16},
	{NameRuns, Runs},
	{NameAutocorrelation, Autocorrelation},
	{NameLinearComplexity, LinearComplexity},
}

type Config struct {
	Parallel bool
	Workers  int
	MinBits  int
	MaxBits  int
}

func DefaultConfig() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
		MinBits: DefaultMinBits,
		MaxBits: DefaultMaxBits,
	}
}

type Battery struct {
	cfg Config
	log *zap.SugaredLogger
}

func New(cfg Config, log *zap.SugaredLogger) *Battery {
	if cfg.MinBits <= 0 {
		cfg.MinBits = DefaultMinBits
	}
	if cfg.MaxBits <= 0 {
		cfg.MaxBits = DefaultMaxBits
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Battery{cfg: cfg, log: log}
}

// Check reports whether seq can be tested at all. It is run before any
// analyzer so a rejected sequence never yields a partial report.
func (b *Battery) Check(seq bits.Sequence) error {
	n := seq.Len()
	if n < b.cfg.MinBits {
		return fmt.Errorf("%w: sequence too short (%d bits, need %d)", bits.ErrInputUnavailable, n, b.cfg.MinBits)
	}
	if n > b.cfg.MaxBits {
		return fmt.Errorf("%w: %d bits exceeds the limit of %d", ErrResourceExhausted, n, b.cfg.MaxBits)
	}
	return nil
}

// Run executes every analyzer once against seq and returns the results in
// report order.
func (b *Battery) Run(seq bits.Sequence) ([]Result, error) {
	return b.RunContext(context.Background(), seq)
}

// RunContext is Run with cancellation. ctx is checked before each analyzer
// starts; an analyzer already running finishes first. A cancelled run
// returns no results.
func (b *Battery) RunContext(ctx context.Context, seq bits.Sequence) ([]Result, error) {
	if err := b.Check(seq); err != nil {
		return nil, err
	}

	results := make([]Result, len(Analyzers))
	start := time.Now()

	if !b.cfg.Parallel {
		for i, a := range Analyzers {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("battery interrupted before %s: %w", a.Name, err)
			}
			results[i] = b.runOne(a, seq)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.cfg.Workers)
		for i, a := range Analyzers {
			i, a := i, a
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("battery interrupted before %s: %w", a.Name, err)
				}
				results[i] = b.runOne(a, seq)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("battery interrupted: %w", err)
		}
	}

	b.log.Infow("battery finished",
		"bits", seq.Len(),
		"parallel", b.cfg.Parallel,
		"elapsed", time.Since(start),
	)
	return results, nil
}

func (b *Battery) runOne(a Analyzer, seq bits.Sequence) Result {
	t := time.Now()
	res := a.Run(seq)
	if res.Err != nil {
		b.log.Warnw("analyzer could not judge the sequence", "test", a.Name, "error", res.Err)
	}
	b.log.Debugw("analyzer finished",
		"test", a.Name,
		"verdict", res.Verdict.String(),
		"statistic", res.Statistic,
		"elapsed", time.Since(t),
	)
	return res
}
