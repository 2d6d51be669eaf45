package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AnneSpitz/monty-hall-simulator/internal/constants"
	"github.com/AnneSpitz/monty-hall-simulator/internal/game"
	"github.com/AnneSpitz/monty-hall-simulator/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Params configures a simulation run.
type Params struct {
	Trials   int
	Doors    int
	Strategy game.Strategy

	// Seed is used when Seeded is true. Otherwise a seed is drawn from the
	// clock and reported in the Result so the run can be replayed.
	Seed   uint64
	Seeded bool

	// Workers splits the trials across goroutines. 0 means 1.
	Workers int

	Logger *slog.Logger
	Trace  *logging.TrialLogger
}

// Validate checks the run can be played.
func (p Params) Validate() error {
	if p.Trials < 1 {
		return fmt.Errorf("%w: trials must be at least 1, got %d", game.ErrInvalidConfiguration, p.Trials)
	}
	if p.Doors < game.MinDoors {
		return fmt.Errorf("%w: doors must be at least %d, got %d", game.ErrInvalidConfiguration, game.MinDoors, p.Doors)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", game.ErrInvalidConfiguration, p.Workers)
	}
	return nil
}

// RunSimulation plays numberOfTrials games on a single goroutine drawing
// from rng and returns the fraction won.
func RunSimulation(numberOfTrials int, strategy game.Strategy, numberOfDoors int, rng game.Rand) (float64, error) {
	p := Params{Trials: numberOfTrials, Doors: numberOfDoors, Strategy: strategy}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if rng == nil {
		return 0, fmt.Errorf("%w: nil random source", game.ErrInvalidConfiguration)
	}

	w := worker{params: p, rng: rng}
	wins, err := w.play(context.Background(), 0, numberOfTrials)
	if err != nil {
		return 0, err
	}
	return float64(wins) / float64(numberOfTrials), nil
}

// Run plays p.Trials independent games and tallies the wins.
// Any trial error aborts the whole run; no trial is skipped.
func Run(ctx context.Context, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	workers := max(p.Workers, 1)
	workers = min(workers, p.Trials)

	seed := p.Seed
	if !p.Seeded {
		seed = uint64(time.Now().UnixNano())
	}

	res := &Result{
		RunID:    uuid.NewString(),
		Strategy: p.Strategy.String(),
		Doors:    p.Doors,
		Trials:   p.Trials,
		Seed:     seed,
		Workers:  workers,
	}
	logger = logger.With("run_id", res.RunID)
	logger.Debug("simulation starting",
		"strategy", res.Strategy, "doors", p.Doors, "trials", p.Trials,
		"seed", seed, "workers", workers)

	start := time.Now()
	partial := make([]int, workers)
	g, gctx := errgroup.WithContext(ctx)

	offset := 0
	for i := 0; i < workers; i++ {
		n := p.Trials / workers
		if i < p.Trials%workers {
			n++
		}
		w := worker{
			params: p,
			runID:  res.RunID,
			rng:    game.NewSeededRand(seed, uint64(i)),
			logger: logger,
		}
		first := offset
		g.Go(func() error {
			wins, err := w.play(gctx, first, n)
			if err != nil {
				return err
			}
			partial[i] = wins
			return nil
		})
		offset += n
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulation %s: %w", res.RunID, err)
	}

	for _, wins := range partial {
		res.Wins += wins
	}
	res.WinRate = float64(res.Wins) / float64(res.Trials)
	res.Elapsed = time.Since(start)

	logger.Debug("simulation finished", "wins", res.Wins, "win_rate", res.WinRate, "elapsed", res.Elapsed)
	return res, nil
}

// Compare runs the stay and the switch strategy with the same parameters.
// Both runs use the same seed, so their first picks line up.
func Compare(ctx context.Context, p Params) (*Comparison, error) {
	if !p.Seeded {
		p.Seed = uint64(time.Now().UnixNano())
		p.Seeded = true
	}

	stay := p
	stay.Strategy = game.Stay
	stayRes, err := Run(ctx, stay)
	if err != nil {
		return nil, fmt.Errorf("stay run: %w", err)
	}

	sw := p
	sw.Strategy = game.Switch
	switchRes, err := Run(ctx, sw)
	if err != nil {
		return nil, fmt.Errorf("switch run: %w", err)
	}

	return &Comparison{
		Stay:           stayRes,
		Switch:         switchRes,
		ExpectedStay:   ExpectedWinRate(game.Stay, p.Doors),
		ExpectedSwitch: ExpectedWinRate(game.Switch, p.Doors),
	}, nil
}

// worker plays a contiguous block of trials with its own random source.
type worker struct {
	params Params
	runID  string
	rng    game.Rand
	logger *slog.Logger
}

// play runs n trials numbered from first and returns the number won.
func (w worker) play(ctx context.Context, first, n int) (int, error) {
	tracing := w.params.Trace.Enabled()
	echo := w.logger != nil && w.logger.Enabled(ctx, logging.LevelTrace)

	wins := 0
	for i := 0; i < n; i++ {
		if i%constants.CtxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		out, err := RunTrial(w.params.Doors, w.params.Strategy, w.rng)
		if err != nil {
			return 0, fmt.Errorf("trial %d: %w", first+i, err)
		}
		if out.Won {
			wins++
		}

		if tracing {
			w.params.Trace.Log(map[string]any{
				"event":    "trial",
				"run_id":   w.runID,
				"trial":    first + i,
				"strategy": w.params.Strategy.String(),
				"doors":    w.params.Doors,
				"prize":    out.Prize,
				"initial":  out.Initial,
				"revealed": out.Revealed,
				"final":    out.Final,
				"won":      out.Won,
			})
		}
		if echo {
			w.logger.Log(ctx, logging.LevelTrace, "trial",
				"trial", first+i, "prize", out.Prize, "initial", out.Initial,
				"final", out.Final, "won", out.Won)
		}
	}
	return wins, nil
}
