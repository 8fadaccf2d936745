// Package runner executes races: one-off runs and seeded parallel batches.
package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mwolters/athletesim/internal/board"
	"github.com/mwolters/athletesim/internal/errors"
	"github.com/mwolters/athletesim/internal/race"
	"github.com/mwolters/athletesim/internal/race/ability"
	"github.com/mwolters/athletesim/internal/uuid"
)

// Config describes the races a runner executes
type Config struct {
	Board   *board.Board
	Racers  []race.RacerName
	Policy  race.Policy
	Rules   race.Rules
	Workers int // parallel races per batch; 0 means 4
	Verbose bool

	// UUIDGenerator defaults to the google generator when nil
	UUIDGenerator uuid.Generator
}

const defaultWorkers = 4

// BatchEntry is one race of a batch, index-aligned with its derived seed.
// Exactly one of Result and Err is set.
type BatchEntry struct {
	Index  int
	Seed   int64
	Result *race.Result
	Err    error
}

// Runner runs races from a fixed configuration
type Runner struct {
	cfg  Config
	uuid uuid.Generator
}

// New validates the configuration once so batches fail fast
func New(cfg Config) (*Runner, error) {
	if cfg.Board == nil {
		return nil, errors.Configuration("board is required")
	}
	if len(cfg.Racers) < 2 {
		return nil, errors.Configurationf("at least two racers required, got %d", len(cfg.Racers))
	}
	if cfg.Policy == nil {
		return nil, errors.Configuration("ai policy is required")
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}
	return &Runner{cfg: cfg, uuid: cfg.UUIDGenerator}, nil
}

// Run executes a single race with the given seed
func (r *Runner) Run(ctx context.Context, seed int64) (result *race.Result, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// An ability bug must fail its race, not the batch
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = errors.Internalf("race panicked: %v", rec)
		}
	}()

	engine, err := race.New(&race.Config{
		RaceID:  r.uuid.New(),
		Board:   r.cfg.Board,
		Racers:  r.cfg.Racers,
		Seed:    seed,
		Policy:  r.cfg.Policy,
		Factory: ability.New,
		Rules:   r.cfg.Rules,
		Verbose: r.cfg.Verbose,
	})
	if err != nil {
		return nil, err
	}
	return engine.Run()
}

// RunBatch executes n races in parallel with seeds batchSeed, batchSeed+1,
// and so on. Entries come back index-aligned; per-race failures land in
// their entry instead of aborting the batch.
func (r *Runner) RunBatch(ctx context.Context, batchSeed int64, n int) ([]BatchEntry, error) {
	if n <= 0 {
		return nil, errors.InvalidArgumentf("batch size must be positive, got %d", n)
	}

	entries := make([]BatchEntry, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i := 0; i < n; i++ {
		i := i
		seed := batchSeed + int64(i)
		entries[i] = BatchEntry{Index: i, Seed: seed}
		g.Go(func() error {
			result, err := r.Run(ctx, seed)
			if err != nil {
				entries[i].Err = fmt.Errorf("race %d (seed %d): %w", i, seed, err)
				return nil
			}
			entries[i].Result = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return entries, err
	}
	return entries, nil
}
