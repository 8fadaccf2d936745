package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mwolters/athletesim/internal/ai"
	"github.com/mwolters/athletesim/internal/board"
	"github.com/mwolters/athletesim/internal/config"
	"github.com/mwolters/athletesim/internal/metrics"
	"github.com/mwolters/athletesim/internal/race"
	"github.com/mwolters/athletesim/internal/repositories/results"
	"github.com/mwolters/athletesim/internal/runner"
	"github.com/mwolters/athletesim/internal/uuid"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		single  = flag.Bool("single", false, "run one race instead of a batch")
		racers  csvRacers
		batch   = flag.Int("n", 0, "batch size (overrides SIM_BATCH_SIZE)")
		seed    = flag.Int64("seed", 0, "base seed (overrides SIM_SEED)")
		persist = flag.Bool("persist", false, "save batch results to Redis")
	)
	flag.Var(&racers, "racers", "comma-separated racer names (default: full roster)")
	flag.Parse()

	if *batch > 0 {
		cfg.Sim.BatchSize = *batch
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	b, err := boardByName(cfg.Sim.Board)
	if err != nil {
		log.Fatalf("Failed to select board: %v", err)
	}

	var policy race.Policy
	switch cfg.Sim.Policy {
	case "baseline":
		policy = ai.NewBaseline()
	default:
		policy = ai.NewHeuristic()
	}

	field := []race.RacerName(racers)
	if len(field) == 0 {
		field = race.AllRacers
	}
	for _, name := range field {
		if !knownRacer(name) {
			log.Fatalf("Unknown racer %q", name)
		}
	}

	r, err := runner.New(runner.Config{
		Board:   b,
		Racers:  field,
		Policy:  policy,
		Workers: cfg.Sim.Workers,
		Verbose: cfg.Sim.Verbose,
	})
	if err != nil {
		log.Fatalf("Failed to create runner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Interrupted, stopping")
		cancel()
	}()

	if *single {
		runSingle(ctx, r, cfg.Sim.Seed, field)
		return
	}
	runBatch(ctx, r, cfg, *persist)
}

func runSingle(ctx context.Context, r *runner.Runner, seed int64, field []race.RacerName) {
	result, err := r.Run(ctx, seed)
	if err != nil {
		log.Fatalf("Race failed: %v", err)
	}

	log.Printf("Race %s finished in %d turns", result.RaceID, result.Turns)
	for rank, idx := range result.Standings {
		log.Printf("  %d. %s", rank+1, field[idx])
	}
	for _, rr := range result.Racers {
		log.Printf("  %s: tile %d, %d vp", rr.Name, rr.Position, rr.VictoryPoints)
	}
}

func runBatch(ctx context.Context, r *runner.Runner, cfg *config.Config, persist bool) {
	started := time.Now()
	entries, err := r.RunBatch(ctx, cfg.Sim.Seed, cfg.Sim.BatchSize)
	if err != nil {
		log.Fatalf("Batch aborted: %v", err)
	}

	summary := metrics.Compute(entries)
	log.Printf("Batch of %d done in %v (%d failures)", summary.Races, time.Since(started), summary.Failures)
	log.Printf("  avg turns %.1f, tightness %.2f, volatility %.2f", summary.AvgTurns, summary.Tightness, summary.Volatility)
	for _, rs := range summary.Racers {
		log.Printf("  %-14s win %5.1f%%  avg vp %.2f  midgame %.2f",
			rs.Name, rs.WinRate*100, rs.AvgPoints, rs.MidgameRelPos)
	}

	for _, entry := range entries {
		if entry.Err != nil {
			log.Printf("  race %d failed: %v", entry.Index, entry.Err)
		}
	}

	if persist {
		if cfg.Redis.Addr == "" {
			log.Fatalf("REDIS_ADDR is required to persist results")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				log.Printf("Failed to close Redis client: %v", err)
			}
		}()

		repo := results.NewRedisRepository(&results.RedisRepoConfig{Client: client})
		batchID := uuid.NewGoogleUUIDGenerator().New()
		saved, err := persistBatch(ctx, repo, batchID, entries)
		if err != nil {
			log.Fatalf("Failed to persist batch: %v", err)
		}
		log.Printf("Saved %d results under batch %s", saved, batchID)
	}
}

// persistBatch saves every successful entry under one batch ID and returns
// the number of records written
func persistBatch(ctx context.Context, repo results.Repository, batchID string, entries []runner.BatchEntry) (int, error) {
	saved := 0
	for _, entry := range entries {
		if entry.Result == nil {
			continue
		}
		rec := &results.Record{
			ID:        entry.Result.RaceID,
			BatchID:   batchID,
			Seed:      entry.Seed,
			Result:    entry.Result,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Save(ctx, rec); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

func knownRacer(name race.RacerName) bool {
	if name == race.RacerPlain {
		return true
	}
	for _, n := range race.AllRacers {
		if n == name {
			return true
		}
	}
	return false
}

func boardByName(name string) (*board.Board, error) {
	switch name {
	case "standard":
		return board.Standard(), nil
	case "wildwilds":
		return board.WildWilds(), nil
	default:
		return nil, fmt.Errorf("unknown board %q", name)
	}
}

// csvRacers parses a comma-separated racer list flag
type csvRacers []race.RacerName

func (c *csvRacers) String() string {
	parts := make([]string, len(*c))
	for i, n := range *c {
		parts[i] = string(n)
	}
	return strings.Join(parts, ",")
}

func (c *csvRacers) Set(value string) error {
	*c = nil
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*c = append(*c, race.RacerName(part))
		}
	}
	return nil
}
