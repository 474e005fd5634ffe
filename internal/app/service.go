// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/gullysim/gully/internal/adapters/mq/queue"
	workerpool "github.com/gullysim/gully/internal/adapters/mq/worker"
	repository "github.com/gullysim/gully/internal/adapters/repository"
	"github.com/gullysim/gully/internal/domain/dedupe"
	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/probability"
	"github.com/gullysim/gully/internal/domain/types"
	"github.com/gullysim/gully/internal/engine"
	"github.com/gullysim/gully/pkg/logger"
	"github.com/gullysim/gully/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
	ErrQueueFull  = errors.New("simulation queue full")
)

// Service implements the API dependencies for the simulation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	deduper  dedupe.Deduper
	jobQueue jobqueue.Queue
	pool     *workerpool.Pool
	engine   *engine.Engine

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	storeCapacity int
	params        probability.Params
	paramsPath    string
	tossBatBias   float64
	narrative     bool
	seed          int64

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStoreCapacity bounds how many match results are retained.
func WithStoreCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.storeCapacity = capacity
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParams replaces the default probability tables.
func WithParams(p probability.Params) Option {
	return func(s *Service) {
		s.params = p
	}
}

// WithParamsPath loads probability table overrides from a YAML file at
// Start.
func WithParamsPath(path string) Option {
	return func(s *Service) {
		s.paramsPath = path
	}
}

// WithTossBatBias sets the probability that the toss winner bats first.
func WithTossBatBias(bias float64) Option {
	return func(s *Service) {
		if bias >= 0 && bias <= 1 {
			s.tossBatBias = bias
		}
	}
}

// WithNarrative toggles ball-by-ball commentary generation.
func WithNarrative(enabled bool) Option {
	return func(s *Service) {
		s.narrative = enabled
	}
}

// WithSeed fixes the RNG for the synchronous simulation engine. Zero
// keeps time seeding.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     10000,
		dedupeSize:    100000,
		storeCapacity: 1024,
		params:        probability.Defaults(),
		tossBatBias:   0.60,
		narrative:     true,
		logger:        nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting simulation service...")

	if s.paramsPath != "" {
		params, err := probability.Load(s.paramsPath)
		if err != nil {
			return err
		}
		s.params = params
		s.logger.Info(ctx, "loaded probability tables",
			logger.String("path", s.paramsPath),
		)
	}
	if err := s.params.Validate(); err != nil {
		return err
	}

	s.store = repository.NewMemStore(
		repository.WithCapacity(s.storeCapacity),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.engine = engine.New(s.engineOptions(s.seed)...)

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s.store)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "simulation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("storeCapacity", s.storeCapacity),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping simulation service...")

	if s.pool != nil {
		s.pool.Stop()
	}

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "simulation service stopped")
}

// engineOptions assembles engine options for the configured tables and
// the given seed. Seed zero keeps time seeding.
func (s *Service) engineOptions(seed int64) []engine.Option {
	opts := []engine.Option{
		engine.WithParams(s.params),
		engine.WithTossBatBias(s.tossBatBias),
		engine.WithNarrative(s.narrative),
	}
	if seed != 0 {
		opts = append(opts, engine.WithSeed(seed))
	}
	return opts
}

// SimulateBall resolves a single delivery and reports the situational
// context read from the request-carried innings state.
func (s *Service) SimulateBall(ctx context.Context, d engine.Delivery) (model.BallOutcome, string, engine.ContextReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.BallOutcome{}, "", engine.ContextReport{}, ErrNotStarted
	}
	outcome, narrative := s.engine.SimulateBall(d)
	return outcome, narrative, s.engine.ContextReport(d), nil
}

// SimulateOver resolves one full over against the given innings state.
func (s *Service) SimulateOver(ctx context.Context, in engine.OverInput) (model.OverSummary, model.InningsState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.OverSummary{}, model.InningsState{}, false, ErrNotStarted
	}
	summary, state, complete := s.engine.SimulateOver(in)
	return summary, state, complete, nil
}

// SimulateMatch runs a full match synchronously, stores the result and
// returns it. Seed zero falls back to the service-wide engine seeding.
func (s *Service) SimulateMatch(ctx context.Context, in engine.MatchInput, seed int64) (model.MatchResult, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return model.MatchResult{}, ErrNotStarted
	}
	s.mu.RUnlock()

	result, err := s.Simulate(ctx, in, seed)
	if err != nil {
		return model.MatchResult{}, err
	}

	result.ID = uuid.NewString()
	if err := s.store.Put(ctx, result); err != nil {
		return model.MatchResult{}, err
	}
	metrics.RecordMatchSimulated()
	return result, nil
}

// Simulate runs a full match for the worker pool. Each call gets its
// own engine so concurrent jobs never share RNG state.
func (s *Service) Simulate(ctx context.Context, in engine.MatchInput, seed int64) (model.MatchResult, error) {
	start := time.Now()

	eng := engine.New(s.engineOptions(seed)...)
	result, err := eng.SimulateMatch(in)
	if err != nil {
		return model.MatchResult{}, err
	}

	metrics.RecordSimulationLatency(float64(time.Since(start).Milliseconds()))
	recordOutcomeMetrics(result)
	return result, nil
}

// RecommendBowler scores the eligible bowlers for the next over.
func (s *Service) RecommendBowler(ctx context.Context, pool []model.Player, state model.InningsState, lastBowler, deathBowler string) (engine.BowlerOption, []engine.BowlerOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return engine.BowlerOption{}, nil, ErrNotStarted
	}
	return s.engine.SelectBowler(pool, state, lastBowler, deathBowler)
}

// EnqueueSimulation submits a match for asynchronous simulation.
// Returns the job id and whether the request was a duplicate. A
// previously seen id is acknowledged without re-enqueueing.
func (s *Service) EnqueueSimulation(ctx context.Context, id string, in engine.MatchInput, seed int64) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return "", false, ErrNotStarted
	}

	if id == "" {
		id = uuid.NewString()
	}

	if s.deduper.SeenAndRecord(ctx, id) {
		metrics.RecordSimulationDuplicate()
		s.logger.Debug(ctx, "duplicate simulation request",
			logger.String("jobID", id),
		)
		return id, true, nil
	}

	ok := s.jobQueue.Enqueue(ctx, jobqueue.Job{ID: id, Input: in, Seed: seed})
	if !ok {
		// Allow a retry once there is queue room again.
		s.deduper.Unrecord(ctx, id)
		return "", false, ErrQueueFull
	}
	return id, false, nil
}

// Match returns a stored match result by id.
func (s *Service) Match(ctx context.Context, id string) (model.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.MatchResult{}, ErrNotStarted
	}
	return s.store.Get(ctx, id)
}

// RecentMatches returns up to limit stored results, most recent first.
func (s *Service) RecentMatches(ctx context.Context, limit int) ([]model.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Recent(ctx, limit)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"storeCapacity": s.storeCapacity,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		storedMatches := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["storedMatches"] = storedMatches
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreResultsTotal(storedMatches)
	}

	return stats
}

// recordOutcomeMetrics publishes aggregate play counters for a
// completed match.
func recordOutcomeMetrics(result model.MatchResult) {
	for _, innings := range []model.InningsState{result.FirstInnings, result.SecondInnings} {
		metrics.RecordInningsTotal(innings.Runs)
		metrics.RecordWickets(innings.Wickets)
		metrics.RecordDeliveries(innings.Overs*model.BallsPerOver + innings.Balls)

		boundaries := 0
		for _, bs := range innings.BatterStats {
			boundaries += bs.Fours + bs.Sixes
		}
		metrics.RecordBoundaries(boundaries)

		extras := 0
		for _, over := range innings.OverSummaries {
			for _, ball := range over.Balls {
				if ball.Outcome.Kind == types.OutcomeExtra {
					extras++
				}
			}
		}
		metrics.RecordExtras(extras)
	}
}
