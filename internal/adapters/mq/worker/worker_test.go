package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/gullysim/gully/internal/adapters/mq/queue"
	worker "github.com/gullysim/gully/internal/adapters/mq/worker"
	model "github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/engine"
	logging "github.com/gullysim/gully/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan chan queue.Job
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		jobChan: make(chan queue.Job, 10),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	close(mq.jobChan)
	return nil
}

func (mq *mockQueue) addJob(job queue.Job) {
	mq.jobChan <- job
}

type mockSimulator struct {
	results map[string]model.MatchResult
	errors  map[string]error
	seeds   map[string]int64
	mu      sync.RWMutex
}

func newMockSimulator() *mockSimulator {
	return &mockSimulator{
		results: make(map[string]model.MatchResult),
		errors:  make(map[string]error),
		seeds:   make(map[string]int64),
	}
}

func (ms *mockSimulator) Simulate(ctx context.Context, in engine.MatchInput, seed int64) (model.MatchResult, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.seeds[in.Home.TeamID] = seed
	if err, exists := ms.errors[in.Home.TeamID]; exists {
		return model.MatchResult{}, err
	}
	if result, exists := ms.results[in.Home.TeamID]; exists {
		return result, nil
	}
	return model.MatchResult{Winner: in.Home.TeamID}, nil
}

func (ms *mockSimulator) setError(teamID string, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errors[teamID] = err
}

type mockRecorder struct {
	results map[string]model.MatchResult
	errors  map[string]error
	mu      sync.RWMutex
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{
		results: make(map[string]model.MatchResult),
		errors:  make(map[string]error),
	}
}

func (mr *mockRecorder) Put(ctx context.Context, result model.MatchResult) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	if err, exists := mr.errors[result.ID]; exists {
		return err
	}
	mr.results[result.ID] = result
	return nil
}

func (mr *mockRecorder) setError(id string, err error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.errors[id] = err
}

func (mr *mockRecorder) getResult(id string) (model.MatchResult, bool) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	result, exists := mr.results[id]
	return result, exists
}

func fixtureJob(id, homeTeam string, seed int64) queue.Job {
	return queue.Job{
		ID:   id,
		Seed: seed,
		Input: engine.MatchInput{
			Home: engine.Side{TeamID: homeTeam},
			Away: engine.Side{TeamID: "visitors"},
		},
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		q := newMockQueue()
		simulator := newMockSimulator()
		recorder := newMockRecorder()

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(q, simulator, recorder)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When creating a worker with custom options", func() {
			w := worker.NewInMemoryWorker(
				q, simulator, recorder,
				worker.WithName("test-worker"),
			)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(q, simulator, recorder)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)

			// Give worker time to start
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And when processing jobs", func() {
				q.addJob(fixtureJob("match-1", "lions", 42))

				// Give worker time to process
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then it should record the result under the job ID", func() {
					result, stored := recorder.getResult("match-1")
					convey.So(stored, convey.ShouldBeTrue)
					convey.So(result.Winner, convey.ShouldEqual, "lions")
				})

				convey.Convey("Then it should pass the job seed to the simulator", func() {
					simulator.mu.RLock()
					seed := simulator.seeds["lions"]
					simulator.mu.RUnlock()
					convey.So(seed, convey.ShouldEqual, 42)
				})
			})

			convey.Convey("And when simulation fails", func() {
				simulator.setError("tigers", errors.New("simulation error"))
				q.addJob(fixtureJob("match-2", "tigers", 0))

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then it should not record a result", func() {
					_, stored := recorder.getResult("match-2")
					convey.So(stored, convey.ShouldBeFalse)
				})
			})

			convey.Convey("And when storing fails", func() {
				recorder.setError("match-3", errors.New("store error"))
				q.addJob(fixtureJob("match-3", "bears", 0))

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the result is dropped without crashing the worker", func() {
					_, stored := recorder.getResult("match-3")
					convey.So(stored, convey.ShouldBeFalse)
				})
			})
		})

		convey.Convey("When shutting down a worker", func() {
			w := worker.NewInMemoryWorker(q, simulator, recorder)
			ctx := context.Background()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			err := w.Shutdown(ctx)

			convey.Convey("Then it should stop cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		simulator := newMockSimulator()
		recorder := newMockRecorder()

		convey.Convey("When creating a pool with an explicit size", func() {
			pool := worker.NewPool(3, q, simulator, recorder)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(pool, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running jobs through the pool", func() {
			pool := worker.NewPool(2, q, simulator, recorder)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pool.Start(ctx)
			time.Sleep(10 * time.Millisecond)

			q.addJob(fixtureJob("match-a", "lions", 1))
			q.addJob(fixtureJob("match-b", "tigers", 2))

			time.Sleep(100 * time.Millisecond)

			convey.Convey("Then all jobs are processed", func() {
				_, aStored := recorder.getResult("match-a")
				_, bStored := recorder.getResult("match-b")
				convey.So(aStored, convey.ShouldBeTrue)
				convey.So(bStored, convey.ShouldBeTrue)
			})

			convey.Convey("And shutdown completes", func() {
				err := pool.Shutdown(ctx)
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}
