package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/gullysim/gully/internal/adapters/http/api"
	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/types"
	"github.com/gullysim/gully/internal/engine"
	"github.com/smartystreets/goconvey/convey"
)

// stubService implements api.Dependencies with canned responses.
type stubService struct {
	matchResult model.MatchResult
	matchErr    error

	enqueueDup  bool
	enqueueErr  error
	storedMatch model.MatchResult
	getErr      error

	recommendBest engine.BowlerOption
	recommendAlts []engine.BowlerOption
	recommendErr  error
}

func (s *stubService) SimulateBall(ctx context.Context, d engine.Delivery) (model.BallOutcome, string, engine.ContextReport, error) {
	report := engine.ContextReport{
		BatsmanState: types.BatsmanSettling,
		Pressure:     types.PressureLow,
		Momentum:     types.MomentumNeutral,
	}
	return model.RunsOutcome(4), "crunched through the covers", report, nil
}

func (s *stubService) SimulateOver(ctx context.Context, in engine.OverInput) (model.OverSummary, model.InningsState, bool, error) {
	return model.OverSummary{Over: in.State.Overs, Bowler: in.Bowler.ID, Runs: 8}, in.State, false, nil
}

func (s *stubService) SimulateMatch(ctx context.Context, in engine.MatchInput, seed int64) (model.MatchResult, error) {
	return s.matchResult, s.matchErr
}

func (s *stubService) RecommendBowler(ctx context.Context, pool []model.Player, state model.InningsState, lastBowler, deathBowler string) (engine.BowlerOption, []engine.BowlerOption, error) {
	return s.recommendBest, s.recommendAlts, s.recommendErr
}

func (s *stubService) EnqueueSimulation(ctx context.Context, id string, in engine.MatchInput, seed int64) (string, bool, error) {
	if s.enqueueErr != nil {
		return "", false, s.enqueueErr
	}
	if id == "" {
		id = "generated-id"
	}
	return id, s.enqueueDup, nil
}

func (s *stubService) Match(ctx context.Context, id string) (model.MatchResult, error) {
	return s.storedMatch, s.getErr
}

func (s *stubService) RecentMatches(ctx context.Context, limit int) ([]model.MatchResult, error) {
	return []model.MatchResult{s.storedMatch}, nil
}

func (s *stubService) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func testMux(svc *stubService) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(svc, svc, 100).Register(context.Background(), mux)
	return mux
}

func validSidePayload(prefix string) map[string]any {
	squad := make([]map[string]any, 0, 11)
	order := make([]string, 0, 11)
	for i := 1; i <= 11; i++ {
		id := fmt.Sprintf("%s-%d", prefix, i)
		order = append(order, id)
		squad = append(squad, map[string]any{"id": id, "name": id, "role": "batsman"})
	}
	return map[string]any{
		"team_id": prefix,
		"squad":   squad,
		"tactics": map[string]any{
			"batting_order": order,
			"captain":       order[0],
			"keeper":        order[1],
			"bowling": map[string]any{
				"openers":      []string{order[9], order[10]},
				"death_bowler": order[8],
			},
		},
	}
}

func validMatchBody(requestID string) []byte {
	body := map[string]any{
		"home": validSidePayload("lions"),
		"away": validSidePayload("tigers"),
		"pitch": map[string]any{
			"pace": 55, "spin": 50, "bounce": 50, "deterioration": 20,
		},
		"seed": 42,
	}
	if requestID != "" {
		body["request_id"] = requestID
	}
	b, _ := json.Marshal(body)
	return b
}

func TestSimulateMatchEndpoint(t *testing.T) {
	convey.Convey("Given the simulate match endpoint", t, func() {
		svc := &stubService{
			matchResult: model.MatchResult{ID: "m-1", Winner: "lions"},
		}
		mux := testMux(svc)

		convey.Convey("When posting a valid fixture", func() {
			req := httptest.NewRequest(http.MethodPost, "/simulate/match", bytes.NewReader(validMatchBody("")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it returns the match result", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				var result model.MatchResult
				convey.So(json.Unmarshal(rec.Body.Bytes(), &result), convey.ShouldBeNil)
				convey.So(result.Winner, convey.ShouldEqual, "lions")
			})
		})

		convey.Convey("When posting malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/simulate/match", bytes.NewReader([]byte("{")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it rejects with 400", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When a side is incomplete", func() {
			body := map[string]any{
				"home": map[string]any{"team_id": "lions"},
				"away": validSidePayload("tigers"),
			}
			b, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPost, "/simulate/match", bytes.NewReader(b))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it rejects with 400", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When the engine rejects the XI", func() {
			svc.matchErr = fmt.Errorf("home: %w", engine.ErrInvalidXI)
			req := httptest.NewRequest(http.MethodPost, "/simulate/match", bytes.NewReader(validMatchBody("")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then the failure maps to 400", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/simulate/match", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it is not found", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSimulateBallEndpoint(t *testing.T) {
	convey.Convey("Given the simulate ball endpoint", t, func() {
		mux := testMux(&stubService{})

		convey.Convey("When posting a valid delivery", func() {
			body := map[string]any{
				"striker":     map[string]any{"id": "b1", "role": "batsman"},
				"bowler":      map[string]any{"id": "p1", "role": "bowler"},
				"fielding_xi": []map[string]any{{"id": "f1"}},
				"approach":    string(types.ApproachBalanced),
				"length":      string(types.LengthGood),
				"field":       string(types.FieldBalanced),
			}
			b, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPost, "/simulate/ball", bytes.NewReader(b))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it returns the outcome, narrative and context read", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				var resp struct {
					Outcome   model.BallOutcome    `json:"outcome"`
					Narrative string               `json:"narrative"`
					Context   engine.ContextReport `json:"context"`
				}
				convey.So(json.Unmarshal(rec.Body.Bytes(), &resp), convey.ShouldBeNil)
				convey.So(resp.Outcome.Runs, convey.ShouldEqual, 4)
				convey.So(resp.Narrative, convey.ShouldNotBeEmpty)
				convey.So(resp.Context.BatsmanState, convey.ShouldEqual, types.BatsmanSettling)
				convey.So(resp.Context.Pressure, convey.ShouldEqual, types.PressureLow)
			})
		})

		convey.Convey("When the striker is missing", func() {
			body := map[string]any{
				"bowler":      map[string]any{"id": "p1"},
				"fielding_xi": []map[string]any{{"id": "f1"}},
			}
			b, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPost, "/simulate/ball", bytes.NewReader(b))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it rejects with 400", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestSimulationsEndpoint(t *testing.T) {
	convey.Convey("Given the async simulations endpoint", t, func() {
		svc := &stubService{}
		mux := testMux(svc)

		convey.Convey("When submitting a new fixture", func() {
			req := httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewReader(validMatchBody("req-9")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it is accepted with the request id", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusAccepted)
				var ack struct {
					ID        string `json:"id"`
					Status    string `json:"status"`
					Duplicate bool   `json:"duplicate"`
				}
				convey.So(json.Unmarshal(rec.Body.Bytes(), &ack), convey.ShouldBeNil)
				convey.So(ack.ID, convey.ShouldEqual, "req-9")
				convey.So(ack.Status, convey.ShouldEqual, "accepted")
				convey.So(ack.Duplicate, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the request is a duplicate", func() {
			svc.enqueueDup = true
			req := httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewReader(validMatchBody("req-9")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it is acknowledged as duplicate", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "duplicate")
			})
		})

		convey.Convey("When the queue is full", func() {
			svc.enqueueErr = errors.New("simulation queue full")
			req := httptest.NewRequest(http.MethodPost, "/simulations", bytes.NewReader(validMatchBody("req-9")))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it signals backpressure", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusTooManyRequests)
			})
		})
	})
}

func TestMatchesEndpoints(t *testing.T) {
	convey.Convey("Given the matches endpoints", t, func() {
		svc := &stubService{
			storedMatch: model.MatchResult{ID: "m-1", Winner: "lions"},
		}
		mux := testMux(svc)

		convey.Convey("When listing recent matches", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches?limit=10", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it returns results", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				var results []model.MatchResult
				convey.So(json.Unmarshal(rec.Body.Bytes(), &results), convey.ShouldBeNil)
				convey.So(len(results), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the limit is missing or invalid", func() {
			for _, target := range []string{"/matches", "/matches?limit=0", "/matches?limit=abc"} {
				req := httptest.NewRequest(http.MethodGet, target, nil)
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, req)
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			}
		})

		convey.Convey("When the limit exceeds the cap", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches?limit=1000", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it rejects with 400", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When fetching a stored match", func() {
			req := httptest.NewRequest(http.MethodGet, "/matches/m-1", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it returns the result", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "lions")
			})
		})

		convey.Convey("When the match is unknown", func() {
			svc.getErr = errors.New("match not found")
			req := httptest.NewRequest(http.MethodGet, "/matches/missing", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it translates to 404", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRecommendEndpoint(t *testing.T) {
	convey.Convey("Given the bowler recommendation endpoint", t, func() {
		svc := &stubService{
			recommendBest: engine.BowlerOption{BowlerID: "tigers-9", Score: 92.5, Reasoning: "strong death record"},
			recommendAlts: []engine.BowlerOption{{BowlerID: "tigers-8", Score: 88.0}},
		}
		mux := testMux(svc)

		body := map[string]any{
			"bowling_xi": []map[string]any{
				{"id": "tigers-8", "role": "bowler"},
				{"id": "tigers-9", "role": "bowler"},
			},
			"plan": map[string]any{
				"openers":      []string{"tigers-8", "tigers-9"},
				"death_bowler": "tigers-9",
			},
		}
		b, _ := json.Marshal(body)

		convey.Convey("When requesting a recommendation", func() {
			req := httptest.NewRequest(http.MethodPost, "/bowler/recommend", bytes.NewReader(b))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it returns the pick with alternatives", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "tigers-9")
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "alternatives")
			})
		})

		convey.Convey("When no bowler is eligible", func() {
			svc.recommendErr = engine.ErrNoEligibleBowler
			req := httptest.NewRequest(http.MethodPost, "/bowler/recommend", bytes.NewReader(b))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it maps to 422", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusUnprocessableEntity)
			})
		})

		convey.Convey("When the bowling XI is missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/bowler/recommend", bytes.NewReader([]byte(`{}`)))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it rejects with 400", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	convey.Convey("Given the stats endpoint", t, func() {
		mux := testMux(&stubService{})

		convey.Convey("When fetching stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			convey.Convey("Then it returns the service stats", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "started")
			})
		})
	})
}
