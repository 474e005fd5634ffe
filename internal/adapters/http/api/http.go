// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/engine"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SimulateBall(ctx context.Context, d engine.Delivery) (model.BallOutcome, string, engine.ContextReport, error)
	SimulateOver(ctx context.Context, in engine.OverInput) (model.OverSummary, model.InningsState, bool, error)
	SimulateMatch(ctx context.Context, in engine.MatchInput, seed int64) (model.MatchResult, error)
	RecommendBowler(ctx context.Context, pool []model.Player, state model.InningsState, lastBowler, deathBowler string) (engine.BowlerOption, []engine.BowlerOption, error)
	EnqueueSimulation(ctx context.Context, id string, in engine.MatchInput, seed int64) (string, bool, error)
	Match(ctx context.Context, id string) (model.MatchResult, error)
	RecentMatches(ctx context.Context, limit int) ([]model.MatchResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	simulateHandler  *SimulateHandler
	enqueueHandler   *EnqueueHandler
	recommendHandler *RecommendHandler
	matchesHandler   *MatchesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxResultsLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		simulateHandler:  NewSimulateHandler(deps),
		enqueueHandler:   NewEnqueueHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
		matchesHandler:   NewMatchesHandler(deps, maxResultsLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/simulate/ball", MetricsMiddleware(s.simulateHandler.HandleSimulateBall, "simulate_ball"))
	mux.HandleFunc("/simulate/over", MetricsMiddleware(s.simulateHandler.HandleSimulateOver, "simulate_over"))
	mux.HandleFunc("/simulate/match", MetricsMiddleware(s.simulateHandler.HandleSimulateMatch, "simulate_match"))
	mux.HandleFunc("/simulations", MetricsMiddleware(s.enqueueHandler.HandlePostSimulation, "simulations"))
	mux.HandleFunc("/bowler/recommend", MetricsMiddleware(s.recommendHandler.HandleRecommend, "bowler_recommend"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleListMatches, "matches"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.matchesHandler.HandleGetMatch, "match"))
}

// sidePayload mirrors the OpenAPI schema for one team in a fixture.
type sidePayload struct {
	TeamID  string              `json:"team_id"`
	Squad   []model.Player      `json:"squad"`
	Tactics *model.MatchTactics `json:"tactics"`
}

func (s sidePayload) validate() error {
	switch {
	case strings.TrimSpace(s.TeamID) == "":
		return errors.New("missing team_id")
	case len(s.Squad) < 11:
		return errors.New("squad must name at least 11 players")
	case s.Tactics == nil:
		return errors.New("missing tactics")
	}
	return nil
}

func (s sidePayload) toSide() engine.Side {
	return engine.Side{TeamID: s.TeamID, Squad: s.Squad, Tactics: s.Tactics}
}

// matchRequest mirrors the OpenAPI schema for match simulation submissions.
type matchRequest struct {
	RequestID string                `json:"request_id,omitempty"`
	Home      sidePayload           `json:"home"`
	Away      sidePayload           `json:"away"`
	Pitch     model.PitchConditions `json:"pitch"`
	Seed      int64                 `json:"seed,omitempty"`
}

func (m matchRequest) validate() error {
	if err := m.Home.validate(); err != nil {
		return errors.New("home: " + err.Error())
	}
	if err := m.Away.validate(); err != nil {
		return errors.New("away: " + err.Error())
	}
	if m.Home.TeamID == m.Away.TeamID {
		return errors.New("home and away must differ")
	}
	return nil
}

func (m matchRequest) toInput() engine.MatchInput {
	return engine.MatchInput{
		Home:  m.Home.toSide(),
		Away:  m.Away.toSide(),
		Pitch: m.Pitch,
	}
}

type ackResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// isBadInput reports whether the simulation failed on caller-supplied
// data rather than an internal fault.
func isBadInput(err error) bool {
	switch {
	case errors.Is(err, engine.ErrMissingTactics),
		errors.Is(err, engine.ErrInvalidXI),
		errors.Is(err, engine.ErrPlayerNotInSquad),
		errors.Is(err, engine.ErrNoEligibleBowler):
		return true
	default:
		return false
	}
}
