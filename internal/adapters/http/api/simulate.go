// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/types"
	"github.com/gullysim/gully/internal/engine"
)

// SimulateDependencies defines the interface for synchronous simulation.
type SimulateDependencies interface {
	SimulateBall(ctx context.Context, d engine.Delivery) (model.BallOutcome, string, engine.ContextReport, error)
	SimulateOver(ctx context.Context, in engine.OverInput) (model.OverSummary, model.InningsState, bool, error)
	SimulateMatch(ctx context.Context, in engine.MatchInput, seed int64) (model.MatchResult, error)
}

// SimulateHandler handles synchronous simulation requests.
type SimulateHandler struct {
	deps SimulateDependencies
}

// NewSimulateHandler creates a new simulation handler.
func NewSimulateHandler(deps SimulateDependencies) *SimulateHandler {
	return &SimulateHandler{deps: deps}
}

// ballRequest mirrors the OpenAPI schema for POST /simulate/ball.
type ballRequest struct {
	Striker    model.Player   `json:"striker"`
	Bowler     model.Player   `json:"bowler"`
	FieldingXI []model.Player `json:"fielding_xi"`

	State    model.InningsState    `json:"state"`
	Approach types.Approach        `json:"approach"`
	Length   types.BowlingLength   `json:"length"`
	Field    types.FieldSetting    `json:"field"`
	Pitch    model.PitchConditions `json:"pitch"`
	Target   int                   `json:"target,omitempty"`
}

func (b ballRequest) validate() error {
	switch {
	case strings.TrimSpace(b.Striker.ID) == "":
		return errors.New("missing striker")
	case strings.TrimSpace(b.Bowler.ID) == "":
		return errors.New("missing bowler")
	case len(b.FieldingXI) == 0:
		return errors.New("missing fielding_xi")
	}
	return nil
}

type ballResponse struct {
	Outcome   model.BallOutcome    `json:"outcome"`
	Narrative string               `json:"narrative,omitempty"`
	Context   engine.ContextReport `json:"context"`
}

// HandleSimulateBall handles POST /simulate/ball requests.
func (h *SimulateHandler) HandleSimulateBall(w http.ResponseWriter, r *http.Request) {
	const op = "api.simulate_ball"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req ballRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	outcome, narrative, report, err := h.deps.SimulateBall(r.Context(), engine.Delivery{
		Striker:    req.Striker,
		Bowler:     req.Bowler,
		FieldingXI: req.FieldingXI,
		State:      req.State,
		Approach:   req.Approach,
		Length:     req.Length,
		Field:      req.Field,
		Pitch:      req.Pitch,
		Target:     req.Target,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ballResponse{Outcome: outcome, Narrative: narrative, Context: report})
}

// overRequest mirrors the OpenAPI schema for POST /simulate/over.
type overRequest struct {
	BattingXI  []model.Player `json:"batting_xi"`
	FieldingXI []model.Player `json:"fielding_xi"`
	Bowler     model.Player   `json:"bowler"`

	State          model.InningsState    `json:"state"`
	BattingTactics model.MatchTactics    `json:"batting_tactics"`
	BowlingTactics model.MatchTactics    `json:"bowling_tactics"`
	Pitch          model.PitchConditions `json:"pitch"`
	Target         int                   `json:"target,omitempty"`
}

func (o overRequest) validate() error {
	switch {
	case len(o.BattingXI) == 0:
		return errors.New("missing batting_xi")
	case len(o.FieldingXI) == 0:
		return errors.New("missing fielding_xi")
	case strings.TrimSpace(o.Bowler.ID) == "":
		return errors.New("missing bowler")
	}
	return nil
}

type overResponse struct {
	Summary         model.OverSummary  `json:"summary"`
	State           model.InningsState `json:"state"`
	InningsComplete bool               `json:"innings_complete"`
}

// HandleSimulateOver handles POST /simulate/over requests.
func (h *SimulateHandler) HandleSimulateOver(w http.ResponseWriter, r *http.Request) {
	const op = "api.simulate_over"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req overRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	summary, state, complete, err := h.deps.SimulateOver(r.Context(), engine.OverInput{
		BattingXI:      req.BattingXI,
		FieldingXI:     req.FieldingXI,
		Bowler:         req.Bowler,
		State:          req.State,
		BattingTactics: req.BattingTactics,
		BowlingTactics: req.BowlingTactics,
		Pitch:          req.Pitch,
		Target:         req.Target,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, overResponse{Summary: summary, State: state, InningsComplete: complete})
}

// HandleSimulateMatch handles POST /simulate/match requests.
func (h *SimulateHandler) HandleSimulateMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.simulate_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.SimulateMatch(r.Context(), req.toInput(), req.Seed)
	if err != nil {
		if isBadInput(err) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
