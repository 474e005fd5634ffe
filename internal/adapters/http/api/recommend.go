// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/engine"
)

// RecommendDependencies defines the interface for bowler recommendations.
type RecommendDependencies interface {
	RecommendBowler(ctx context.Context, pool []model.Player, state model.InningsState, lastBowler, deathBowler string) (engine.BowlerOption, []engine.BowlerOption, error)
}

// RecommendHandler handles bowler recommendation requests.
type RecommendHandler struct {
	deps RecommendDependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// recommendRequest mirrors the OpenAPI schema for POST /bowler/recommend.
type recommendRequest struct {
	BowlingXI  []model.Player     `json:"bowling_xi"`
	Plan       model.BowlingPlan  `json:"plan"`
	State      model.InningsState `json:"state"`
	LastBowler string             `json:"last_bowler,omitempty"`
}

func (r recommendRequest) validate() error {
	if len(r.BowlingXI) == 0 {
		return errors.New("missing bowling_xi")
	}
	return nil
}

type recommendResponse struct {
	Recommended  engine.BowlerOption   `json:"recommended"`
	Alternatives []engine.BowlerOption `json:"alternatives"`
}

// HandleRecommend handles POST /bowler/recommend requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.bowler_recommend"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	pool := engine.BowlingPool(req.BowlingXI, req.Plan)
	best, alternatives, err := h.deps.RecommendBowler(r.Context(), pool, req.State, req.LastBowler, req.Plan.DeathBowler)
	if err != nil {
		if errors.Is(err, engine.ErrNoEligibleBowler) {
			writeError(w, http.StatusUnprocessableEntity, "no_eligible_bowler", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, recommendResponse{Recommended: best, Alternatives: alternatives})
}
