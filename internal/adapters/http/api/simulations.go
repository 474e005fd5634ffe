// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gullysim/gully/internal/engine"
)

// isQueueFull mirrors isNotFound: a generic check that avoids coupling
// the handler layer to the service package's sentinels.
func isQueueFull(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "queue full")
}

// EnqueueDependencies defines the interface for asynchronous simulation
// submissions.
type EnqueueDependencies interface {
	EnqueueSimulation(ctx context.Context, id string, in engine.MatchInput, seed int64) (string, bool, error)
}

// EnqueueHandler handles asynchronous simulation submissions.
type EnqueueHandler struct {
	deps EnqueueDependencies
}

// NewEnqueueHandler creates a new enqueue handler.
func NewEnqueueHandler(deps EnqueueDependencies) *EnqueueHandler {
	return &EnqueueHandler{deps: deps}
}

// HandlePostSimulation handles POST /simulations requests.
// The optional request_id makes resubmission idempotent: a duplicate is
// acknowledged without re-simulating.
func (h *EnqueueHandler) HandlePostSimulation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_simulation"
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

	id, duplicate, err := h.deps.EnqueueSimulation(r.Context(), req.RequestID, req.toInput(), req.Seed)
	if err != nil {
		if isQueueFull(err) {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{ID: id, Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{ID: id, Status: "accepted", Duplicate: false})
}
