// Package repository defines the match result store interface and errors.
package repository

import (
	"context"

	"github.com/gullysim/gully/internal/domain/model"
)

// Store provides read/write access to completed match results.
type Store interface {
	// Put records a completed match result. Existing results with the
	// same ID are overwritten.
	Put(ctx context.Context, result model.MatchResult) error

	// Get returns the result for a match ID.
	// Returns ErrNotFound if the match is unknown.
	Get(ctx context.Context, id string) (model.MatchResult, error)

	// Recent returns up to limit results, most recent first.
	Recent(ctx context.Context, limit int) ([]model.MatchResult, error)

	// Count returns the number of results held in the store.
	Count(ctx context.Context) int
}
