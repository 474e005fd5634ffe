package engine

import "errors"

// Sentinel kinds for engine configuration errors. These are fatal to the
// affected match and must be surfaced, never silently patched: incorrect
// legality would corrupt comparative game balance.
var (
	ErrMissingTactics    = errors.New("match tactics are not set")
	ErrInvalidXI         = errors.New("invalid playing XI")
	ErrNoEligibleBowler  = errors.New("no eligible bowler available")
	ErrPlayerNotInSquad  = errors.New("player from tactics not found in squad")
)
