// Package model contains domain models passed between layers.
package model

import "github.com/gullysim/gully/internal/domain/types"

// BattingSkills are a player's batting attributes, each in [0,100].
type BattingSkills struct {
	Technique   int `json:"technique"`   // shot soundness, survival
	Power       int `json:"power"`       // boundary hitting
	Timing      int `json:"timing"`      // placement, finding gaps
	Temperament int `json:"temperament"` // performance under pressure
}

// BowlingSkills are a player's bowling attributes, each in [0,100].
type BowlingSkills struct {
	Speed     int `json:"speed"`     // pace, or sharpness for spinners
	Accuracy  int `json:"accuracy"`  // line and length consistency
	Variation int `json:"variation"` // deliveries in the arsenal
	Stamina   int `json:"stamina"`   // quality late in a spell
}

// FieldingSkills are a player's fielding attributes, each in [0,100].
type FieldingSkills struct {
	Catching    int `json:"catching"`
	Ground      int `json:"ground"`
	Throwing    int `json:"throwing"`
	Athleticism int `json:"athleticism"`
}

// Player carries the identity, skills and dynamic state the engine reads.
// The engine never mutates a Player; all computed deltas are returned as
// innings statistics keyed by player id.
type Player struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Role         types.PlayerRole   `json:"role"`
	BowlingStyle types.BowlingStyle `json:"bowling_style,omitempty"`

	Batting  BattingSkills  `json:"batting"`
	Bowling  BowlingSkills  `json:"bowling"`
	Fielding FieldingSkills `json:"fielding"`

	// Dynamic state. Form is in [-20,20]; the rest in [0,100].
	Form    int `json:"form"`
	Fitness int `json:"fitness"`
	Morale  int `json:"morale"`
	Fatigue int `json:"fatigue"`
}

// BatterStats is a batter's running innings aggregate.
type BatterStats struct {
	Runs  int `json:"runs"`
	Balls int `json:"balls"`
	Fours int `json:"fours"`
	Sixes int `json:"sixes"`
}

// BowlerStats is a bowler's running innings aggregate.
type BowlerStats struct {
	Overs   int `json:"overs"`
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Dots    int `json:"dots"`
}
