package model

import (
	"errors"
	"fmt"

	"github.com/gullysim/gully/internal/domain/types"
)

// Fixed T20 format constants.
const (
	TotalOvers   = 20
	BallsPerOver = 6
	MaxWickets   = 10
)

// Sentinel kinds for tactics validation.
var (
	ErrInvalidXI         = errors.New("playing XI must have exactly 11 unique players")
	ErrCaptainNotInXI    = errors.New("captain is not in the playing XI")
	ErrKeeperNotInXI     = errors.New("wicketkeeper is not in the playing XI")
	ErrIncompleteBowling = errors.New("bowling plan is incomplete")
)

// PitchConditions describe the surface for a match, each in [0,100].
// Read-only for the duration of a match.
type PitchConditions struct {
	Pace          int `json:"pace"`
	Spin          int `json:"spin"`
	Bounce        int `json:"bounce"`
	Deterioration int `json:"deterioration"`
}

// PhasePlan is the bowling side's length and field for one phase.
type PhasePlan struct {
	Length types.BowlingLength `json:"length"`
	Field  types.FieldSetting  `json:"field"`
}

// BowlingPlan names the opening pair, the death specialist and the
// per-phase length/field pairs.
type BowlingPlan struct {
	Openers     [2]string                     `json:"openers"` // player ids for overs 1 and 2
	DeathBowler string                        `json:"death_bowler"`
	Phases      map[types.Phase]PhasePlan     `json:"phases"`
}

// MatchTactics is one side's full plan: batting order (the playing XI),
// captain, keeper, per-phase batting approach, and the bowling plan.
type MatchTactics struct {
	BattingOrder []string                       `json:"batting_order"`
	Captain      string                         `json:"captain"`
	Keeper       string                         `json:"keeper"`
	Approaches   map[types.Phase]types.Approach `json:"approaches"`
	Bowling      BowlingPlan                    `json:"bowling"`
}

// Validate checks XI legality. Incorrect tactics are a fatal
// configuration error for the match, never silently defaulted.
func (t MatchTactics) Validate() error {
	if len(t.BattingOrder) != 11 {
		return fmt.Errorf("%w: got %d", ErrInvalidXI, len(t.BattingOrder))
	}
	seen := make(map[string]struct{}, 11)
	for _, id := range t.BattingOrder {
		if _, dup := seen[id]; dup || id == "" {
			return fmt.Errorf("%w: duplicate or empty id %q", ErrInvalidXI, id)
		}
		seen[id] = struct{}{}
	}
	if _, ok := seen[t.Captain]; !ok {
		return ErrCaptainNotInXI
	}
	if _, ok := seen[t.Keeper]; !ok {
		return ErrKeeperNotInXI
	}
	if t.Bowling.Openers[0] == "" || t.Bowling.Openers[1] == "" || t.Bowling.DeathBowler == "" {
		return ErrIncompleteBowling
	}
	return nil
}

// Approach returns the batting approach for a phase, balanced when unset.
func (t MatchTactics) Approach(p types.Phase) types.Approach {
	if a, ok := t.Approaches[p]; ok {
		return a
	}
	return types.ApproachBalanced
}

// Plan returns the bowling plan for a phase, with a good-length balanced
// fallback when unset.
func (t MatchTactics) Plan(p types.Phase) PhasePlan {
	if pl, ok := t.Bowling.Phases[p]; ok {
		return pl
	}
	return PhasePlan{Length: types.LengthGood, Field: types.FieldBalanced}
}

// BallOutcome is the closed result of one delivery. Kind selects which
// payload fields are meaningful: runs for OutcomeRuns (Runs, BoundarySaved),
// wicket for OutcomeWicket (Dismissal, Runs scored before dismissal),
// extra for OutcomeExtra (Extra, Runs).
type BallOutcome struct {
	Kind          types.OutcomeKind   `json:"kind"`
	Runs          int                 `json:"runs"`
	BoundarySaved bool                `json:"boundary_saved,omitempty"`
	Dismissal     types.DismissalKind `json:"dismissal,omitempty"`
	Extra         types.ExtraKind     `json:"extra,omitempty"`
}

// RunsOutcome builds a runs outcome.
func RunsOutcome(runs int) BallOutcome {
	return BallOutcome{Kind: types.OutcomeRuns, Runs: runs}
}

// SavedBoundaryOutcome builds a runs outcome for a cut-off boundary.
func SavedBoundaryOutcome(runs int) BallOutcome {
	return BallOutcome{Kind: types.OutcomeRuns, Runs: runs, BoundarySaved: true}
}

// WicketOutcome builds a wicket outcome.
func WicketOutcome(kind types.DismissalKind) BallOutcome {
	return BallOutcome{Kind: types.OutcomeWicket, Dismissal: kind}
}

// ExtraOutcome builds an extra outcome. Wides and no-balls are worth one.
func ExtraOutcome(kind types.ExtraKind) BallOutcome {
	return BallOutcome{Kind: types.OutcomeExtra, Extra: kind, Runs: 1}
}

// IsLegal reports whether the delivery counts toward the over.
func (o BallOutcome) IsLegal() bool {
	return o.Kind != types.OutcomeExtra
}

// BallEvent records one delivery, extras included.
type BallEvent struct {
	Over      int         `json:"over"` // 0-indexed over
	Ball      int         `json:"ball"` // 1-indexed within the over
	Batter    string      `json:"batter"`
	Bowler    string      `json:"bowler"`
	Outcome   BallOutcome `json:"outcome"`
	Narrative string      `json:"narrative,omitempty"`
}

// OverSummary aggregates one over's deliveries.
type OverSummary struct {
	Over    int         `json:"over"`
	Bowler  string      `json:"bowler"`
	Runs    int         `json:"runs"`
	Wickets int         `json:"wickets"`
	Balls   []BallEvent `json:"balls"`
}

// FallOfWicket records team score and over position when a wicket fell.
type FallOfWicket struct {
	Player string  `json:"player"`
	Runs   int     `json:"runs"`
	Over   float64 `json:"over"` // e.g. 14.3
}

// InningsState is the full mutable state of one innings. It is created
// by the innings orchestrator, mutated only by the orchestration layer,
// and treated as immutable once returned to the match orchestrator.
type InningsState struct {
	BattingTeam string `json:"batting_team"`
	BowlingTeam string `json:"bowling_team"`

	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Overs   int `json:"overs"` // completed overs
	Balls   int `json:"balls"` // legal balls in the current over, 0-5

	// Striker first, non-striker second.
	CurrentBatters [2]string `json:"current_batters"`
	CurrentBowler  string    `json:"current_bowler"`

	OverSummaries []OverSummary  `json:"over_summaries"`
	FallOfWickets []FallOfWicket `json:"fall_of_wickets"`

	BatterStats map[string]BatterStats `json:"batter_stats"`
	BowlerStats map[string]BowlerStats `json:"bowler_stats"`
}

// NewInningsState builds a fresh innings with the first two batters in.
func NewInningsState(battingTeam, bowlingTeam string, order []string) InningsState {
	st := InningsState{
		BattingTeam: battingTeam,
		BowlingTeam: bowlingTeam,
		BatterStats: make(map[string]BatterStats),
		BowlerStats: make(map[string]BowlerStats),
	}
	if len(order) >= 2 {
		st.CurrentBatters = [2]string{order[0], order[1]}
	}
	return st
}

// Clone deep-copies the innings state so callers can hand out snapshots
// without aliasing the orchestrator's working copy.
func (s InningsState) Clone() InningsState {
	out := s
	out.OverSummaries = append([]OverSummary(nil), s.OverSummaries...)
	out.FallOfWickets = append([]FallOfWicket(nil), s.FallOfWickets...)
	out.BatterStats = make(map[string]BatterStats, len(s.BatterStats))
	for k, v := range s.BatterStats {
		out.BatterStats[k] = v
	}
	out.BowlerStats = make(map[string]BowlerStats, len(s.BowlerStats))
	for k, v := range s.BowlerStats {
		out.BowlerStats[k] = v
	}
	return out
}

// OverFraction is the innings position as overs plus balls/6.
func (s InningsState) OverFraction() float64 {
	return float64(s.Overs) + float64(s.Balls)/BallsPerOver
}

// MarginKind tags a match result margin.
type MarginKind string

// Margin kinds.
const (
	MarginByRuns    MarginKind = "runs"
	MarginByWickets MarginKind = "wickets"
)

// Margin is the win margin, absent on a tie.
type Margin struct {
	Kind  MarginKind `json:"kind"`
	Value int        `json:"value"`
}

// MatchResult is the completed match record. Winner is empty on a tie.
type MatchResult struct {
	ID             string       `json:"id"`
	Winner         string       `json:"winner,omitempty"`
	Margin         *Margin      `json:"margin,omitempty"`
	FirstInnings   InningsState `json:"first_innings"`
	SecondInnings  InningsState `json:"second_innings"`
	PlayerOfMatch  string       `json:"player_of_match"`
	TossWinner     string       `json:"toss_winner"`
	TossElectedBat bool         `json:"toss_elected_bat"`
}

// Tie reports whether the match finished level.
func (r MatchResult) Tie() bool { return r.Winner == "" }
