package engine

import (
	"fmt"
	"sort"

	"github.com/gullysim/gully/internal/domain/model"
)

// Side is one team's squad and tactics for a match. Tactics may be nil,
// which is a fatal configuration error at match start.
type Side struct {
	TeamID  string
	Squad   []model.Player
	Tactics *model.MatchTactics
}

// MatchInput is a complete fixture: two sides and the pitch.
type MatchInput struct {
	Home  Side
	Away  Side
	Pitch model.PitchConditions
}

// SimulateMatch runs the toss, both innings and result determination.
// It fails without simulating when either side's tactics are missing or
// illegal; playing-XI legality cannot be inferred from defaults.
func (e *Engine) SimulateMatch(in MatchInput) (model.MatchResult, error) {
	if in.Home.Tactics == nil || in.Away.Tactics == nil {
		return model.MatchResult{}, ErrMissingTactics
	}
	if err := in.Home.Tactics.Validate(); err != nil {
		return model.MatchResult{}, fmt.Errorf("%w: home: %v", ErrInvalidXI, err)
	}
	if err := in.Away.Tactics.Validate(); err != nil {
		return model.MatchResult{}, fmt.Errorf("%w: away: %v", ErrInvalidXI, err)
	}

	homeXI, err := orderedXI(in.Home)
	if err != nil {
		return model.MatchResult{}, err
	}
	awayXI, err := orderedXI(in.Away)
	if err != nil {
		return model.MatchResult{}, err
	}

	// Toss: uniform winner, then a biased election to bat.
	tossWinner := in.Home
	tossLoser := in.Away
	tossWinnerXI, tossLoserXI := homeXI, awayXI
	if e.rng.Float64() < 0.5 {
		tossWinner, tossLoser = in.Away, in.Home
		tossWinnerXI, tossLoserXI = awayXI, homeXI
	}
	electedBat := e.rng.Float64() < e.tossBatBias

	first, second := tossWinner, tossLoser
	firstXI, secondXI := tossWinnerXI, tossLoserXI
	if !electedBat {
		first, second = tossLoser, tossWinner
		firstXI, secondXI = tossLoserXI, tossWinnerXI
	}

	firstInnings, err := e.SimulateInnings(InningsInput{
		BattingTeam:    first.TeamID,
		BowlingTeam:    second.TeamID,
		BattingXI:      firstXI,
		BowlingXI:      secondXI,
		BattingTactics: *first.Tactics,
		BowlingTactics: *second.Tactics,
		Pitch:          in.Pitch,
	})
	if err != nil {
		return model.MatchResult{}, err
	}

	target := firstInnings.Runs + 1
	secondInnings, err := e.SimulateInnings(InningsInput{
		BattingTeam:    second.TeamID,
		BowlingTeam:    first.TeamID,
		BattingXI:      secondXI,
		BowlingXI:      firstXI,
		BattingTactics: *second.Tactics,
		BowlingTactics: *first.Tactics,
		Pitch:          in.Pitch,
		Target:         target,
	})
	if err != nil {
		return model.MatchResult{}, err
	}

	result := model.MatchResult{
		FirstInnings:   firstInnings,
		SecondInnings:  secondInnings,
		TossWinner:     tossWinner.TeamID,
		TossElectedBat: electedBat,
	}

	switch {
	case secondInnings.Runs >= target:
		result.Winner = second.TeamID
		result.Margin = &model.Margin{
			Kind:  model.MarginByWickets,
			Value: model.MaxWickets - secondInnings.Wickets,
		}
	case secondInnings.Runs < firstInnings.Runs:
		result.Winner = first.TeamID
		result.Margin = &model.Margin{
			Kind:  model.MarginByRuns,
			Value: firstInnings.Runs - secondInnings.Runs,
		}
	default:
		// Scores level: a tie, no winner and no margin.
	}

	result.PlayerOfMatch = playerOfMatch(firstInnings, secondInnings)
	return result, nil
}

// orderedXI resolves the tactics' batting order against the squad.
func orderedXI(s Side) ([]model.Player, error) {
	byID := make(map[string]model.Player, len(s.Squad))
	for _, p := range s.Squad {
		byID[p.ID] = p
	}
	xi := make([]model.Player, 0, len(s.Tactics.BattingOrder))
	for _, id := range s.Tactics.BattingOrder {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s (%s)", ErrPlayerNotInSquad, id, s.TeamID)
		}
		xi = append(xi, p)
	}
	return xi, nil
}

// playerOfMatch scores every participant's innings aggregates and picks
// the highest, ties broken by id so the pick is deterministic. It only
// ranges over recorded statistics, so the pick always appeared in the
// match.
func playerOfMatch(innings ...model.InningsState) string {
	scores := make(map[string]float64)
	for _, inn := range innings {
		for id, bs := range inn.BatterStats {
			scores[id] += float64(bs.Runs) + 4*float64(bs.Fours+bs.Sixes)
		}
		for id, ws := range inn.BowlerStats {
			scores[id] += 22*float64(ws.Wickets) + float64(ws.Dots)
		}
	}
	if len(scores) == 0 {
		return ""
	}
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	best := ids[0]
	for _, id := range ids[1:] {
		if scores[id] > scores[best] {
			best = id
		}
	}
	return best
}
