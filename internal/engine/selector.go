package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/skill"
	"github.com/gullysim/gully/internal/domain/types"
)

// Bowling legality constants: four overs per bowler in a T20, and no
// consecutive overs while legally avoidable.
const maxOversPerBowler = 4

// Selector score weights.
const (
	baseSelectorScore     = 50.0
	powerplayPaceBonus    = 20.0
	middleSpinBonus       = 20.0
	deathPaceBonus        = 25.0
	hotBowlerBonus        = 15.0
	perWicketBonus        = 5.0
	goodEconomyBonus      = 15.0
	poorEconomyPenalty    = 15.0
	freshBowlerBonus      = 5.0
	savedDeathOverPenalty = 20.0
	skillPivot            = 55.0
	skillWeight           = 0.3
	formWeight            = 0.5
)

// BowlerOption is one scored candidate for the next over.
type BowlerOption struct {
	BowlerID  string  `json:"bowler_id"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// EligibleBowlers filters a pool to bowlers satisfying full legality:
// under the over cap and not the previous over's bowler. When nobody
// satisfies full legality it falls back to any under-cap bowler; an
// empty result means the bowling side has exhausted its legal overs,
// which is a squad configuration error, not a state to paper over.
func EligibleBowlers(pool []model.Player, state model.InningsState, lastBowler string) []model.Player {
	var full, underCap []model.Player
	for _, p := range pool {
		if state.BowlerStats[p.ID].Overs >= maxOversPerBowler {
			continue
		}
		underCap = append(underCap, p)
		if p.ID != lastBowler {
			full = append(full, p)
		}
	}
	if len(full) > 0 {
		return full
	}
	return underCap
}

// SelectBowler scores the eligible pool and returns the best candidate
// with ranked alternatives. deathBowler names the designated death
// specialist from the bowling plan, used for the save-an-over penalty.
func (e *Engine) SelectBowler(pool []model.Player, state model.InningsState, lastBowler, deathBowler string) (BowlerOption, []BowlerOption, error) {
	eligible := EligibleBowlers(pool, state, lastBowler)
	if len(eligible) == 0 {
		return BowlerOption{}, nil, ErrNoEligibleBowler
	}

	phase := Phase(float64(state.Overs))
	options := make([]BowlerOption, 0, len(eligible))
	for _, b := range eligible {
		score, reasoning := scoreBowler(b, state, phase, deathBowler)
		options = append(options, BowlerOption{BowlerID: b.ID, Score: score, Reasoning: reasoning})
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].Score > options[j].Score })

	best := options[0]
	alternatives := options[1:]
	if len(alternatives) > 3 {
		alternatives = alternatives[:3]
	}
	return best, alternatives, nil
}

// scoreBowler combines phase fit, momentum, economy, freshness, the
// death-over reservation and raw skill/form into one selection score.
func scoreBowler(b model.Player, state model.InningsState, phase types.Phase, deathBowler string) (float64, string) {
	score := baseSelectorScore
	var reasons []string

	isPace := b.BowlingStyle.IsPace()
	isSpin := b.BowlingStyle.IsSpin()

	switch {
	case phase == types.PhasePowerplay && isPace:
		score += powerplayPaceBonus
		reasons = append(reasons, "pace suits the powerplay")
	case phase == types.PhaseMiddle && isSpin:
		score += middleSpinBonus
		reasons = append(reasons, "spin effective in the middle overs")
	case phase == types.PhaseDeath && isPace:
		score += deathPaceBonus
		reasons = append(reasons, "pace crucial at the death")
	}

	stats := state.BowlerStats[b.ID]
	if stats.Wickets >= 2 {
		score += hotBowlerBonus
		reasons = append(reasons, fmt.Sprintf("on a roll with %d wickets", stats.Wickets))
	}
	score += float64(stats.Wickets) * perWicketBonus

	if stats.Overs > 0 {
		economy := float64(stats.Runs) / float64(stats.Overs)
		switch {
		case economy < 6:
			score += goodEconomyBonus
			reasons = append(reasons, fmt.Sprintf("economical at %.1f per over", economy))
		case economy > 10:
			score -= poorEconomyPenalty
			reasons = append(reasons, fmt.Sprintf("expensive at %.1f per over", economy))
		}
	} else {
		score += freshBowlerBonus
	}

	// Hold the death specialist's last over back until the death.
	if phase != types.PhaseDeath && b.ID == deathBowler && stats.Overs == maxOversPerBowler-1 {
		score -= savedDeathOverPenalty
		reasons = append(reasons, "saving the last over for the death")
	}

	score += (skill.BowlingOverall(b.Bowling) - skillPivot) * skillWeight
	score += float64(b.Form) * formWeight

	reasoning := "solid option for this phase"
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, "; ")
	}
	return score, reasoning
}

// BowlingPool narrows an XI to the players who bowl: declared bowlers
// and allrounders, plus anyone named in the bowling plan.
func BowlingPool(xi []model.Player, plan model.BowlingPlan) []model.Player {
	planned := map[string]struct{}{
		plan.Openers[0]:  {},
		plan.Openers[1]:  {},
		plan.DeathBowler: {},
	}
	var pool []model.Player
	for _, p := range xi {
		_, inPlan := planned[p.ID]
		if p.Role == types.RoleBowler || p.Role == types.RoleAllrounder || inPlan {
			pool = append(pool, p)
		}
	}
	return pool
}
