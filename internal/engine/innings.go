package engine

import (
	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/probability"
	"github.com/gullysim/gully/internal/domain/types"
)

// InningsInput bundles one side's batting effort against the other's
// bowling plan.
type InningsInput struct {
	BattingTeam string
	BowlingTeam string

	BattingXI []model.Player // in batting order
	BowlingXI []model.Player

	BattingTactics model.MatchTactics
	BowlingTactics model.MatchTactics
	Pitch          model.PitchConditions
	Target         int // 0 for the first innings
}

// SimulateInnings drives up to twenty overs, enforcing bowler rotation
// legality, and terminates on all-out, overs exhausted, or the chase
// completing. Exhaustion states are expected terminals; an unbowlable
// over (no legal bowler) is a configuration error and surfaces.
func (e *Engine) SimulateInnings(in InningsInput) (model.InningsState, error) {
	state := model.NewInningsState(in.BattingTeam, in.BowlingTeam, playerIDs(in.BattingXI))
	pool := BowlingPool(in.BowlingXI, in.BowlingTactics.Bowling)

	lastBowler := ""
	for state.Overs < model.TotalOvers {
		bowler, err := e.nextBowler(pool, state, lastBowler, in.BowlingTactics.Bowling)
		if err != nil {
			return state, err
		}

		_, updated, complete := e.SimulateOver(OverInput{
			BattingXI:      in.BattingXI,
			FieldingXI:     in.BowlingXI,
			Bowler:         bowler,
			State:          state,
			BattingTactics: in.BattingTactics,
			BowlingTactics: in.BowlingTactics,
			Pitch:          in.Pitch,
			Target:         in.Target,
		})
		state = updated
		lastBowler = bowler.ID

		if complete {
			break
		}
	}
	return state, nil
}

// nextBowler applies the over-specific preferences before falling back
// to the scored selector: the named openers take overs 1 and 2, and the
// designated death bowler is preferred in overs 17-20 while eligible.
func (e *Engine) nextBowler(pool []model.Player, state model.InningsState, lastBowler string, plan model.BowlingPlan) (model.Player, error) {
	eligible := EligibleBowlers(pool, state, lastBowler)
	if len(eligible) == 0 {
		return model.Player{}, ErrNoEligibleBowler
	}

	var preferred string
	switch {
	case state.Overs == 0:
		preferred = plan.Openers[0]
	case state.Overs == 1:
		preferred = plan.Openers[1]
	case Phase(float64(state.Overs)) == types.PhaseDeath:
		preferred = plan.DeathBowler
	}
	if preferred != "" {
		if p, ok := playerByID(eligible, preferred); ok {
			return p, nil
		}
	}

	best, _, err := e.SelectBowler(pool, state, lastBowler, plan.DeathBowler)
	if err != nil {
		return model.Player{}, err
	}
	p, ok := playerByID(eligible, best.BowlerID)
	if !ok {
		return model.Player{}, ErrNoEligibleBowler
	}
	return p, nil
}

// PressureLevel grades the asking rate while chasing: low under 9 an
// over, medium to 12, high beyond.
func PressureLevel(state model.InningsState, target int) types.PressureLevel {
	if target <= 0 {
		return types.PressureLow
	}
	rate, ok := probability.RequiredRate(target, state.Runs, state.OverFraction())
	if !ok {
		return types.PressureHigh
	}
	switch {
	case rate > 12:
		return types.PressureHigh
	case rate > 9:
		return types.PressureMedium
	default:
		return types.PressureLow
	}
}

// ContextReport is the situational read accompanying a single delivery:
// how settled the striker is, the chase pressure and which side the
// recent overs favored.
type ContextReport struct {
	BatsmanState types.BatsmanState  `json:"batsman_state"`
	Pressure     types.PressureLevel `json:"pressure"`
	Momentum     types.Momentum      `json:"momentum"`
}

// ContextReport reads the delivery's innings state without sampling.
func (e *Engine) ContextReport(d Delivery) ContextReport {
	return ContextReport{
		BatsmanState: e.BatsmanState(d.State.BatterStats[d.Striker.ID].Balls),
		Pressure:     PressureLevel(d.State, d.Target),
		Momentum:     CurrentMomentum(d.State),
	}
}

// CurrentMomentum reads the last two overs: two or more wickets favors
// the bowling side, twenty or more runs the batting side.
func CurrentMomentum(state model.InningsState) types.Momentum {
	n := len(state.OverSummaries)
	if n < 2 {
		return types.MomentumNeutral
	}
	recentRuns, recentWickets := 0, 0
	for _, o := range state.OverSummaries[n-2:] {
		recentRuns += o.Runs
		recentWickets += o.Wickets
	}
	switch {
	case recentWickets >= 2:
		return types.MomentumBowling
	case recentRuns >= 20:
		return types.MomentumBatting
	default:
		return types.MomentumNeutral
	}
}

func playerIDs(side []model.Player) []string {
	ids := make([]string, len(side))
	for i, p := range side {
		ids[i] = p.ID
	}
	return ids
}
