package engine

import (
	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/types"
)

// OverInput bundles everything one over needs.
type OverInput struct {
	BattingXI  []model.Player // in batting order
	FieldingXI []model.Player
	Bowler     model.Player

	State          model.InningsState
	BattingTactics model.MatchTactics
	BowlingTactics model.MatchTactics
	Pitch          model.PitchConditions
	Target         int // 0 when not chasing
}

// SimulateOver drives one bowler through up to six legal deliveries.
// It returns the over summary, the updated innings state and whether
// the innings ended during (or at the end of) the over.
func (e *Engine) SimulateOver(in OverInput) (model.OverSummary, model.InningsState, bool) {
	state := in.State.Clone()
	state.CurrentBowler = in.Bowler.ID

	overNumber := state.Overs
	phase := Phase(float64(overNumber))
	approach := in.BattingTactics.Approach(phase)
	plan := in.BowlingTactics.Plan(phase)

	batters := state.CurrentBatters
	strikerIdx := 0

	var (
		balls        []model.BallEvent
		overRuns     int
		overWickets  int
		legalBalls   int
		complete     bool
	)

	for legalBalls < model.BallsPerOver && !complete {
		striker, ok := playerByID(in.BattingXI, batters[strikerIdx])
		if !ok {
			// No resolvable striker: treat the innings as complete
			// rather than fail.
			complete = true
			break
		}

		outcome, narrative := e.SimulateBall(Delivery{
			Striker:    striker,
			Bowler:     in.Bowler,
			FieldingXI: in.FieldingXI,
			State:      state,
			Approach:   approach,
			Length:     plan.Length,
			Field:      plan.Field,
			Pitch:      in.Pitch,
			Target:     in.Target,
		})

		balls = append(balls, model.BallEvent{
			Over:      overNumber,
			Ball:      legalBalls + 1,
			Batter:    striker.ID,
			Bowler:    in.Bowler.ID,
			Outcome:   outcome,
			Narrative: narrative,
		})

		switch outcome.Kind {
		case types.OutcomeWicket:
			overWickets++
			overRuns += outcome.Runs
			state.Wickets++
			state.Runs += outcome.Runs

			state.FallOfWickets = append(state.FallOfWickets, model.FallOfWicket{
				Player: striker.ID,
				Runs:   state.Runs,
				Over:   float64(overNumber) + float64(legalBalls+1)/10,
			})

			next, ok := nextBatter(in.BattingXI, batters, state)
			if ok && state.Wickets < model.MaxWickets {
				batters[strikerIdx] = next
			} else {
				complete = true
			}

		case types.OutcomeExtra:
			overRuns += outcome.Runs
			state.Runs += outcome.Runs

		case types.OutcomeRuns:
			overRuns += outcome.Runs
			state.Runs += outcome.Runs

			bs := state.BatterStats[striker.ID]
			bs.Runs += outcome.Runs
			bs.Balls++
			switch outcome.Runs {
			case 4:
				bs.Fours++
			case 6:
				bs.Sixes++
			}
			state.BatterStats[striker.ID] = bs

			// Odd runs swap the strike.
			if outcome.Runs%2 == 1 {
				strikerIdx = 1 - strikerIdx
			}
		}

		if outcome.IsLegal() {
			ws := state.BowlerStats[in.Bowler.ID]
			switch outcome.Kind {
			case types.OutcomeWicket:
				ws.Wickets++
				ws.Runs += outcome.Runs
			case types.OutcomeRuns:
				ws.Runs += outcome.Runs
				if outcome.Runs == 0 {
					ws.Dots++
				}
			}
			state.BowlerStats[in.Bowler.ID] = ws

			legalBalls++
		}

		// A chase completes the innings the moment the target is reached,
		// mid-over included.
		if in.Target > 0 && state.Runs >= in.Target {
			complete = true
		}
	}

	overComplete := legalBalls >= model.BallsPerOver
	if overComplete {
		// End-of-over rotation, regardless of the last ball's parity.
		strikerIdx = 1 - strikerIdx

		ws := state.BowlerStats[in.Bowler.ID]
		ws.Overs++
		state.BowlerStats[in.Bowler.ID] = ws

		state.Overs = overNumber + 1
		state.Balls = 0
	} else {
		state.Balls = legalBalls
	}

	state.CurrentBatters = [2]string{batters[strikerIdx], batters[1-strikerIdx]}

	if state.Overs >= model.TotalOvers || state.Wickets >= model.MaxWickets {
		complete = true
	}

	summary := model.OverSummary{
		Over:    overNumber,
		Bowler:  in.Bowler.ID,
		Runs:    overRuns,
		Wickets: overWickets,
		Balls:   balls,
	}
	state.OverSummaries = append(state.OverSummaries, summary)

	return summary, state, complete
}

// playerByID resolves a player from a side.
func playerByID(side []model.Player, id string) (model.Player, bool) {
	for _, p := range side {
		if p.ID == id {
			return p, true
		}
	}
	return model.Player{}, false
}

// nextBatter picks the next player in the order who is neither out nor
// already at the crease.
func nextBatter(order []model.Player, atCrease [2]string, state model.InningsState) (string, bool) {
	used := map[string]struct{}{
		atCrease[0]: {},
		atCrease[1]: {},
	}
	for _, fow := range state.FallOfWickets {
		used[fow.Player] = struct{}{}
	}
	for _, p := range order {
		if _, taken := used[p.ID]; !taken {
			return p.ID, true
		}
	}
	return "", false
}
