// Package engine drives the ball-by-ball T20 simulation: outcome and
// dismissal sampling, over and innings state machines, bowler rotation
// and match-level result determination.
package engine

import (
	"github.com/gullysim/gully/internal/domain/fielding"
	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/probability"
	"github.com/gullysim/gully/internal/domain/skill"
	"github.com/gullysim/gully/internal/domain/types"
)

// Default toss behavior: winning captains bat first 60% of the time.
const defaultTossBatBias = 0.60

// Engine is the match simulation engine. It is synchronous and owns no
// shared mutable state, so independent matches can run in parallel as
// long as each has its own Engine (or at least its own RNG).
type Engine struct {
	prob        *probability.Model
	field       *fielding.Model
	narrator    *narrator
	rng         RNG
	tossBatBias float64
	narrative   bool
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithParams replaces the probability tables.
func WithParams(p probability.Params) Option {
	return func(e *Engine) {
		e.prob = probability.NewModel(p)
		e.field = fielding.NewModel(p.Fielding)
	}
}

// WithRNG injects a randomness source, e.g. a seeded one for replay.
func WithRNG(rng RNG) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed is shorthand for WithRNG(NewSeededRNG(seed)).
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = NewSeededRNG(seed)
	}
}

// WithTossBatBias sets the probability the toss winner elects to bat.
func WithTossBatBias(bias float64) Option {
	return func(e *Engine) {
		if bias >= 0 && bias <= 1 {
			e.tossBatBias = bias
		}
	}
}

// WithNarrative toggles commentary generation on ball events.
func WithNarrative(enabled bool) Option {
	return func(e *Engine) {
		e.narrative = enabled
	}
}

// New constructs an Engine with default tables and a time-seeded RNG.
func New(opts ...Option) *Engine {
	params := probability.Defaults()
	e := &Engine{
		prob:        probability.NewModel(params),
		field:       fielding.NewModel(params.Fielding),
		narrator:    newNarrator(),
		rng:         newTimeRNG(),
		tossBatBias: defaultTossBatBias,
		narrative:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Phase maps an over fraction onto the innings phase.
func Phase(overFraction float64) types.Phase {
	switch {
	case overFraction < 6:
		return types.PhasePowerplay
	case overFraction < 16:
		return types.PhaseMiddle
	default:
		return types.PhaseDeath
	}
}

// Delivery is the full context for one ball. State is read-only here;
// the caller applies the returned outcome to its own copy, or uses the
// over/innings entry points which do so internally.
type Delivery struct {
	Striker    model.Player
	Bowler     model.Player
	FieldingXI []model.Player

	State    model.InningsState
	Approach types.Approach
	Length   types.BowlingLength
	Field    types.FieldSetting
	Pitch    model.PitchConditions
	Target   int // 0 when not chasing
}

// SimulateBall samples the outcome of a single delivery plus its
// narrative. A sampled outcome is final once drawn; nothing is retried.
func (e *Engine) SimulateBall(d Delivery) (model.BallOutcome, string) {
	ctx := e.ballContext(d)
	dist := e.prob.Distribution(ctx)
	outcome := e.rollOutcome(dist, d)

	narrative := ""
	if e.narrative {
		narrative = e.narrator.describe(e.rng, outcome, d.Striker.Name, d.Bowler.Name)
	}
	return outcome, narrative
}

// Distribution exposes the normalized outcome distribution for a
// delivery without sampling, for diagnostics and recommendations.
func (e *Engine) Distribution(d Delivery) probability.Distribution {
	return e.prob.Distribution(e.ballContext(d))
}

// BatsmanState buckets balls faced per the engine's tables.
func (e *Engine) BatsmanState(ballsFaced int) types.BatsmanState {
	return e.prob.BatsmanState(ballsFaced)
}

func (e *Engine) ballContext(d Delivery) probability.Context {
	overFraction := d.State.OverFraction()

	ballsFaced := d.State.BatterStats[d.Striker.ID].Balls

	partnership := d.State.Runs
	if n := len(d.State.FallOfWickets); n > 0 {
		partnership -= d.State.FallOfWickets[n-1].Runs
	}

	recentWickets := 0
	for _, fow := range d.State.FallOfWickets {
		if fow.Over >= overFraction-3 {
			recentWickets++
		}
	}

	return probability.Context{
		Striker:         d.Striker,
		Bowler:          d.Bowler,
		Phase:           Phase(overFraction),
		OverFraction:    overFraction,
		Wickets:         d.State.Wickets,
		Target:          d.Target,
		CurrentRuns:     d.State.Runs,
		BallsFaced:      ballsFaced,
		Approach:        d.Approach,
		Length:          d.Length,
		Field:           d.Field,
		Pitch:           d.Pitch,
		PartnershipRuns: partnership,
		RecentWickets:   recentWickets,
		BowlerWickets:   d.State.BowlerStats[d.Bowler.ID].Wickets,
	}
}

// rollOutcome turns one uniform draw into a final outcome. Extras are
// drawn first off the same uniform, so their rates calibrate against
// deliveries; a delivery is never both an extra and a dismissal.
func (e *Engine) rollOutcome(dist probability.Distribution, d Delivery) model.BallOutcome {
	extras := e.prob.Params().Extras
	u := e.rng.Float64()

	if u < extras.WideChance {
		return model.ExtraOutcome(types.ExtraWide)
	}
	u -= extras.WideChance

	if u < extras.NoBallChance {
		return model.ExtraOutcome(types.ExtraNoBall)
	}
	u -= extras.NoBallChance

	// Rescale the residual uniform for the outcome table.
	if remaining := 1 - extras.WideChance - extras.NoBallChance; remaining > 0 {
		u /= remaining
	}

	cat := dist.Sample(u)
	switch cat {
	case probability.CatFour:
		agg := skill.AggregateFielding(d.FieldingXI)
		if e.rng.Float64() < e.field.BoundarySaveChance(agg) {
			return model.SavedBoundaryOutcome(e.field.SavedRuns(e.rng.Float64()))
		}
		return model.RunsOutcome(4)
	case probability.CatWicket:
		agg := skill.AggregateFielding(d.FieldingXI)
		kind := e.field.SampleDismissal(d.Field, agg, e.rng.Float64())
		return model.WicketOutcome(kind)
	default:
		return model.RunsOutcome(cat.Runs())
	}
}
