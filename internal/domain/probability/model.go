package probability

import (
	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/skill"
	"github.com/gullysim/gully/internal/domain/types"
)

// Category is one of the seven base outcome buckets.
type Category int

// Outcome categories in cumulative-walk order.
const (
	CatDot Category = iota
	CatSingle
	CatTwo
	CatThree
	CatFour
	CatSix
	CatWicket
)

// Runs returns the run value of a scoring category. Wickets score zero.
func (c Category) Runs() int {
	switch c {
	case CatSingle:
		return 1
	case CatTwo:
		return 2
	case CatThree:
		return 3
	case CatFour:
		return 4
	case CatSix:
		return 6
	default:
		return 0
	}
}

// Distribution holds the probability of each outcome category.
type Distribution struct {
	Dot    float64 `koanf:"dot" json:"dot"`
	Single float64 `koanf:"single" json:"single"`
	Two    float64 `koanf:"two" json:"two"`
	Three  float64 `koanf:"three" json:"three"`
	Four   float64 `koanf:"four" json:"four"`
	Six    float64 `koanf:"six" json:"six"`
	Wicket float64 `koanf:"wicket" json:"wicket"`
}

// Sum is the distribution's total mass.
func (d Distribution) Sum() float64 {
	return d.Dot + d.Single + d.Two + d.Three + d.Four + d.Six + d.Wicket
}

// Sample walks the cumulative distribution against one uniform draw.
// The distribution must already be normalized.
func (d Distribution) Sample(u float64) Category {
	cumulative := 0.0
	for _, c := range []struct {
		cat Category
		p   float64
	}{
		{CatDot, d.Dot}, {CatSingle, d.Single}, {CatTwo, d.Two},
		{CatThree, d.Three}, {CatFour, d.Four}, {CatSix, d.Six},
		{CatWicket, d.Wicket},
	} {
		cumulative += c.p
		if u < cumulative {
			return c.cat
		}
	}
	return CatDot
}

// scale applies outcome modifiers, treating zero fields as identity.
func (d *Distribution) scale(m OutcomeMods) {
	if m.Boundary != 0 {
		d.Four *= m.Boundary
		d.Six *= m.Boundary
	}
	if m.Wicket != 0 {
		d.Wicket *= m.Wicket
	}
	if m.Dot != 0 {
		d.Dot *= m.Dot
	}
}

// clampAndNormalize zeroes any weight a modifier pile-up drove negative
// and rescales the rest to sum to 1. Negative weights are a defect
// elsewhere; the model must still yield a valid distribution.
func (d *Distribution) clampAndNormalize() {
	for _, p := range []*float64{&d.Dot, &d.Single, &d.Two, &d.Three, &d.Four, &d.Six, &d.Wicket} {
		if *p < 0 {
			*p = 0
		}
	}
	sum := d.Sum()
	if sum <= 0 {
		// Fully degenerate tables: fall back to all dots.
		*d = Distribution{Dot: 1}
		return
	}
	for _, p := range []*float64{&d.Dot, &d.Single, &d.Two, &d.Three, &d.Four, &d.Six, &d.Wicket} {
		*p /= sum
	}
}

// Context is everything the model needs for one delivery.
type Context struct {
	Striker model.Player
	Bowler  model.Player

	Phase        types.Phase
	OverFraction float64 // overs completed plus balls/6
	Wickets      int
	Target       int // 0 when not chasing
	CurrentRuns  int
	BallsFaced   int // by the striker

	Approach types.Approach
	Length   types.BowlingLength
	Field    types.FieldSetting

	Pitch model.PitchConditions

	// Momentum context, all optional.
	PartnershipRuns int
	RecentWickets   int // in the last three overs
	BowlerWickets   int // by the current bowler this innings
}

// Model applies the modifier pipeline over immutable Params.
type Model struct {
	params Params
}

// NewModel builds a Model over the given tables.
func NewModel(params Params) *Model {
	return &Model{params: params}
}

// Params exposes the model's tables to collaborators (extras chances,
// fielding sub-tables). The returned value is a copy.
func (m *Model) Params() Params { return m.params }

// Distribution runs the full pipeline: base outcomes, then phase, skill
// differential, form, batsman state, tactics, length effectiveness,
// field setting, fatigue, pressure/momentum, pitch interaction and chase
// pressure, then clamp and renormalize.
func (m *Model) Distribution(ctx Context) Distribution {
	d := m.params.BaseOutcomes

	d.scale(m.params.PhaseMods[ctx.Phase])

	m.applySkillDifferential(&d, ctx)
	m.applyForm(&d, ctx)

	state := m.BatsmanState(ctx.BallsFaced)
	d.scale(m.params.BatsmanState.Mods[state])

	d.scale(m.params.TacticMods[ctx.Approach])

	m.applyLength(&d, ctx)
	d.scale(m.params.FieldMods[ctx.Field])

	m.applyFatigue(&d, ctx)
	m.applyPressure(&d, ctx)
	m.applyPitch(&d, ctx)

	if ctx.Target > 0 {
		m.applyChasePressure(&d, ctx)
	}

	d.clampAndNormalize()
	return d
}

// BatsmanState buckets balls faced into new/settling/set.
func (m *Model) BatsmanState(ballsFaced int) types.BatsmanState {
	switch {
	case ballsFaced < m.params.BatsmanState.NewThreshold:
		return types.BatsmanNew
	case ballsFaced < m.params.BatsmanState.SettlingThreshold:
		return types.BatsmanSettling
	default:
		return types.BatsmanSet
	}
}

// applySkillDifferential raises boundary and lowers wicket odds when the
// striker outrates the bowler, symmetrically the other way around.
func (m *Model) applySkillDifferential(d *Distribution, ctx Context) {
	diff := (skill.BattingOverall(ctx.Striker.Batting) - skill.BowlingOverall(ctx.Bowler.Bowling)) / 100
	mod := 1 + diff*m.params.SkillDiffScale
	if mod <= 0 {
		mod = 0.01
	}
	d.Four *= mod
	d.Six *= mod
	d.Wicket /= mod
}

// applyForm lets the batter's form lift their own odds while the
// bowler's form dampens them.
func (m *Model) applyForm(d *Distribution, ctx Context) {
	batterMod := 1 + float64(ctx.Striker.Form)/m.params.FormDivisor
	bowlerMod := 1 + float64(ctx.Bowler.Form)/m.params.FormDivisor
	d.Four *= batterMod
	d.Six *= batterMod
	d.Wicket *= bowlerMod
}

// applyLength applies the length table gated by the bowler's skill at
// that length: a deficit is penalized down to a floor, a surplus earns a
// bonus up to a cap.
func (m *Model) applyLength(d *Distribution, ctx Context) {
	lm, ok := m.params.LengthMods[ctx.Length]
	if !ok {
		return
	}
	eff := m.lengthEffectiveness(ctx.Bowler, lm)
	d.scale(OutcomeMods{
		Boundary: lm.Boundary * eff,
		Wicket:   lm.Wicket * eff,
		Dot:      lm.Dot,
	})
}

func (m *Model) lengthEffectiveness(bowler model.Player, lm LengthMod) float64 {
	var relevant float64
	switch lm.SkillType {
	case "speed":
		relevant = float64(bowler.Bowling.Speed)
	case "variation":
		relevant = float64(bowler.Bowling.Variation)
	default:
		relevant = float64(bowler.Bowling.Accuracy)
	}
	if relevant < lm.MinSkill {
		deficit := (lm.MinSkill - relevant) / 100
		eff := 1 - deficit*2
		if eff < m.params.LengthEffectivenessFloor {
			return m.params.LengthEffectivenessFloor
		}
		return eff
	}
	excess := (relevant - lm.MinSkill) / 100
	eff := 1 + excess*0.5
	if eff > m.params.LengthEffectivenessCap {
		return m.params.LengthEffectivenessCap
	}
	return eff
}

// applyFatigue linearly degrades both sides: a tired batter finds the
// rope less, a tired bowler threatens less and leaks more.
func (m *Model) applyFatigue(d *Distribution, ctx Context) {
	batterPenalty := 1 - float64(ctx.Striker.Fatigue)/m.params.FatigueDivisor
	bowlerPenalty := 1 - float64(ctx.Bowler.Fatigue)/m.params.FatigueDivisor
	d.Four *= batterPenalty
	d.Six *= batterPenalty
	d.Wicket *= bowlerPenalty
	d.Four *= 2 - bowlerPenalty
	d.Six *= 2 - bowlerPenalty
}

// applyPressure folds in recent wickets, a bowler on a roll and
// partnership confidence.
func (m *Model) applyPressure(d *Distribution, ctx Context) {
	p := m.params.Pressure
	switch {
	case ctx.RecentWickets >= 3:
		d.scale(p.RecentWickets3)
	case ctx.RecentWickets >= 2:
		d.scale(p.RecentWickets2)
	}
	switch {
	case ctx.BowlerWickets >= 3:
		if p.BowlerOnRoll3 != 0 {
			d.Four *= p.BowlerOnRoll3
			d.Six *= p.BowlerOnRoll3
		}
	case ctx.BowlerWickets >= 2:
		if p.BowlerOnRoll2 != 0 {
			d.Four *= p.BowlerOnRoll2
			d.Six *= p.BowlerOnRoll2
		}
	}
	switch {
	case ctx.PartnershipRuns >= 50:
		d.scale(p.Partnership50)
	case ctx.PartnershipRuns >= 30:
		d.scale(p.Partnership30)
	}
}

// applyPitch rewards a bowling style that matches the pitch's strong
// suit: spin on turners, pace on quick decks. Bounded advantage.
func (m *Model) applyPitch(d *Distribution, ctx Context) {
	style := ctx.Bowler.BowlingStyle
	var rating float64
	switch {
	case style.IsSpin():
		rating = float64(ctx.Pitch.Spin)
	case style.IsPace():
		rating = float64(ctx.Pitch.Pace)
	default:
		return
	}
	adv := (rating - m.params.Pitch.Baseline) / 100
	if adv <= 0 {
		return
	}
	if adv > m.params.Pitch.MaxAdvantage {
		adv = m.params.Pitch.MaxAdvantage
	}
	d.Wicket *= 1 + adv*m.params.Pitch.WicketScale
	d.Four *= 1 - adv*m.params.Pitch.BoundaryScale
	d.Six *= 1 - adv*m.params.Pitch.BoundaryScale
}

// applyChasePressure escalates boundary and wicket odds as the asking
// rate climbs past fixed thresholds.
func (m *Model) applyChasePressure(d *Distribution, ctx Context) {
	rate, ok := RequiredRate(ctx.Target, ctx.CurrentRuns, ctx.OverFraction)
	if !ok {
		return
	}
	switch {
	case rate > 12:
		d.scale(m.params.Pressure.RequiredRateOver12)
	case rate > 9:
		d.scale(m.params.Pressure.RequiredRate9To12)
	}
}

// RequiredRate is the runs-per-over asking rate for a chase. ok is false
// when no balls remain.
func RequiredRate(target, currentRuns int, overFraction float64) (rate float64, ok bool) {
	ballsRemaining := (model.TotalOvers - overFraction) * model.BallsPerOver
	if ballsRemaining <= 0 {
		return 0, false
	}
	runsNeeded := float64(target - currentRuns)
	return runsNeeded / ballsRemaining * model.BallsPerOver, true
}
