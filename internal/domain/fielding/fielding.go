package fielding

import (
	"github.com/gullysim/gully/internal/domain/skill"
	"github.com/gullysim/gully/internal/domain/types"
)

// dismissalOrder fixes the cumulative walk so sampling is reproducible
// for a given uniform draw.
var dismissalOrder = []types.DismissalKind{
	types.DismissalCaught,
	types.DismissalBowled,
	types.DismissalLBW,
	types.DismissalRunOut,
	types.DismissalStumped,
	types.DismissalHitWicket,
}

// Model samples dismissal kinds and boundary saves from immutable params.
type Model struct {
	params Params
}

// NewModel builds a Model. A zero params value is replaced by Defaults.
func NewModel(params Params) *Model {
	if params.Dismissals == (DismissalWeights{}) {
		params = Defaults()
	}
	return &Model{params: params}
}

// DismissalWeights returns the scaled, renormalized distribution over
// dismissal kinds for the given field setting and fielding aggregate.
func (m *Model) DismissalWeights(field types.FieldSetting, agg skill.FieldingAggregate) map[types.DismissalKind]float64 {
	w := map[types.DismissalKind]float64{
		types.DismissalCaught:    m.params.Dismissals.Caught,
		types.DismissalBowled:    m.params.Dismissals.Bowled,
		types.DismissalLBW:       m.params.Dismissals.LBW,
		types.DismissalRunOut:    m.params.Dismissals.RunOut,
		types.DismissalStumped:   m.params.Dismissals.Stumped,
		types.DismissalHitWicket: m.params.Dismissals.HitWicket,
	}

	if mod, ok := m.params.FieldMods[field]; ok {
		w[types.DismissalCaught] *= mod.Catch
		w[types.DismissalStumped] *= mod.Catch
		w[types.DismissalRunOut] *= mod.RunOut
	}

	// Skill above the baseline raises the odds of the kinds it produces.
	catchMod := 1 + (agg.Catching-m.params.SkillBaseline)/m.params.SkillScale
	throwMod := 1 + (agg.Throwing-m.params.SkillBaseline)/m.params.SkillScale
	w[types.DismissalCaught] *= catchMod
	w[types.DismissalStumped] *= catchMod
	w[types.DismissalRunOut] *= throwMod

	var total float64
	for k, v := range w {
		if v < 0 {
			v = 0
			w[k] = 0
		}
		total += v
	}
	if total <= 0 {
		// Degenerate tables are a defect elsewhere; fall back to caught.
		return map[types.DismissalKind]float64{types.DismissalCaught: 1}
	}
	for k := range w {
		w[k] /= total
	}
	return w
}

// SampleDismissal picks a dismissal kind using one uniform draw in [0,1).
func (m *Model) SampleDismissal(field types.FieldSetting, agg skill.FieldingAggregate, u float64) types.DismissalKind {
	w := m.DismissalWeights(field, agg)
	cumulative := 0.0
	for _, kind := range dismissalOrder {
		cumulative += w[kind]
		if u < cumulative {
			return kind
		}
	}
	return types.DismissalCaught
}

// BoundarySaveChance is the probability an athletic fielding side cuts
// off a four. Below-baseline fielding never saves; the chance is capped.
func (m *Model) BoundarySaveChance(agg skill.FieldingAggregate) float64 {
	if agg == (skill.FieldingAggregate{}) {
		return 0
	}
	chance := (agg.Athleticism-m.params.SkillBaseline)/m.params.AthleticismScale +
		(agg.Ground-m.params.SkillBaseline)/m.params.GroundScale
	if chance < 0 {
		return 0
	}
	if chance > m.params.BoundarySaveMax {
		return m.params.BoundarySaveMax
	}
	return chance
}

// SavedRuns converts a cut-off four into running runs, weighted toward
// two. u is a uniform draw in [0,1).
func (m *Model) SavedRuns(u float64) int {
	if u < m.params.TwoRunShare {
		return 2
	}
	return 3
}
