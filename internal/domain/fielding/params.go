// Package fielding models what happens once the bat is beaten or the
// ball is heading to the rope: dismissal kinds and boundary saves.
package fielding

import "github.com/gullysim/gully/internal/domain/types"

// DismissalWeights is a base distribution over dismissal kinds. Values
// are relative weights; the model renormalizes after scaling.
type DismissalWeights struct {
	Caught    float64 `koanf:"caught"`
	Bowled    float64 `koanf:"bowled"`
	LBW       float64 `koanf:"lbw"`
	RunOut    float64 `koanf:"runout"`
	Stumped   float64 `koanf:"stumped"`
	HitWicket float64 `koanf:"hitwicket"`
}

// FieldDismissalMod scales catch and run-out odds for a field setting.
type FieldDismissalMod struct {
	Catch  float64 `koanf:"catch"`
	RunOut float64 `koanf:"runout"`
}

// Params are the immutable fielding tables. Construct once (Defaults or
// a loaded override) and pass by reference; never mutated at runtime.
type Params struct {
	Dismissals DismissalWeights                         `koanf:"dismissals"`
	FieldMods  map[types.FieldSetting]FieldDismissalMod `koanf:"field_mods"`

	// SkillBaseline is the rating at which fielding neither helps nor
	// hurts. SkillScale divides the rating surplus into a multiplier.
	SkillBaseline float64 `koanf:"skill_baseline"`
	SkillScale    float64 `koanf:"skill_scale"`

	// Boundary-save tuning. Below-baseline sides never save; the chance
	// is capped at BoundarySaveMax.
	BoundarySaveMax  float64 `koanf:"boundary_save_max"`
	AthleticismScale float64 `koanf:"athleticism_scale"`
	GroundScale      float64 `koanf:"ground_scale"`
	// TwoRunShare is the probability a saved boundary yields two, not three.
	TwoRunShare float64 `koanf:"two_run_share"`
}

// Defaults returns the built-in fielding tables, calibrated so caught
// dominates dismissals at roughly real-world proportions.
func Defaults() Params {
	return Params{
		Dismissals: DismissalWeights{
			Caught:    0.55,
			Bowled:    0.20,
			LBW:       0.10,
			RunOut:    0.08,
			Stumped:   0.05,
			HitWicket: 0.02,
		},
		FieldMods: map[types.FieldSetting]FieldDismissalMod{
			types.FieldAttacking:  {Catch: 1.20, RunOut: 0.80},
			types.FieldBalanced:   {Catch: 1.00, RunOut: 1.00},
			types.FieldDefensive:  {Catch: 0.85, RunOut: 1.25},
			types.FieldDeathField: {Catch: 1.10, RunOut: 1.10},
		},
		SkillBaseline:    50,
		SkillScale:       200,
		BoundarySaveMax:  0.30,
		AthleticismScale: 200,
		GroundScale:      400,
		TwoRunShare:      0.70,
	}
}
