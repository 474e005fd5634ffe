// Package probability computes the per-delivery outcome distribution
// from player skills, tactics, pitch and match context.
package probability

import (
	"errors"
	"fmt"
	"math"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gullysim/gully/internal/domain/fielding"
	"github.com/gullysim/gully/internal/domain/types"
)

// Sentinel kinds for parameter loading.
var (
	ErrLoadParams    = errors.New("load probability params failed")
	ErrInvalidParams = errors.New("invalid probability params")
)

// OutcomeMods scales boundaries, wickets and dots multiplicatively.
// A zero field means "leave unchanged".
type OutcomeMods struct {
	Boundary float64 `koanf:"boundary_mod"`
	Wicket   float64 `koanf:"wicket_mod"`
	Dot      float64 `koanf:"dot_mod"`
}

// LengthMod couples outcome modifiers with the bowler-skill gate for a
// bowling length. SkillType selects which bowling attribute is gated:
// "speed", "variation" or "accuracy".
type LengthMod struct {
	OutcomeMods `koanf:",squash"`
	SkillType   string  `koanf:"skill_type"`
	MinSkill    float64 `koanf:"min_skill"`
}

// StateParams buckets batters by balls faced and modifies their
// risk/reward profile per bucket.
type StateParams struct {
	NewThreshold      int                                `koanf:"new_threshold"`
	SettlingThreshold int                                `koanf:"settling_threshold"`
	Mods              map[types.BatsmanState]OutcomeMods `koanf:"modifiers"`
}

// PressureParams carries the subtle momentum adjustments: collapses,
// bowlers on a roll, settled partnerships and required-rate squeeze.
type PressureParams struct {
	RecentWickets2     OutcomeMods `koanf:"recent_wickets_2"`
	RecentWickets3     OutcomeMods `koanf:"recent_wickets_3"`
	BowlerOnRoll2      float64     `koanf:"bowler_on_roll_2"` // boundary dampener
	BowlerOnRoll3      float64     `koanf:"bowler_on_roll_3"`
	Partnership30      OutcomeMods `koanf:"partnership_30"`
	Partnership50      OutcomeMods `koanf:"partnership_50"`
	RequiredRate9To12  OutcomeMods `koanf:"required_rate_9_to_12"`
	RequiredRateOver12 OutcomeMods `koanf:"required_rate_over_12"`
}

// ExtraParams is the per-delivery chance of wides and no-balls. The two
// are exclusive and drawn before the outcome table, so they calibrate
// against deliveries rather than outcomes.
type ExtraParams struct {
	WideChance   float64 `koanf:"wide_chance"`
	NoBallChance float64 `koanf:"noball_chance"`
}

// PitchParams bounds the pitch-versus-style interaction.
type PitchParams struct {
	Baseline      float64 `koanf:"baseline"`
	WicketScale   float64 `koanf:"wicket_scale"`
	BoundaryScale float64 `koanf:"boundary_scale"`
	MaxAdvantage  float64 `koanf:"max_advantage"`
}

// Params are the immutable coefficient tables for the outcome model.
// Construct once (Defaults or Load) and pass by reference into the pure
// calculation; never a process-wide mutable singleton.
type Params struct {
	BaseOutcomes Distribution `koanf:"base_outcomes"`

	PhaseMods  map[types.Phase]OutcomeMods         `koanf:"phase_modifiers"`
	TacticMods map[types.Approach]OutcomeMods      `koanf:"tactical_modifiers"`
	LengthMods map[types.BowlingLength]LengthMod   `koanf:"bowling_length_modifiers"`
	FieldMods  map[types.FieldSetting]OutcomeMods  `koanf:"field_setting_modifiers"`

	BatsmanState StateParams    `koanf:"batsman_state"`
	Pressure     PressureParams `koanf:"pressure"`
	Extras       ExtraParams    `koanf:"extras"`
	Pitch        PitchParams    `koanf:"pitch"`

	// SkillDiffScale converts the [-1,1] batter-bowler differential into
	// a symmetric multiplier. FormDivisor and FatigueDivisor bound the
	// form and fatigue effects.
	SkillDiffScale float64 `koanf:"skill_diff_scale"`
	FormDivisor    float64 `koanf:"form_divisor"`
	FatigueDivisor float64 `koanf:"fatigue_divisor"`

	// Length-effectiveness gate bounds.
	LengthEffectivenessFloor float64 `koanf:"length_effectiveness_floor"`
	LengthEffectivenessCap   float64 `koanf:"length_effectiveness_cap"`

	Fielding fielding.Params `koanf:"fielding"`
}

// Defaults returns the built-in tables, calibrated so a full match lands
// at roughly 5-9% wickets and 30-38% dots per delivery.
func Defaults() Params {
	return Params{
		BaseOutcomes: Distribution{
			Dot:    0.345,
			Single: 0.310,
			Two:    0.090,
			Three:  0.015,
			Four:   0.120,
			Six:    0.060,
			Wicket: 0.060,
		},
		PhaseMods: map[types.Phase]OutcomeMods{
			types.PhasePowerplay: {Boundary: 1.15, Wicket: 1.05, Dot: 0.95},
			types.PhaseMiddle:    {Boundary: 0.90, Wicket: 0.95, Dot: 1.05},
			types.PhaseDeath:     {Boundary: 1.30, Wicket: 1.25, Dot: 0.85},
		},
		TacticMods: map[types.Approach]OutcomeMods{
			types.ApproachAggressive: {Boundary: 1.35, Wicket: 1.40, Dot: 0.75},
			types.ApproachBalanced:   {Boundary: 1.00, Wicket: 1.00, Dot: 1.00},
			types.ApproachCautious:   {Boundary: 0.70, Wicket: 0.70, Dot: 1.25},
		},
		LengthMods: map[types.BowlingLength]LengthMod{
			types.LengthGood: {
				OutcomeMods: OutcomeMods{Boundary: 0.90, Wicket: 1.10, Dot: 1.05},
				SkillType:   "accuracy", MinSkill: 60,
			},
			types.LengthShort: {
				OutcomeMods: OutcomeMods{Boundary: 1.10, Wicket: 1.05, Dot: 0.95},
				SkillType:   "speed", MinSkill: 70,
			},
			types.LengthYorkers: {
				OutcomeMods: OutcomeMods{Boundary: 0.75, Wicket: 1.20, Dot: 1.15},
				SkillType:   "accuracy", MinSkill: 75,
			},
			types.LengthFullPitched: {
				OutcomeMods: OutcomeMods{Boundary: 1.20, Wicket: 1.15, Dot: 0.90},
				SkillType:   "variation", MinSkill: 65,
			},
		},
		FieldMods: map[types.FieldSetting]OutcomeMods{
			types.FieldAttacking:  {Boundary: 1.15, Wicket: 1.20},
			types.FieldBalanced:   {Boundary: 1.00, Wicket: 1.00},
			types.FieldDefensive:  {Boundary: 0.85, Wicket: 0.90},
			types.FieldDeathField: {Boundary: 0.80, Wicket: 1.05},
		},
		BatsmanState: StateParams{
			NewThreshold:      6,
			SettlingThreshold: 15,
			Mods: map[types.BatsmanState]OutcomeMods{
				// New batters are safer but slower; set batters attack
				// harder at marginal extra risk.
				types.BatsmanNew:      {Boundary: 0.65, Wicket: 0.90, Dot: 1.25},
				types.BatsmanSettling: {Boundary: 0.90, Wicket: 1.00, Dot: 1.05},
				types.BatsmanSet:      {Boundary: 1.15, Wicket: 1.05, Dot: 0.90},
			},
		},
		Pressure: PressureParams{
			RecentWickets2:     OutcomeMods{Boundary: 0.85},
			RecentWickets3:     OutcomeMods{Boundary: 0.70, Dot: 1.15},
			BowlerOnRoll2:      0.90,
			BowlerOnRoll3:      0.80,
			Partnership30:      OutcomeMods{Boundary: 1.08, Wicket: 0.95},
			Partnership50:      OutcomeMods{Boundary: 1.15, Wicket: 0.90},
			RequiredRate9To12:  OutcomeMods{Boundary: 1.20, Wicket: 1.25},
			RequiredRateOver12: OutcomeMods{Boundary: 1.40, Wicket: 1.50},
		},
		Extras: ExtraParams{
			WideChance:   0.025,
			NoBallChance: 0.008,
		},
		Pitch: PitchParams{
			Baseline:      50,
			WicketScale:   0.40,
			BoundaryScale: 0.25,
			MaxAdvantage:  0.50,
		},
		SkillDiffScale:           0.15,
		FormDivisor:              200,
		FatigueDivisor:           500,
		LengthEffectivenessFloor: 0.50,
		LengthEffectivenessCap:   1.30,
		Fielding:                 fielding.Defaults(),
	}
}

// Load layers a YAML tuning file over Defaults. Only keys present in the
// file override; everything else keeps its default.
func Load(path string) (Params, error) {
	params := Defaults()
	if path == "" {
		return params, nil
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrLoadParams, err)
	}
	if err := k.UnmarshalWithConf("", &params, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrLoadParams, err)
	}
	if err := params.Validate(); err != nil {
		return Params{}, err
	}
	return params, nil
}

// Validate rejects tables the model cannot renormalize sensibly.
func (p Params) Validate() error {
	sum := p.BaseOutcomes.Sum()
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("%w: base outcomes sum to %v, want 1", ErrInvalidParams, sum)
	}
	for _, v := range []float64{
		p.BaseOutcomes.Dot, p.BaseOutcomes.Single, p.BaseOutcomes.Two,
		p.BaseOutcomes.Three, p.BaseOutcomes.Four, p.BaseOutcomes.Six,
		p.BaseOutcomes.Wicket,
	} {
		if v < 0 {
			return fmt.Errorf("%w: negative base outcome weight", ErrInvalidParams)
		}
	}
	if p.Extras.WideChance < 0 || p.Extras.NoBallChance < 0 ||
		p.Extras.WideChance+p.Extras.NoBallChance >= 1 {
		return fmt.Errorf("%w: extras chances out of range", ErrInvalidParams)
	}
	return nil
}
