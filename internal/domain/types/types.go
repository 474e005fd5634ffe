// Package types contains closed enumerations shared across the engine.
package types

// Phase is the stage of a T20 innings.
type Phase string

// Innings phases. Powerplay covers overs 1-6, middle 7-16, death 17-20.
const (
	PhasePowerplay Phase = "powerplay"
	PhaseMiddle    Phase = "middle"
	PhaseDeath     Phase = "death"
)

// Approach is a batting side's tactical intent for a phase.
type Approach string

// Batting approaches.
const (
	ApproachAggressive Approach = "aggressive"
	ApproachBalanced   Approach = "balanced"
	ApproachCautious   Approach = "cautious"
)

// BowlingLength is the length a bowler is instructed to target.
type BowlingLength string

// Bowling lengths.
const (
	LengthGood        BowlingLength = "good-length"
	LengthShort       BowlingLength = "short"
	LengthYorkers     BowlingLength = "yorkers"
	LengthFullPitched BowlingLength = "full-pitched"
)

// FieldSetting is the fielding side's placement plan.
type FieldSetting string

// Field settings.
const (
	FieldAttacking  FieldSetting = "attacking"
	FieldBalanced   FieldSetting = "balanced"
	FieldDefensive  FieldSetting = "defensive"
	FieldDeathField FieldSetting = "death-field"
)

// DismissalKind is how a batter got out.
type DismissalKind string

// Dismissal kinds.
const (
	DismissalCaught    DismissalKind = "caught"
	DismissalBowled    DismissalKind = "bowled"
	DismissalLBW       DismissalKind = "lbw"
	DismissalRunOut    DismissalKind = "runout"
	DismissalStumped   DismissalKind = "stumped"
	DismissalHitWicket DismissalKind = "hitwicket"
)

// ExtraKind is an illegal delivery kind. Only wides and no-balls are
// modeled; byes and leg-byes are out of scope.
type ExtraKind string

// Extra kinds.
const (
	ExtraWide   ExtraKind = "wide"
	ExtraNoBall ExtraKind = "noball"
)

// OutcomeKind tags the BallOutcome union.
type OutcomeKind string

// Outcome kinds.
const (
	OutcomeRuns   OutcomeKind = "runs"
	OutcomeWicket OutcomeKind = "wicket"
	OutcomeExtra  OutcomeKind = "extra"
)

// PlayerRole is a player's primary squad role.
type PlayerRole string

// Player roles.
const (
	RoleBatsman    PlayerRole = "batsman"
	RoleBowler     PlayerRole = "bowler"
	RoleAllrounder PlayerRole = "allrounder"
	RoleKeeper     PlayerRole = "keeper"
)

// BowlingStyle describes a bowler's delivery style.
type BowlingStyle string

// Bowling styles.
const (
	StyleRightArmFast   BowlingStyle = "right-arm-fast"
	StyleRightArmMedium BowlingStyle = "right-arm-medium"
	StyleLeftArmFast    BowlingStyle = "left-arm-fast"
	StyleLeftArmMedium  BowlingStyle = "left-arm-medium"
	StyleOffSpin        BowlingStyle = "off-spin"
	StyleLegSpin        BowlingStyle = "leg-spin"
	StyleLeftArmSpin    BowlingStyle = "left-arm-spin"
)

// IsSpin reports whether the style is a spin variety.
func (s BowlingStyle) IsSpin() bool {
	switch s {
	case StyleOffSpin, StyleLegSpin, StyleLeftArmSpin:
		return true
	default:
		return false
	}
}

// IsPace reports whether the style is a pace variety.
func (s BowlingStyle) IsPace() bool {
	return s != "" && !s.IsSpin()
}

// BatsmanState buckets a batter's settling-in progress.
type BatsmanState string

// Batsman states derived from balls faced.
const (
	BatsmanNew      BatsmanState = "new"
	BatsmanSettling BatsmanState = "settling"
	BatsmanSet      BatsmanState = "set"
)

// PressureLevel categorizes required-rate pressure while chasing.
type PressureLevel string

// Pressure levels.
const (
	PressureLow    PressureLevel = "low"
	PressureMedium PressureLevel = "medium"
	PressureHigh   PressureLevel = "high"
)

// Momentum categorizes which side the last couple of overs favored.
type Momentum string

// Momentum states.
const (
	MomentumBatting Momentum = "batting"
	MomentumNeutral Momentum = "neutral"
	MomentumBowling Momentum = "bowling"
)
