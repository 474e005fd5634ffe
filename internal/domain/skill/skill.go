// Package skill reduces multi-attribute skill blocks into the single
// overall ratings the outcome model consumes.
package skill

import "github.com/gullysim/gully/internal/domain/model"

// Weights for the overall ratings. Timing carries batting; accuracy
// carries bowling.
const (
	battingTechniqueWeight   = 0.25
	battingPowerWeight       = 0.25
	battingTimingWeight      = 0.30
	battingTemperamentWeight = 0.20

	bowlingSpeedWeight     = 0.20
	bowlingAccuracyWeight  = 0.35
	bowlingVariationWeight = 0.25
	bowlingStaminaWeight   = 0.20
)

// BattingOverall reduces a batting skill block to one rating in [0,100].
func BattingOverall(b model.BattingSkills) float64 {
	return float64(b.Technique)*battingTechniqueWeight +
		float64(b.Power)*battingPowerWeight +
		float64(b.Timing)*battingTimingWeight +
		float64(b.Temperament)*battingTemperamentWeight
}

// BowlingOverall reduces a bowling skill block to one rating in [0,100].
func BowlingOverall(b model.BowlingSkills) float64 {
	return float64(b.Speed)*bowlingSpeedWeight +
		float64(b.Accuracy)*bowlingAccuracyWeight +
		float64(b.Variation)*bowlingVariationWeight +
		float64(b.Stamina)*bowlingStaminaWeight
}

// FieldingAggregate is the XI-average fielding profile used by the
// dismissal and boundary-save models.
type FieldingAggregate struct {
	Catching    float64
	Ground      float64
	Throwing    float64
	Athleticism float64
}

// AggregateFielding averages fielding skills across the fielding XI.
// An empty side yields the zero aggregate.
func AggregateFielding(players []model.Player) FieldingAggregate {
	if len(players) == 0 {
		return FieldingAggregate{}
	}
	var agg FieldingAggregate
	for _, p := range players {
		agg.Catching += float64(p.Fielding.Catching)
		agg.Ground += float64(p.Fielding.Ground)
		agg.Throwing += float64(p.Fielding.Throwing)
		agg.Athleticism += float64(p.Fielding.Athleticism)
	}
	n := float64(len(players))
	agg.Catching /= n
	agg.Ground /= n
	agg.Throwing /= n
	agg.Athleticism /= n
	return agg
}
