package model

import (
	"strconv"
	"testing"

	"github.com/gullysim/gully/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func validTactics() MatchTactics {
	order := make([]string, 11)
	for i := range order {
		order[i] = "p" + strconv.Itoa(i+1)
	}
	return MatchTactics{
		BattingOrder: order,
		Captain:      "p4",
		Keeper:       "p1",
		Approaches: map[types.Phase]types.Approach{
			types.PhasePowerplay: types.ApproachAggressive,
		},
		Bowling: BowlingPlan{
			Openers:     [2]string{"p8", "p9"},
			DeathBowler: "p10",
		},
	}
}

func TestMatchTacticsValidate(t *testing.T) {
	convey.Convey("Given match tactics", t, func() {
		convey.Convey("When the XI is legal, validation passes", func() {
			convey.So(validTactics().Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the order has too few players", func() {
			tt := validTactics()
			tt.BattingOrder = tt.BattingOrder[:10]
			convey.So(tt.Validate(), convey.ShouldWrap, ErrInvalidXI)
		})

		convey.Convey("When the order repeats a player", func() {
			tt := validTactics()
			tt.BattingOrder[10] = tt.BattingOrder[0]
			convey.So(tt.Validate(), convey.ShouldWrap, ErrInvalidXI)
		})

		convey.Convey("When the captain is outside the XI", func() {
			tt := validTactics()
			tt.Captain = "p99"
			convey.So(tt.Validate(), convey.ShouldEqual, ErrCaptainNotInXI)
		})

		convey.Convey("When the keeper is outside the XI", func() {
			tt := validTactics()
			tt.Keeper = "p99"
			convey.So(tt.Validate(), convey.ShouldEqual, ErrKeeperNotInXI)
		})

		convey.Convey("When the bowling plan is incomplete", func() {
			tt := validTactics()
			tt.Bowling.DeathBowler = ""
			convey.So(tt.Validate(), convey.ShouldEqual, ErrIncompleteBowling)
		})
	})
}

func TestMatchTacticsFallbacks(t *testing.T) {
	convey.Convey("Given tactics with partial phase plans", t, func() {
		tt := validTactics()

		convey.Convey("When the phase has an approach, it is used", func() {
			convey.So(tt.Approach(types.PhasePowerplay), convey.ShouldEqual, types.ApproachAggressive)
		})

		convey.Convey("When the phase has no approach, balanced is assumed", func() {
			convey.So(tt.Approach(types.PhaseDeath), convey.ShouldEqual, types.ApproachBalanced)
		})

		convey.Convey("When the phase has no bowling plan, good length and a balanced field are assumed", func() {
			plan := tt.Plan(types.PhaseMiddle)
			convey.So(plan.Length, convey.ShouldEqual, types.LengthGood)
			convey.So(plan.Field, convey.ShouldEqual, types.FieldBalanced)
		})
	})
}

func TestBallOutcomeConstructors(t *testing.T) {
	convey.Convey("Given ball outcome constructors", t, func() {
		convey.Convey("Runs outcomes are legal deliveries", func() {
			o := RunsOutcome(4)
			convey.So(o.Kind, convey.ShouldEqual, types.OutcomeRuns)
			convey.So(o.Runs, convey.ShouldEqual, 4)
			convey.So(o.IsLegal(), convey.ShouldBeTrue)
		})

		convey.Convey("Saved boundaries keep the runs kind and flag the save", func() {
			o := SavedBoundaryOutcome(2)
			convey.So(o.Kind, convey.ShouldEqual, types.OutcomeRuns)
			convey.So(o.BoundarySaved, convey.ShouldBeTrue)
			convey.So(o.Runs, convey.ShouldEqual, 2)
		})

		convey.Convey("Wickets carry the dismissal kind and no runs", func() {
			o := WicketOutcome(types.DismissalBowled)
			convey.So(o.Kind, convey.ShouldEqual, types.OutcomeWicket)
			convey.So(o.Dismissal, convey.ShouldEqual, types.DismissalBowled)
			convey.So(o.Runs, convey.ShouldEqual, 0)
			convey.So(o.IsLegal(), convey.ShouldBeTrue)
		})

		convey.Convey("Extras are worth one and do not count toward the over", func() {
			o := ExtraOutcome(types.ExtraWide)
			convey.So(o.Kind, convey.ShouldEqual, types.OutcomeExtra)
			convey.So(o.Runs, convey.ShouldEqual, 1)
			convey.So(o.IsLegal(), convey.ShouldBeFalse)
		})
	})
}

func TestInningsState(t *testing.T) {
	convey.Convey("Given an innings state", t, func() {
		convey.Convey("A fresh innings opens with the first two batters", func() {
			st := NewInningsState("lions", "tigers", []string{"a", "b", "c"})
			convey.So(st.CurrentBatters, convey.ShouldResemble, [2]string{"a", "b"})
			convey.So(st.BattingTeam, convey.ShouldEqual, "lions")
			convey.So(st.BatterStats, convey.ShouldNotBeNil)
			convey.So(st.BowlerStats, convey.ShouldNotBeNil)
		})

		convey.Convey("The over fraction combines overs and balls", func() {
			st := InningsState{Overs: 14, Balls: 3}
			convey.So(st.OverFraction(), convey.ShouldAlmostEqual, 14.5)
		})

		convey.Convey("Clone detaches maps and slices from the original", func() {
			st := NewInningsState("lions", "tigers", []string{"a", "b"})
			st.BatterStats["a"] = BatterStats{Runs: 10}
			st.OverSummaries = append(st.OverSummaries, OverSummary{Over: 0, Runs: 8})

			clone := st.Clone()
			clone.BatterStats["a"] = BatterStats{Runs: 99}
			clone.OverSummaries[0].Runs = 0

			convey.So(st.BatterStats["a"].Runs, convey.ShouldEqual, 10)
			convey.So(st.OverSummaries[0].Runs, convey.ShouldEqual, 8)
		})
	})
}

func TestMatchResultTie(t *testing.T) {
	convey.Convey("Given match results", t, func() {
		convey.Convey("An empty winner means a tie", func() {
			convey.So(MatchResult{}.Tie(), convey.ShouldBeTrue)
			convey.So(MatchResult{Winner: "lions"}.Tie(), convey.ShouldBeFalse)
		})
	})
}
