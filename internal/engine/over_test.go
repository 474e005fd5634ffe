package engine

import (
	"testing"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/probability"
	"github.com/smartystreets/goconvey/convey"
)

func testOverInput(home, away []model.Player) OverInput {
	return OverInput{
		BattingXI:      home,
		FieldingXI:     away,
		Bowler:         away[7],
		State:          model.NewInningsState("home", "away", playerIDs(home)),
		BattingTactics: *testTactics("home"),
		BowlingTactics: *testTactics("away"),
		Pitch:          testPitch(),
	}
}

func TestSimulateOverAllSingles(t *testing.T) {
	convey.Convey("Given an over where every ball is a single", t, func() {
		home, away := testXI("home"), testXI("away")
		e := New(
			WithParams(singleOutcomeParams(probability.Distribution{Single: 1})),
			WithNarrative(false),
			WithRNG(&fakeRNG{}),
		)

		in := testOverInput(home, away)
		summary, updated, complete := e.SimulateOver(in)

		convey.Convey("Then the over bookkeeping is exact", func() {
			convey.So(complete, convey.ShouldBeFalse)
			convey.So(summary.Over, convey.ShouldEqual, 0)
			convey.So(summary.Bowler, convey.ShouldEqual, "away-8")
			convey.So(summary.Runs, convey.ShouldEqual, 6)
			convey.So(summary.Wickets, convey.ShouldEqual, 0)
			convey.So(len(summary.Balls), convey.ShouldEqual, 6)

			convey.So(updated.Runs, convey.ShouldEqual, 6)
			convey.So(updated.Overs, convey.ShouldEqual, 1)
			convey.So(updated.Balls, convey.ShouldEqual, 0)
		})

		convey.Convey("And the strike swaps on each single plus the end of over", func() {
			convey.So(updated.CurrentBatters[0], convey.ShouldEqual, "home-2")
			convey.So(updated.CurrentBatters[1], convey.ShouldEqual, "home-1")
		})

		convey.Convey("And both openers faced three balls each", func() {
			convey.So(updated.BatterStats["home-1"], convey.ShouldResemble, model.BatterStats{Runs: 3, Balls: 3})
			convey.So(updated.BatterStats["home-2"], convey.ShouldResemble, model.BatterStats{Runs: 3, Balls: 3})
		})

		convey.Convey("And the bowler is charged a full over", func() {
			convey.So(updated.BowlerStats["away-8"], convey.ShouldResemble, model.BowlerStats{Overs: 1, Runs: 6})
		})

		convey.Convey("And the caller's state is untouched", func() {
			convey.So(in.State.Runs, convey.ShouldEqual, 0)
			convey.So(len(in.State.OverSummaries), convey.ShouldEqual, 0)
		})
	})
}

func TestSimulateOverMaiden(t *testing.T) {
	convey.Convey("Given an over of nothing but dots", t, func() {
		home, away := testXI("home"), testXI("away")
		e := New(
			WithParams(singleOutcomeParams(probability.Distribution{Dot: 1})),
			WithNarrative(false),
			WithRNG(&fakeRNG{}),
		)

		summary, updated, complete := e.SimulateOver(testOverInput(home, away))

		convey.Convey("Then no runs are scored and all dots are credited", func() {
			convey.So(complete, convey.ShouldBeFalse)
			convey.So(summary.Runs, convey.ShouldEqual, 0)
			convey.So(updated.Runs, convey.ShouldEqual, 0)
			convey.So(updated.BowlerStats["away-8"], convey.ShouldResemble, model.BowlerStats{Overs: 1, Dots: 6})
		})

		convey.Convey("And only the end-of-over rotation moves the strike", func() {
			convey.So(updated.CurrentBatters[0], convey.ShouldEqual, "home-2")
		})
	})
}

func TestSimulateOverChaseEndsMidOver(t *testing.T) {
	convey.Convey("Given a three-run target with every ball a single", t, func() {
		home, away := testXI("home"), testXI("away")
		e := New(
			WithParams(singleOutcomeParams(probability.Distribution{Single: 1})),
			WithNarrative(false),
			WithRNG(&fakeRNG{}),
		)

		in := testOverInput(home, away)
		in.Target = 3
		summary, updated, complete := e.SimulateOver(in)

		convey.Convey("Then the innings ends the moment the target is reached", func() {
			convey.So(complete, convey.ShouldBeTrue)
			convey.So(updated.Runs, convey.ShouldEqual, 3)
			convey.So(len(summary.Balls), convey.ShouldEqual, 3)
			convey.So(updated.Overs, convey.ShouldEqual, 0)
			convey.So(updated.Balls, convey.ShouldEqual, 3)
		})
	})
}

func TestSimulateOverWickets(t *testing.T) {
	convey.Convey("Given an over where every ball takes a wicket", t, func() {
		home, away := testXI("home"), testXI("away")
		e := New(
			WithParams(singleOutcomeParams(probability.Distribution{Wicket: 1})),
			WithNarrative(false),
			WithRNG(&fakeRNG{}),
		)

		summary, updated, complete := e.SimulateOver(testOverInput(home, away))

		convey.Convey("Then wickets, fall of wicket records and bowler credit line up", func() {
			convey.So(complete, convey.ShouldBeFalse)
			convey.So(summary.Wickets, convey.ShouldEqual, 6)
			convey.So(updated.Wickets, convey.ShouldEqual, 6)
			convey.So(len(updated.FallOfWickets), convey.ShouldEqual, 6)
			convey.So(updated.BowlerStats["away-8"].Wickets, convey.ShouldEqual, 6)
		})

		convey.Convey("And the first man out fell on the first ball at no score", func() {
			convey.So(updated.FallOfWickets[0].Player, convey.ShouldEqual, "home-1")
			convey.So(updated.FallOfWickets[0].Runs, convey.ShouldEqual, 0)
			convey.So(updated.FallOfWickets[0].Over, convey.ShouldAlmostEqual, 0.1)
		})
	})
}
