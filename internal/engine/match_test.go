package engine

import (
	"testing"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/probability"
	"github.com/smartystreets/goconvey/convey"
)

func testMatchInput() MatchInput {
	return MatchInput{
		Home:  Side{TeamID: "home", Squad: testXI("home"), Tactics: testTactics("home")},
		Away:  Side{TeamID: "away", Squad: testXI("away"), Tactics: testTactics("away")},
		Pitch: model.PitchConditions{Pace: 55, Spin: 45, Bounce: 60, Deterioration: 25},
	}
}

func TestSimulateMatch(t *testing.T) {
	convey.Convey("Given a seeded engine and a legal fixture", t, func() {
		res, err := New(WithSeed(7), WithNarrative(false)).SimulateMatch(testMatchInput())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the same seed replays the identical match", func() {
			replay, err := New(WithSeed(7), WithNarrative(false)).SimulateMatch(testMatchInput())
			convey.So(err, convey.ShouldBeNil)
			convey.So(replay, convey.ShouldResemble, res)
		})

		convey.Convey("Then the toss and innings order are consistent", func() {
			convey.So(res.TossWinner, convey.ShouldBeIn, "home", "away")
			convey.So(res.FirstInnings.BattingTeam, convey.ShouldNotEqual, res.SecondInnings.BattingTeam)
			convey.So(res.FirstInnings.BowlingTeam, convey.ShouldEqual, res.SecondInnings.BattingTeam)
		})

		convey.Convey("Then both innings respect the format bounds", func() {
			for _, inn := range []model.InningsState{res.FirstInnings, res.SecondInnings} {
				convey.So(inn.Overs, convey.ShouldBeLessThanOrEqualTo, model.TotalOvers)
				convey.So(inn.Wickets, convey.ShouldBeLessThanOrEqualTo, model.MaxWickets)
				for _, ws := range inn.BowlerStats {
					convey.So(ws.Overs, convey.ShouldBeLessThanOrEqualTo, maxOversPerBowler)
				}
			}
		})

		convey.Convey("Then the result matches the scores", func() {
			first, second := res.FirstInnings, res.SecondInnings
			switch {
			case second.Runs > first.Runs:
				convey.So(res.Winner, convey.ShouldEqual, second.BattingTeam)
				convey.So(res.Margin, convey.ShouldNotBeNil)
				convey.So(res.Margin.Kind, convey.ShouldEqual, model.MarginByWickets)
				convey.So(res.Margin.Value, convey.ShouldEqual, model.MaxWickets-second.Wickets)
			case second.Runs < first.Runs:
				convey.So(res.Winner, convey.ShouldEqual, first.BattingTeam)
				convey.So(res.Margin, convey.ShouldNotBeNil)
				convey.So(res.Margin.Kind, convey.ShouldEqual, model.MarginByRuns)
				convey.So(res.Margin.Value, convey.ShouldEqual, first.Runs-second.Runs)
			default:
				convey.So(res.Tie(), convey.ShouldBeTrue)
				convey.So(res.Margin, convey.ShouldBeNil)
			}
		})

		convey.Convey("Then a player of the match is always named", func() {
			convey.So(res.PlayerOfMatch, convey.ShouldNotBeEmpty)
		})
	})
}

func TestSimulateMatchTie(t *testing.T) {
	convey.Convey("Given a match where every ball is a single", t, func() {
		e := New(
			WithParams(singleOutcomeParams(probability.Distribution{Single: 1})),
			WithNarrative(false),
			WithRNG(&fakeRNG{}),
		)
		res, err := e.SimulateMatch(testMatchInput())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then both sides finish on 120 and the chase falls one short", func() {
			convey.So(res.FirstInnings.Runs, convey.ShouldEqual, 120)
			convey.So(res.SecondInnings.Runs, convey.ShouldEqual, 120)
			convey.So(res.FirstInnings.Overs, convey.ShouldEqual, model.TotalOvers)
			convey.So(res.SecondInnings.Overs, convey.ShouldEqual, model.TotalOvers)
		})

		convey.Convey("Then the tie carries no winner and no margin", func() {
			convey.So(res.Tie(), convey.ShouldBeTrue)
			convey.So(res.Winner, convey.ShouldEqual, "")
			convey.So(res.Margin, convey.ShouldBeNil)
			convey.So(res.PlayerOfMatch, convey.ShouldNotBeEmpty)
		})
	})
}

func TestSimulateMatchErrors(t *testing.T) {
	convey.Convey("Given broken fixtures", t, func() {
		e := New(WithSeed(1))

		convey.Convey("Missing tactics fail before any simulation", func() {
			in := testMatchInput()
			in.Home.Tactics = nil
			_, err := e.SimulateMatch(in)
			convey.So(err, convey.ShouldWrap, ErrMissingTactics)
		})

		convey.Convey("A short batting order is an invalid XI", func() {
			in := testMatchInput()
			in.Home.Tactics.BattingOrder = in.Home.Tactics.BattingOrder[:10]
			_, err := e.SimulateMatch(in)
			convey.So(err, convey.ShouldWrap, ErrInvalidXI)
		})

		convey.Convey("An order naming an unknown player is rejected", func() {
			in := testMatchInput()
			order := append([]string(nil), in.Home.Tactics.BattingOrder...)
			order[5] = "home-ghost"
			in.Home.Tactics.BattingOrder = order
			_, err := e.SimulateMatch(in)
			convey.So(err, convey.ShouldWrap, ErrPlayerNotInSquad)
		})
	})
}

func TestPlayerOfMatch(t *testing.T) {
	convey.Convey("Given innings aggregates", t, func() {
		first := model.NewInningsState("home", "away", []string{"h1", "h2"})
		second := model.NewInningsState("away", "home", []string{"a1", "a2"})

		convey.Convey("Runs and boundaries weigh against wickets and dots", func() {
			first.BatterStats["h1"] = model.BatterStats{Runs: 50, Balls: 30, Fours: 4, Sixes: 2}
			second.BowlerStats["a9"] = model.BowlerStats{Overs: 4, Wickets: 3, Dots: 4}
			convey.So(playerOfMatch(first, second), convey.ShouldEqual, "h1")
		})

		convey.Convey("Exact ties go to the first id in order", func() {
			first.BatterStats["h1"] = model.BatterStats{Runs: 46, Balls: 30, Fours: 4, Sixes: 2}
			second.BowlerStats["a9"] = model.BowlerStats{Overs: 4, Wickets: 3, Dots: 4}
			convey.So(playerOfMatch(first, second), convey.ShouldEqual, "a9")
		})

		convey.Convey("With no recorded statistics nobody is named", func() {
			convey.So(playerOfMatch(first, second), convey.ShouldEqual, "")
		})
	})
}
