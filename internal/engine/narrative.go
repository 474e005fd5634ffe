package engine

import (
	"fmt"
	"strings"

	"github.com/gullysim/gully/internal/domain/model"
	"github.com/gullysim/gully/internal/domain/types"
)

// narrator produces cosmetic commentary for ball events. Purely flavor;
// nothing downstream parses these strings.
type narrator struct {
	dot      []string
	single   []string
	two      []string
	three    []string
	four     []string
	six      []string
	saved    []string
	extras   map[types.ExtraKind][]string
	wickets  map[types.DismissalKind][]string
}

func newNarrator() *narrator {
	return &narrator{
		dot: []string{
			"Dot ball. Tight bowling from {bowler}.",
			"Defended back to the bowler.",
			"{batter} can't get it away.",
			"Good length, no run.",
			"Beaten outside off! Fine delivery.",
			"{bowler} keeps it tight.",
		},
		single: []string{
			"Single taken.",
			"Pushed for one.",
			"Quick single.",
			"Rotates the strike.",
			"{batter} nudges it for one.",
		},
		two: []string{
			"Two runs.",
			"Good running between the wickets!",
			"Pushed into the gap for two.",
			"They come back for the second.",
		},
		three: []string{
			"Three runs! Excellent running!",
			"They come back for three!",
			"Worked into the gap, three taken.",
		},
		four: []string{
			"FOUR! {batter} times that beautifully!",
			"Boundary! That raced away to the fence!",
			"FOUR! Cracking shot through the covers!",
			"Cut away and that's FOUR!",
			"Driven through mid-off for FOUR!",
		},
		six: []string{
			"SIX! {batter} launches it into the stands!",
			"HUGE SIX! That's gone miles!",
			"Maximum! {batter} clears the rope with ease!",
			"Into the crowd! Massive hit!",
		},
		saved: []string{
			"Great fielding! Saves the boundary, they run {runs}.",
			"Athletic stop at the rope! {runs} runs only.",
			"Brilliant diving save! They get {runs}.",
		},
		extras: map[types.ExtraKind][]string{
			types.ExtraWide: {
				"Wide called. Extra run.",
				"Sprayed down the leg side, wide.",
			},
			types.ExtraNoBall: {
				"No ball! Overstepped.",
				"Front foot trouble, no ball called.",
			},
		},
		wickets: map[types.DismissalKind][]string{
			types.DismissalBowled: {
				"Clean bowled! {bowler} beats {batter} all ends up!",
				"The stumps are rattled! {batter} has to go!",
				"Bowled him! Right through the gate!",
			},
			types.DismissalCaught: {
				"Caught! {batter} finds the fielder!",
				"In the air and taken! {bowler} gets the breakthrough!",
				"Edged and caught! {bowler} strikes!",
			},
			types.DismissalLBW: {
				"Huge appeal and given! {batter} is LBW!",
				"Trapped in front! That looked plumb.",
			},
			types.DismissalRunOut: {
				"Run out! Terrible mix-up and {batter} pays for it!",
				"Direct hit! {batter} is well short!",
			},
			types.DismissalStumped: {
				"Stumped! {batter} dragged too far out of the crease!",
				"Quick hands behind the stumps and {batter} is gone!",
			},
			types.DismissalHitWicket: {
				"Hit wicket! {batter} has trodden on the stumps!",
			},
		},
	}
}

// describe picks a template for the outcome using the engine RNG and
// fills in the names.
func (n *narrator) describe(rng RNG, outcome model.BallOutcome, batter, bowler string) string {
	var pool []string
	switch outcome.Kind {
	case types.OutcomeWicket:
		pool = n.wickets[outcome.Dismissal]
	case types.OutcomeExtra:
		pool = n.extras[outcome.Extra]
	default:
		switch {
		case outcome.BoundarySaved:
			pool = n.saved
		case outcome.Runs == 0:
			pool = n.dot
		case outcome.Runs == 1:
			pool = n.single
		case outcome.Runs == 2:
			pool = n.two
		case outcome.Runs == 3:
			pool = n.three
		case outcome.Runs == 4:
			pool = n.four
		default:
			pool = n.six
		}
	}
	if len(pool) == 0 {
		return ""
	}
	line := pool[rng.Intn(len(pool))]
	line = strings.ReplaceAll(line, "{batter}", batter)
	line = strings.ReplaceAll(line, "{bowler}", bowler)
	line = strings.ReplaceAll(line, "{runs}", fmt.Sprintf("%d", outcome.Runs))
	return line
}
