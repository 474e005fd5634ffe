package testmatches

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
	"github.com/gullysim/gully/pkg/logger"
)

// Constants for random number generation.
const (
	randomIntDivisor = 1000000
	tierDivisor      = 8
)

// Skill tier ranges.
const (
	eliteMin   = 80
	eliteRange = 15
	solidMin   = 60
	solidRange = 20
	avgMin     = 45
	avgRange   = 20
	weakMin    = 30
	weakRange  = 20
)

// Performance tier cases. Weighted so most squads are ordinary with the
// occasional star-studded or struggling XI.
const (
	caseAverageSquad = 0
	caseSolidSquad   = 1
	caseEliteSquad   = 2
	caseWeakSquad    = 3
)

// Pitch condition ranges.
const (
	pitchMin   = 30
	pitchRange = 40
	deterMin   = 10
	deterRange = 40
)

// randomInt returns a random int in [min, min+span) using crypto/rand.
func randomInt(min, span int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(span)))
	return min + int(n.Int64())
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomIntDivisor))
	return float64(n.Int64()) / float64(randomIntDivisor)
}

// generateFixtures creates the specified number of fixtures with unique request IDs.
func generateFixtures(ctx context.Context, config *Config, stats *Stats) ([]Fixture, error) {
	logger.Get().Info(ctx, "generating fixtures with unique request IDs", logger.Int("numMatches", config.NumMatches))

	fixtures := make([]Fixture, config.NumMatches)

	type fixtureResult struct {
		index   int
		fixture Fixture
		err     error
	}

	resultChan := make(chan fixtureResult, config.NumMatches)

	// Use worker pool for fixture generation
	workerCount := minInt(config.Workers, config.NumMatches)
	fixturesPerWorker := config.NumMatches / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * fixturesPerWorker
		end := start + fixturesPerWorker
		if worker == workerCount-1 {
			end = config.NumMatches // Last worker gets remaining fixtures
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- fixtureResult{index: i, err: ctx.Err()}
					return
				default:
					resultChan <- fixtureResult{index: i, fixture: generateSingleFixture(i)}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumMatches; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during fixture generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate fixture %d: %w", result.index, result.err)
			}
			fixtures[result.index] = result.fixture
		}
	}

	stats.MatchesGenerated = len(fixtures)
	logger.Get().Info(ctx, "generated fixtures successfully", logger.Int("count", len(fixtures)))

	return fixtures, nil
}

// generateSingleFixture creates one two-sided fixture with a fresh request ID.
func generateSingleFixture(index int) Fixture {
	id := uuid.New().String()
	home := generateSide("home_" + strconv.Itoa(index) + "_" + id[:8])
	away := generateSide("away_" + strconv.Itoa(index) + "_" + id[:8])

	return Fixture{
		RequestID: "match_" + strconv.Itoa(index) + "_" + id,
		Home:      home,
		Away:      away,
		Pitch: map[string]int{
			"pace":          randomInt(pitchMin, pitchRange),
			"spin":          randomInt(pitchMin, pitchRange),
			"bounce":        randomInt(pitchMin, pitchRange),
			"deterioration": randomInt(deterMin, deterRange),
		},
		Seed: int64(randomInt(1, randomIntDivisor)),
	}
}

// generateSide builds an eleven-player squad with tactics derived from it.
func generateSide(teamID string) Side {
	tierMin, tierRange := squadTier()

	squad := make([]Player, 0, 11)
	order := make([]string, 0, 11)
	paceStyles := []string{"right-arm-fast", "right-arm-medium", "left-arm-fast"}
	spinStyles := []string{"off-spin", "leg-spin", "left-arm-spin"}

	for i := 1; i <= 11; i++ {
		pid := teamID + "_p" + strconv.Itoa(i)
		order = append(order, pid)

		p := Player{
			ID:      pid,
			Name:    "Player " + strconv.Itoa(i),
			Batting: skillBlock([]string{"technique", "power", "timing", "temperament"}, tierMin, tierRange),
			Bowling: skillBlock([]string{"speed", "accuracy", "variation", "stamina"}, tierMin, tierRange),
			Fielding: skillBlock([]string{"catching", "ground", "throwing", "athleticism"}, tierMin, tierRange),
			Form:    randomInt(40, 40),
			Fitness: randomInt(70, 30),
			Morale:  randomInt(50, 40),
		}

		switch {
		case i == 1:
			p.Role = "keeper"
		case i <= 6:
			p.Role = "batsman"
		case i == 7:
			p.Role = "allrounder"
			p.BowlingStyle = spinStyles[randomInt(0, len(spinStyles))]
		default:
			p.Role = "bowler"
			if randomFloat() < 0.6 {
				p.BowlingStyle = paceStyles[randomInt(0, len(paceStyles))]
			} else {
				p.BowlingStyle = spinStyles[randomInt(0, len(spinStyles))]
			}
			// Bowlers bat low, tone down the batting block
			p.Batting = skillBlock([]string{"technique", "power", "timing", "temperament"}, weakMin, weakRange)
		}

		squad = append(squad, p)
	}

	return Side{
		TeamID: teamID,
		Squad:  squad,
		Tactics: Tactics{
			BattingOrder: order,
			Captain:      order[3],
			Keeper:       order[0],
			Approaches: map[string]string{
				"powerplay": "aggressive",
				"middle":    "balanced",
				"death":     "aggressive",
			},
			Bowling: BowlingPlan{
				Openers:     [2]string{order[7], order[8]},
				DeathBowler: order[9],
			},
		},
	}
}

// squadTier picks the base skill band for a whole squad.
func squadTier() (min, span int) {
	n, _ := rand.Int(rand.Reader, big.NewInt(tierDivisor))
	switch n.Int64() {
	case caseEliteSquad:
		return eliteMin, eliteRange
	case caseSolidSquad, caseSolidSquad + 4:
		return solidMin, solidRange
	case caseWeakSquad:
		return weakMin, weakRange
	default:
		return avgMin, avgRange
	}
}

// skillBlock fills the named skills from a tier band with per-skill jitter.
func skillBlock(keys []string, min, span int) map[string]int {
	block := make(map[string]int, len(keys))
	for _, k := range keys {
		block[k] = randomInt(min, span)
	}
	return block
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
