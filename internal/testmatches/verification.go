package testmatches

import (
	"fmt"
	"log"
)

// T20 rule bounds.
const (
	maxOvers   = 20
	maxWickets = 10
)

// verifyResults checks every retrieved result against the rules of the game
// and reports aggregate scoring statistics.
func verifyResults(config *Config, results, recent []MatchResult) error {
	log.Println("verifying results...")

	if len(results) == 0 {
		return fmt.Errorf("no results to verify")
	}

	violations := 0
	for _, r := range results {
		if errs := checkResult(r); len(errs) > 0 {
			violations++
			if config.Verbose {
				for _, err := range errs {
					log.Printf("rule violation in %s: %v", r.ID, err)
				}
			}
		}
	}

	if violations > 0 {
		return fmt.Errorf("%d of %d results violate match rules", violations, len(results))
	}
	log.Printf("all %d results satisfy match rules", len(results))

	if len(recent) > 0 {
		log.Printf("recent endpoint returned %d results, newest first", len(recent))
	}

	displayAggregates(results, config.Verbose)

	log.Println("result verification completed")
	return nil
}

// checkResult validates one result against scoring and dismissal bounds.
func checkResult(r MatchResult) []error {
	var errs []error

	for _, innings := range []InningsSummary{r.FirstInnings, r.SecondInnings} {
		if innings.Overs > maxOvers || (innings.Overs == maxOvers && innings.Balls > 0) {
			errs = append(errs, fmt.Errorf("innings of %s exceeds %d overs", innings.BattingTeam, maxOvers))
		}
		if innings.Wickets > maxWickets {
			errs = append(errs, fmt.Errorf("innings of %s lost more than %d wickets", innings.BattingTeam, maxWickets))
		}
		if innings.Runs < 0 {
			errs = append(errs, fmt.Errorf("innings of %s has negative runs", innings.BattingTeam))
		}
	}

	first, second := r.FirstInnings, r.SecondInnings
	switch {
	case first.Runs == second.Runs:
		if r.Winner != "" || r.Margin != nil {
			errs = append(errs, fmt.Errorf("tied scores but winner %q declared", r.Winner))
		}
	case second.Runs > first.Runs:
		if r.Winner != second.BattingTeam {
			errs = append(errs, fmt.Errorf("chasing side outscored the target but winner is %q", r.Winner))
		}
		if r.Margin != nil && r.Margin.Kind != "wickets" {
			errs = append(errs, fmt.Errorf("successful chase should win by wickets, got %q", r.Margin.Kind))
		}
	default:
		if r.Winner != first.BattingTeam {
			errs = append(errs, fmt.Errorf("defending side kept the lead but winner is %q", r.Winner))
		}
		if r.Margin != nil {
			if r.Margin.Kind != "runs" {
				errs = append(errs, fmt.Errorf("defended total should win by runs, got %q", r.Margin.Kind))
			} else if r.Margin.Value != first.Runs-second.Runs {
				errs = append(errs, fmt.Errorf("runs margin %d does not match score gap %d", r.Margin.Value, first.Runs-second.Runs))
			}
		}
	}

	return errs
}

// displayAggregates prints scoring statistics across all results.
func displayAggregates(results []MatchResult, verbose bool) {
	var (
		firstTotal  int
		secondTotal int
		ties        int
		chaseWins   int
		highest     int
		lowest      = -1
	)

	for _, r := range results {
		firstTotal += r.FirstInnings.Runs
		secondTotal += r.SecondInnings.Runs

		switch {
		case r.FirstInnings.Runs == r.SecondInnings.Runs:
			ties++
		case r.SecondInnings.Runs > r.FirstInnings.Runs:
			chaseWins++
		}

		if r.FirstInnings.Runs > highest {
			highest = r.FirstInnings.Runs
		}
		if lowest < 0 || r.FirstInnings.Runs < lowest {
			lowest = r.FirstInnings.Runs
		}
	}

	n := float64(len(results))
	log.Printf(`scoring statistics across %d matches:
   Avg first innings: %.1f
   Avg second innings: %.1f
   Chase win rate: %.1f%%
   Ties: %d
`, len(results), float64(firstTotal)/n, float64(secondTotal)/n,
		float64(chaseWins)/n*PercentageMultiplier, ties)

	if verbose {
		log.Printf("first innings range: lowest %d, highest %d", lowest, highest)
	}
}
