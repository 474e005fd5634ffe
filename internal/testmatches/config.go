package testmatches

import "time"

// Config holds configuration for the match test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumMatches int           // Number of matches to generate
	RecentN    int           // Number of recent results to fetch
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	WaitFor    time.Duration // Max time to wait for async processing
	OutputFile string        // Output file for fixtures
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Player mirrors the service's player schema.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BowlingStyle string `json:"bowling_style,omitempty"`

	Batting  map[string]int `json:"batting"`
	Bowling  map[string]int `json:"bowling"`
	Fielding map[string]int `json:"fielding"`

	Form    int `json:"form"`
	Fitness int `json:"fitness"`
	Morale  int `json:"morale"`
	Fatigue int `json:"fatigue"`
}

// BowlingPlan mirrors the service's bowling plan schema.
type BowlingPlan struct {
	Openers     [2]string         `json:"openers"`
	DeathBowler string            `json:"death_bowler"`
	Phases      map[string]map[string]string `json:"phases,omitempty"`
}

// Tactics mirrors the service's match tactics schema.
type Tactics struct {
	BattingOrder []string          `json:"batting_order"`
	Captain      string            `json:"captain"`
	Keeper       string            `json:"keeper"`
	Approaches   map[string]string `json:"approaches"`
	Bowling      BowlingPlan       `json:"bowling"`
}

// Side is one team in a fixture.
type Side struct {
	TeamID  string   `json:"team_id"`
	Squad   []Player `json:"squad"`
	Tactics Tactics  `json:"tactics"`
}

// Fixture is a match submission payload.
type Fixture struct {
	RequestID string         `json:"request_id"`
	Home      Side           `json:"home"`
	Away      Side           `json:"away"`
	Pitch     map[string]int `json:"pitch"`
	Seed      int64          `json:"seed"`
}

// InningsSummary is the subset of innings state the tool verifies.
type InningsSummary struct {
	BattingTeam string `json:"batting_team"`
	Runs        int    `json:"runs"`
	Wickets     int    `json:"wickets"`
	Overs       int    `json:"overs"`
	Balls       int    `json:"balls"`
}

// Margin is a win margin.
type Margin struct {
	Kind  string `json:"kind"`
	Value int    `json:"value"`
}

// MatchResult is the subset of the result payload the tool verifies.
type MatchResult struct {
	ID            string         `json:"id"`
	Winner        string         `json:"winner"`
	Margin        *Margin        `json:"margin"`
	FirstInnings  InningsSummary `json:"first_innings"`
	SecondInnings InningsSummary `json:"second_innings"`
	PlayerOfMatch string         `json:"player_of_match"`
	TossWinner    string         `json:"toss_winner"`
}

// AckResponse represents the response from fixture submission
type AckResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds test statistics
type Stats struct {
	MatchesGenerated  int
	MatchesSubmitted  int
	MatchesAccepted   int
	MatchesDuplicate  int
	MatchesFailed     int
	ResultsRetrieved  int
	RecentEntries     int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
