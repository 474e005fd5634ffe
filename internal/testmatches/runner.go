package testmatches

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gullysim/gully/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete match simulation test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting gully match test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("matches", config.NumMatches),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("recentN", config.RecentN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate fixtures
	fixtures, err := generateFixtures(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("fixture generation failed: %w", err)
	}

	// Step 3: Submit fixtures concurrently
	if err := submitFixtures(ctx, config, fixtures, stats); err != nil {
		return fmt.Errorf("fixture submission failed: %w", err)
	}

	// Step 4: Wait for the worker pool to drain the queue
	awaitProcessing(ctx, config, stats.MatchesAccepted)

	// Step 5: Retrieve results concurrently
	results, err := retrieveResults(ctx, config, fixtures, stats)
	if err != nil {
		return fmt.Errorf("result retrieval failed: %w", err)
	}

	// Step 6: Get recent results
	recent, err := getRecent(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("recent results retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(config, results, recent); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save fixtures to file
	if err := saveFixturesToFile(ctx, config, fixtures); err != nil {
		logger.Get().Warn(ctx, "failed to save fixtures to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveFixturesToFile saves the generated fixtures to a JSON file.
func saveFixturesToFile(ctx context.Context, config *Config, fixtures []Fixture) error {
	if len(fixtures) == 0 {
		return fmt.Errorf("no fixtures to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_fixtures_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write fixtures to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, fixture := range fixtures {
		jsonData, err := marshalJSON(fixture)
		if err != nil {
			return fmt.Errorf("failed to marshal fixture %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write fixture %d: %w", i, err)
		}

		// Add comma except for last fixture
		if i < len(fixtures)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "fixtures saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var acceptRate, matchesPerSecond float64

	if stats.MatchesSubmitted > 0 {
		acceptRate = float64(stats.MatchesAccepted) / float64(stats.MatchesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		matchesPerSecond = float64(stats.MatchesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("matchesGenerated", stats.MatchesGenerated),
		logger.Int("matchesSubmitted", stats.MatchesSubmitted),
		logger.Int("matchesAccepted", stats.MatchesAccepted),
		logger.Int("matchesDuplicate", stats.MatchesDuplicate),
		logger.Int("matchesFailed", stats.MatchesFailed),
		logger.Int("resultsRetrieved", stats.ResultsRetrieved),
		logger.Int("recentEntries", stats.RecentEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("matchesPerSecond", matchesPerSecond))
}
