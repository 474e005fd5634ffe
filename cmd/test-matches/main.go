package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/gullysim/gully/internal/testmatches"
)

// Default configuration constants.
const (
	defaultNumMatches = 1000
	defaultRecentN    = 50
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultWaitFor    = 2 * time.Minute
	defaultTestBudget = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numMatches = flag.Int("matches", defaultNumMatches, "Number of fixtures to generate and submit")
		recentN    = flag.Int("recent", defaultRecentN, "Number of recent results to fetch")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		waitFor    = flag.Duration("wait", defaultWaitFor, "Max time to wait for async processing")
		outputFile = flag.String("output", "", "Output file for generated fixtures (default: generated_fixtures_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testmatches.ShowHelp()
		return
	}

	// Setup logging
	if err := testmatches.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestBudget)
	defer cancel()

	// Create test configuration
	config := &testmatches.Config{
		BaseURL:    *baseURL,
		NumMatches: *numMatches,
		RecentN:    *recentN,
		Workers:    *workers,
		Timeout:    *timeout,
		WaitFor:    *waitFor,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the test
	if err := testmatches.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
