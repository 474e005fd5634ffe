package testmatches

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// awaitProcessing polls the stats endpoint until the store holds at least
// want results or the configured wait budget runs out.
func awaitProcessing(ctx context.Context, config *Config, want int) {
	log.Printf("waiting for %d results to land in the store...", want)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/stats"
	deadline := time.Now().Add(config.WaitFor)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(ResultPollInterval):
		}

		resp, err := client.Get(ctx, url)
		if err != nil {
			continue
		}
		body, err := readResponseBody(resp)
		if err != nil {
			continue
		}

		var stats map[string]interface{}
		if err := unmarshalJSON(body, &stats); err != nil {
			continue
		}
		if stored, ok := stats["storedMatches"].(float64); ok && int(stored) >= want {
			log.Printf("store reports %d results", int(stored))
			return
		}
	}

	log.Printf("wait budget of %s exhausted, proceeding with whatever is stored", config.WaitFor)
}

// retrieveResults retrieves results for all submitted fixtures concurrently.
func retrieveResults(ctx context.Context, config *Config, fixtures []Fixture, stats *Stats) ([]MatchResult, error) {
	log.Printf("retrieving %d results with %d workers...", len(fixtures), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Results storage, indexed to match the fixture slice
	results := make([]MatchResult, len(fixtures))
	var (
		retrieved int64
		failed    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
					requestID := fixtures[index].RequestID
					result, err := retrieveSingleResult(ctx, client, config.BaseURL, requestID)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to get result for %s: %v", requestID, err)
						}
					} else {
						results[index] = result
						atomic.AddInt64(&retrieved, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						log.Printf("result progress: %d/%d (success: %d, failed: %d)",
							total, len(fixtures), atomic.LoadInt64(&retrieved), atomic.LoadInt64(&failed))
					}
				}
			}
		}()
	}

	// Send fixture indices to workers
	go func() {
		defer close(indexChan)
		for i := range fixtures {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Filter out empty entries (failed retrievals)
	validResults := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if r.ID != "" {
			validResults = append(validResults, r)
		}
	}

	stats.ResultsRetrieved = len(validResults)

	log.Printf(`result retrieval completed:
   Retrieved: %d
   Failed: %d
`, len(validResults), int(atomic.LoadInt64(&failed)))

	return validResults, nil
}

// retrieveSingleResult retrieves the result stored under one request ID.
func retrieveSingleResult(ctx context.Context, client *HTTPClient, baseURL, requestID string) (MatchResult, error) {
	url := fmt.Sprintf("%s/matches/%s", baseURL, requestID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return MatchResult{}, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return MatchResult{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return MatchResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	var result MatchResult
	if err := unmarshalJSON(body, &result); err != nil {
		return MatchResult{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}

// getRecent retrieves the N most recent results from the service.
func getRecent(ctx context.Context, config *Config, stats *Stats) ([]MatchResult, error) {
	log.Printf("getting %d most recent results...", config.RecentN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/matches?limit=%d", config.BaseURL, config.RecentN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var recent []MatchResult
	if err := unmarshalJSON(body, &recent); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.RecentEntries = len(recent)
	log.Printf("retrieved %d recent results", len(recent))

	return recent, nil
}
