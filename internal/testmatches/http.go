package testmatches

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitFixtures submits fixtures concurrently using worker pools
func submitFixtures(ctx context.Context, config *Config, fixtures []Fixture, stats *Stats) error {
	log.Printf("submitting %d fixtures with %d workers...", len(fixtures), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/simulations"

	// Counters for statistics
	var (
		accepted  int64
		duplicate int64
		failed    int64
		submitted int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	fixtureChan := make(chan Fixture, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for fixture := range fixtureChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleFixture(ctx, client, url, fixture)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "accepted":
						atomic.AddInt64(&accepted, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&submitted)
						acc := atomic.LoadInt64(&accepted)
						dup := atomic.LoadInt64(&duplicate)
						fail := atomic.LoadInt64(&failed)

						log.Printf("progress: %d/%d submitted (accepted: %d, duplicate: %d, failed: %d)",
							total, len(fixtures), acc, dup, fail)
					}
				}
			}
		}()
	}

	// Send fixtures to workers
	go func() {
		defer close(fixtureChan)
		for _, fixture := range fixtures {
			select {
			case <-ctx.Done():
				return
			case fixtureChan <- fixture:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.MatchesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.MatchesAccepted = int(atomic.LoadInt64(&accepted))
	stats.MatchesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.MatchesFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`fixture submission completed:
   Accepted: %d
   Duplicate: %d
   Failed: %d
`, stats.MatchesAccepted, stats.MatchesDuplicate, stats.MatchesFailed)

	return nil
}

// submitSingleFixture submits a single fixture and returns the result
func submitSingleFixture(ctx context.Context, client *HTTPClient, url string, fixture Fixture) string {
	resp, err := client.Post(ctx, url, fixture)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		var ack AckResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Status == "accepted" {
			return "accepted"
		}
		return "accepted" // Assume accepted for 202 even if parsing fails
	case StatusOK:
		var ack AckResponse
		if err := unmarshalJSON(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate" // Assume duplicate for 200 even if parsing fails
	default:
		return "failed"
	}
}
