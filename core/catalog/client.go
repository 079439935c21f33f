package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"uloggd/core/metrics"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const breakerName = "igdb"

// maxErrorBody caps how much of a failed response is kept for the error message.
const maxErrorBody = 512

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Resource   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s returned status %d: %s", e.Resource, e.StatusCode, e.Body)
}

// Client posts Apicalypse queries to the IGDB API.
// Requests are rate limited and guarded by a circuit breaker.
type Client struct {
	http     *http.Client
	baseURL  string
	clientID string
	tokens   TokenProvider
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker[[]json.RawMessage]
	logger   *zap.Logger
}

// NewClient creates a catalog client. tokens supplies the bearer token for every request.
func NewClient(cfg Config, tokens TokenProvider, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[[]json.RawMessage](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Client errors mean a bad query, not an unhealthy upstream.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var se *StatusError
			if errors.As(err, &se) {
				return se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests
			}
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Catalog circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &Client{
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		clientID: cfg.ClientID,
		tokens:   tokens,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		breaker:  breaker,
		logger:   logger,
	}
}

// Query posts body to the resource endpoint and returns the raw records.
func (c *Client) Query(ctx context.Context, resource, body string) ([]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", resource, err)
	}

	start := time.Now()
	records, err := c.breaker.Execute(func() ([]json.RawMessage, error) {
		return c.do(ctx, resource, body)
	})
	metrics.UpstreamDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.UpstreamRequests.WithLabelValues(resource, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.UpstreamRequests.WithLabelValues(resource, "rejected").Inc()
		return nil, fmt.Errorf("catalog %s: %w", resource, err)
	default:
		metrics.UpstreamRequests.WithLabelValues(resource, "failure").Inc()
		return nil, err
	}
	return records, nil
}

// Games fetches the game records for slugs in one request.
func (c *Client) Games(ctx context.Context, slugs []string) ([]json.RawMessage, error) {
	return c.Query(ctx, "games", BuildGamesQuery(slugs))
}

func (c *Client) do(ctx context.Context, resource, body string) ([]json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+resource, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog %s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s response: %w", resource, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{Resource: resource, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s response: %w", resource, err)
	}
	return records, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
