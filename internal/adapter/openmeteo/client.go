// Package openmeteo implements the archive API client used to look up
// hourly weather for a single calendar date and location.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/manojclinton/cricket-analytics-etl/internal/domain"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
)

const defaultBaseURL = "https://archive-api.open-meteo.com/v1/archive"

// Retry policy: maxAttempts requests per fetch, waiting 2^(attempt-1) units
// of backoffUnit between them (1s, 2s with the defaults).
const (
	maxAttempts        = 3
	defaultBackoffUnit = time.Second
)

// Client queries the Open-Meteo archive endpoint. One FetchHourly call
// covers a single calendar date (start_date == end_date).
type Client struct {
	baseURL     string
	httpClient  *http.Client
	clock       clockwork.Clock
	backoffUnit time.Duration
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewClient creates an archive API client.
func NewClient(timeout time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: timeout},
		clock:       clock,
		backoffUnit: defaultBackoffUnit,
		logger:      logger,
		metrics:     metrics,
	}
}

// FetchHourly requests the named hourly variables for one date and location.
// Transport and HTTP failures are retried up to the attempt budget with
// exponential backoff; after the last failure the error is returned for the
// caller to treat as skip-this-record. Whether the response actually covers
// the hour the caller wants is the caller's check, not a retry condition.
func (c *Client) FetchHourly(ctx context.Context, lat, lon float64, date string, variables []string, timezone string) (domain.Observation, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		obs, err := c.doRequest(ctx, lat, lon, date, variables, timezone)
		if err == nil {
			return obs, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		wait := c.backoffUnit * (1 << (attempt - 1))
		c.logger.Warn("archive fetch failed, retrying",
			"attempt", attempt,
			"wait", wait,
			"date", date,
			"error", err,
		)
		if !c.sleep(ctx, wait) {
			return domain.Observation{}, ctx.Err()
		}
	}
	return domain.Observation{}, fmt.Errorf("archive fetch failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) doRequest(ctx context.Context, lat, lon float64, date string, variables []string, timezone string) (domain.Observation, error) {
	start := c.clock.Now()
	c.metrics.FetchAttempts.Inc()

	params := url.Values{
		"latitude":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":  {strconv.FormatFloat(lon, 'f', -1, 64)},
		"start_date": {date},
		"end_date":   {date},
		"hourly":     {strings.Join(variables, ",")},
		"timezone":   {timezone},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("archive request: %w", err)
	}
	defer resp.Body.Close()
	defer c.metrics.FetchDuration.Observe(c.clock.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Observation{}, fmt.Errorf("archive API error: status %d: %s", resp.StatusCode, body)
	}

	return decodeObservation(resp.Body)
}

// decodeObservation unpacks the parallel-array hourly payload. The "time"
// array becomes the axis; every other key becomes a variable series. A
// series is truncated at its first null, and one that fails to decode as
// numbers is dropped rather than failing the whole response; alignment
// checks catch the gap downstream.
func decodeObservation(r io.Reader) (domain.Observation, error) {
	var payload struct {
		Hourly map[string]json.RawMessage `json:"hourly"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return domain.Observation{}, fmt.Errorf("decode response: %w", err)
	}

	obs := domain.Observation{Values: make(map[string][]float64)}
	for key, raw := range payload.Hourly {
		if key == "time" {
			if err := json.Unmarshal(raw, &obs.Times); err != nil {
				return domain.Observation{}, fmt.Errorf("decode time axis: %w", err)
			}
			continue
		}
		var nullable []*float64
		if err := json.Unmarshal(raw, &nullable); err != nil {
			continue
		}
		series := make([]float64, 0, len(nullable))
		for _, v := range nullable {
			if v == nil {
				break
			}
			series = append(series, *v)
		}
		obs.Values[key] = series
	}
	return obs, nil
}

// sleep waits for d or until the context is cancelled. Returns false on
// cancellation.
func (c *Client) sleep(ctx context.Context, d time.Duration) bool {
	timer := c.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
