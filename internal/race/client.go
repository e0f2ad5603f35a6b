// Package race fetches Formula 1 schedules and results from an
// Ergast-compatible API and formats them for a small text display.
package race

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL serves the Ergast API after ergast.com was retired.
const DefaultBaseURL = "https://api.jolpi.ca/ergast/f1"

var (
	// ErrNoNextRace is returned when the schedule has no race left.
	ErrNoNextRace = errors.New("no next race")
	// ErrNoResults is returned when the API returned no classified race.
	ErrNoResults = errors.New("no results")
)

// Client queries an Ergast-compatible API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL selects
// DefaultBaseURL; a nil httpClient selects one with the given timeout.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Schedule returns every race of the current season.
func (c *Client) Schedule(ctx context.Context) ([]Race, error) {
	return c.races(ctx, "/current.json")
}

// LastQualifying returns the most recent race with its qualifying results.
func (c *Client) LastQualifying(ctx context.Context) (*Race, error) {
	return c.last(ctx, "/current/last/qualifying.json")
}

// LastResults returns the most recent race with its results.
func (c *Client) LastResults(ctx context.Context) (*Race, error) {
	return c.last(ctx, "/current/last/results.json")
}

func (c *Client) last(ctx context.Context, path string) (*Race, error) {
	races, err := c.races(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(races) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoResults)
	}
	return &races[0], nil
}

func (c *Client) races(ctx context.Context, path string) ([]Race, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return r.MRData.RaceTable.Races, nil
}

// Start returns the race start in UTC. Without a start time the race is
// taken to last until the end of its date.
func (r *Race) Start() (time.Time, error) {
	if r.Time == "" {
		d, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", r.Date, err)
		}
		return d.Add(24*time.Hour - time.Second), nil
	}
	t, err := time.Parse(time.RFC3339, r.Date+"T"+r.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start %q %q: %w", r.Date, r.Time, err)
	}
	return t.UTC(), nil
}

// NextRace returns the first race in schedule that has not started at now.
func NextRace(schedule []Race, now time.Time) (*Race, error) {
	for i := range schedule {
		start, err := schedule[i].Start()
		if err != nil {
			return nil, err
		}
		if !start.Before(now) {
			return &schedule[i], nil
		}
	}
	return nil, ErrNoNextRace
}
