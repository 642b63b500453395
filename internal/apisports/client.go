// Package apisports integrates the API-Football v3 API, the secondary fixtures
// provider. Unlike football-data.org there is no bulk date-window endpoint
// worth using here: live matches come from one shared call and upcoming
// fixtures require one call per team, so the orchestrator shapes requests to
// fit the 10-per-minute quota (1 live call + at most 9 team calls).
package apisports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/strikesquad/squadapi/internal/models"
)

// ErrMissingAPIKey is returned when a fetch is attempted without a configured
// key. API-Football rejects anonymous requests, so there is no point sending
// one. Surfaced at call time, not startup, per the configuration policy.
var ErrMissingAPIKey = errors.New("API-Football key not configured")

// Client provides access to the API-Football v3 API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// apiFixture is the wire format of one element of the "response" array.
type apiFixture struct {
	Fixture struct {
		ID        int64  `json:"id"`
		Date      string `json:"date"`
		Timestamp int64  `json:"timestamp"`
		Status    struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		Name string `json:"name"`
	} `json:"league"`
	Teams struct {
		Home struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Logo string `json:"logo"`
		} `json:"home"`
		Away struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Logo string `json:"logo"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

// NewClient creates an API-Football client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchLive retrieves all matches currently in play, league-wide. The caller
// filters down to tracked teams.
func (c *Client) FetchLive(ctx context.Context) ([]models.Match, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/fixtures?live=all", c.baseURL))
}

// FetchTeamFixtures retrieves fixtures for one team within a date range.
// season is required by the API even when a range is given.
func (c *Client) FetchTeamFixtures(ctx context.Context, teamID int64, season int, from, to time.Time) ([]models.Match, error) {
	url := fmt.Sprintf("%s/fixtures?team=%d&season=%d&from=%s&to=%s",
		c.baseURL, teamID, season, from.Format("2006-01-02"), to.Format("2006-01-02"))
	return c.fetch(ctx, url)
}

func (c *Client) fetch(ctx context.Context, url string) ([]models.Match, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apisports-key", c.apiKey)
	// Same key works for RapidAPI-proxied accounts.
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API-Football returned status %d", resp.StatusCode)
	}

	var response struct {
		Response []apiFixture `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}

	matches := make([]models.Match, 0, len(response.Response))
	for _, af := range response.Response {
		kickoff, err := time.Parse(time.RFC3339, af.Fixture.Date)
		if err != nil {
			continue
		}
		matches = append(matches, models.Match{
			ID:           af.Fixture.ID,
			UTCDate:      kickoff,
			Status:       normalizeStatus(af.Fixture.Status.Short),
			HomeTeamID:   af.Teams.Home.ID,
			AwayTeamID:   af.Teams.Away.ID,
			HomeTeam:     af.Teams.Home.Name,
			AwayTeam:     af.Teams.Away.Name,
			HomeCrestURL: af.Teams.Home.Logo,
			AwayCrestURL: af.Teams.Away.Logo,
			Competition:  af.League.Name,
			Score: models.Score{
				Home: af.Goals.Home,
				Away: af.Goals.Away,
			},
		})
	}

	return matches, nil
}

// normalizeStatus maps API-Football short status codes onto the shared match
// statuses used by the dashboard classification.
func normalizeStatus(short string) string {
	switch short {
	case "NS", "TBD":
		return models.StatusTimed
	case "1H", "2H", "ET", "P", "LIVE":
		return models.StatusInPlay
	case "HT", "BT", "INT", "SUSP":
		return models.StatusPaused
	case "FT", "AET", "PEN":
		return models.StatusFinished
	default:
		return short
	}
}
