// Package footballdata integrates the football-data.org v4 API, the primary
// fixtures provider for the squad dashboard. One bulk matches call covers a
// rolling date window; the orchestrator filters the response down to the
// requested teams and classifies it into live and upcoming partitions.
//
// The free tier allows 10 requests per minute, so every call goes through the
// shared sliding-window limiter before it is issued.
package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/strikesquad/squadapi/internal/models"
)

// Client provides access to the football-data.org v4 API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// apiMatch is the wire format of one match in a /v4/matches response.
type apiMatch struct {
	ID      int64  `json:"id"`
	UTCDate string `json:"utcDate"`
	Status  string `json:"status"`
	HomeTeam struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Crest string `json:"crest"`
	} `json:"homeTeam"`
	AwayTeam struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Crest string `json:"crest"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
	Competition struct {
		Name string `json:"name"`
	} `json:"competition"`
}

// NewClient creates a football-data.org client. An empty token is allowed: the
// request is then sent unauthenticated and the upstream decides what to serve.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMatches retrieves all matches between from and to (inclusive dates).
// The API caps the window at 10 days; the caller picks the window size.
func (c *Client) FetchMatches(ctx context.Context, from, to time.Time) ([]models.Match, error) {
	url := fmt.Sprintf("%s/matches?dateFrom=%s&dateTo=%s",
		c.baseURL, from.Format("2006-01-02"), to.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("football-data.org returned status %d", resp.StatusCode)
	}

	var response struct {
		Matches []apiMatch `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	matches := make([]models.Match, 0, len(response.Matches))
	for _, am := range response.Matches {
		kickoff, err := time.Parse(time.RFC3339, am.UTCDate)
		if err != nil {
			// A malformed date on one match should not sink the whole window.
			continue
		}
		matches = append(matches, models.Match{
			ID:           am.ID,
			UTCDate:      kickoff,
			Status:       am.Status,
			HomeTeamID:   am.HomeTeam.ID,
			AwayTeamID:   am.AwayTeam.ID,
			HomeTeam:     am.HomeTeam.Name,
			AwayTeam:     am.AwayTeam.Name,
			HomeCrestURL: am.HomeTeam.Crest,
			AwayCrestURL: am.AwayTeam.Crest,
			Competition:  am.Competition.Name,
			Score: models.Score{
				Home: am.Score.FullTime.Home,
				Away: am.Score.FullTime.Away,
			},
		})
	}

	return matches, nil
}
