// Package sportsdb integrates TheSportsDB player endpoints for squad
// enrichment: position, current team, and player artwork.
//
// Resolution is layered: manually verified data wins over the locally built
// player database, which wins over a live API lookup. The live path writes
// back through to the database so repeated lookups stay off the network.
package sportsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client provides access to TheSportsDB JSON API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// apiPlayer is the wire format of one player record.
type apiPlayer struct {
	IDPlayer    string `json:"idPlayer"`
	StrPlayer   string `json:"strPlayer"`
	StrThumb    string `json:"strThumb"`
	StrCutout   string `json:"strCutout"`
	StrPosition string `json:"strPosition"`
	StrTeam     string `json:"strTeam"`
}

// NewClient creates a TheSportsDB client. The free tier key is part of the
// base URL path (e.g. ".../api/v1/json/3").
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchPlayer looks a player up by name and returns the first result, or nil
// when the search comes back empty.
func (c *Client) SearchPlayer(ctx context.Context, name string) (*apiPlayer, error) {
	endpoint := fmt.Sprintf("%s/searchplayers.php?p=%s", c.baseURL, url.QueryEscape(name))
	players, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}
	return &players[0], nil
}

// LookupPlayer fetches a player by TheSportsDB ID. Used for players whose
// names the search endpoint cannot handle (see overrides.go).
func (c *Client) LookupPlayer(ctx context.Context, id string) (*apiPlayer, error) {
	endpoint := fmt.Sprintf("%s/lookupplayer.php?id=%s", c.baseURL, url.QueryEscape(id))
	players, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}
	return &players[0], nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]apiPlayer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch player data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("thesportsdb returned status %d", resp.StatusCode)
	}

	// Both endpoints wrap results the same way; a null "player" array means
	// no results rather than an error.
	var response struct {
		Player []apiPlayer `json:"player"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode player data: %w", err)
	}
	return response.Player, nil
}

// imageURL picks the best artwork: the transparent cutout when available,
// otherwise the thumbnail.
func (p *apiPlayer) imageURL() string {
	if p.StrCutout != "" {
		return p.StrCutout
	}
	return p.StrThumb
}
