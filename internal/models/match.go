// Package models defines the core domain entities for the squadapi service.
// These models represent fixture data from the sports providers, wallet links
// for the leaderboard, and player metadata for squad enrichment.
//
// Terminology:
//   - Match: one fixture as reported by an upstream provider, normalized to a
//     provider-independent shape. Never mutated after it is received.
//   - Dashboard: the classified {live, upcoming} partition returned to the UI.
package models

import (
	"errors"
	"time"
)

// Match statuses as reported by the providers. IN_PLAY/PAUSED count as live,
// TIMED/SCHEDULED as upcoming; everything else (FINISHED, POSTPONED, ...) is
// dropped during classification.
const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
)

// Score holds a full-time (or current, for live matches) scoreline. Nil values
// mean the match has not produced a score yet.
type Score struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Match is a provider fixture normalized for the dashboard.
type Match struct {
	ID           int64     `json:"id"`
	UTCDate      time.Time `json:"utcDate"`
	Status       string    `json:"status"`
	HomeTeamID   int64     `json:"homeTeamId"`
	AwayTeamID   int64     `json:"awayTeamId"`
	HomeTeam     string    `json:"homeTeam"`
	AwayTeam     string    `json:"awayTeam"`
	HomeCrestURL string    `json:"homeCrest,omitempty"`
	AwayCrestURL string    `json:"awayCrest,omitempty"`
	Competition  string    `json:"competition"`
	Score        Score     `json:"score"`
}

// Validate checks that all match fields are valid
func (m *Match) Validate() error {
	if m.ID == 0 {
		return errors.New("match ID must not be zero")
	}
	if m.Status == "" {
		return errors.New("match status must not be empty")
	}
	if m.HomeTeamID == 0 || m.AwayTeamID == 0 {
		return errors.New("match team IDs must not be zero")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return errors.New("a team cannot play itself")
	}
	if m.UTCDate.IsZero() {
		return errors.New("match kickoff time must be set")
	}
	return nil
}

// IsLive reports whether the match is currently being played.
func (m *Match) IsLive() bool {
	return m.Status == StatusInPlay || m.Status == StatusPaused
}

// IsUpcoming reports whether the match is scheduled for the future.
func (m *Match) IsUpcoming() bool {
	return m.Status == StatusTimed || m.Status == StatusScheduled
}

// Involves reports whether teamID plays in this match.
func (m *Match) Involves(teamID int64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Dashboard is the classified result served to the squad-builder UI.
type Dashboard struct {
	LiveGames        []Match `json:"liveGames"`
	UpcomingFixtures []Match `json:"upcomingFixtures"`
}
