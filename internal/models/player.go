package models

import "errors"

// Player metadata sources, in descending precedence. The resolution ladder in
// the sportsdb package tries them in this order and records which one won.
const (
	SourceVerified = "verified"
	SourceDatabase = "database"
	SourceLiveAPI  = "live-api"
)

// Normalized positions for formation slots.
const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DEF"
	PositionMidfielder = "MID"
	PositionForward    = "FWD"
	PositionUnknown    = "Unknown"
)

// PlayerInfo is the enrichment result for one squad player. Empty fields mean
// the source had no data, not an error.
type PlayerInfo struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Team     string `json:"team,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Source   string `json:"source"`
}

// Validate checks that all player info fields are valid
func (p *PlayerInfo) Validate() error {
	if p.Name == "" {
		return errors.New("player name must not be empty")
	}
	switch p.Source {
	case SourceVerified, SourceDatabase, SourceLiveAPI:
	default:
		return errors.New("player source must be verified, database, or live-api")
	}
	return nil
}
