package sportsdb

import (
	"strings"

	"github.com/strikesquad/squadapi/internal/models"
)

// NormalizePosition folds TheSportsDB's free-form position strings into the
// four formation-slot categories used by the squad builder.
func NormalizePosition(raw string) string {
	if raw == "" {
		return models.PositionUnknown
	}

	pos := strings.ToLower(raw)

	switch {
	case strings.Contains(pos, "goalkeeper"), strings.Contains(pos, "goalie"):
		return models.PositionGoalkeeper

	case strings.Contains(pos, "forward"),
		strings.Contains(pos, "striker"),
		strings.Contains(pos, "winger"),
		strings.Contains(pos, "wing"),
		strings.Contains(pos, "attacker"):
		return models.PositionForward

	case strings.Contains(pos, "midfield"),
		strings.Contains(pos, "playmaker"):
		return models.PositionMidfielder

	case strings.Contains(pos, "defender"),
		strings.Contains(pos, "defence"),
		strings.Contains(pos, "defense"),
		strings.Contains(pos, "back"):
		return models.PositionDefender

	default:
		return models.PositionUnknown
	}
}
