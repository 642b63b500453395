package sportsdb

import (
	"context"
	"errors"

	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/models"
)

// ErrPlayerNotFound is returned when no layer of the resolution ladder can
// produce metadata for the requested player.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerStore is the slice of the storage layer the resolver needs: the
// locally built player database plus write-through for live lookups.
type PlayerStore interface {
	GetPlayerByName(ctx context.Context, name string) (*models.PlayerInfo, bool, error)
	UpsertPlayer(ctx context.Context, info *models.PlayerInfo, sportsDBID string) error
}

// Resolver resolves player metadata through the verified → database →
// live-API ladder.
type Resolver struct {
	client *Client
	store  PlayerStore
	log    *logger.Logger
}

// NewResolver wires the resolution ladder. store may be nil (e.g. ephemeral
// deployments); the database layer is then skipped.
func NewResolver(client *Client, store PlayerStore, log *logger.Logger) *Resolver {
	return &Resolver{
		client: client,
		store:  store,
		log:    log,
	}
}

// Resolve returns metadata for one player. The winning layer is recorded in
// the result's Source field so the UI can flag unverified data.
func (r *Resolver) Resolve(ctx context.Context, name string) (*models.PlayerInfo, error) {
	// Layer 1: manually verified data.
	if v, ok := verifiedPlayers[name]; ok {
		return &models.PlayerInfo{
			Name:     name,
			Position: NormalizePosition(v.Position),
			Team:     v.Team,
			Source:   models.SourceVerified,
		}, nil
	}

	// Layer 2: the prebuilt player database.
	if r.store != nil {
		info, found, err := r.store.GetPlayerByName(ctx, name)
		if err != nil {
			r.log.Warn("Player database lookup failed for %q: %v", name, err)
		} else if found {
			info.Source = models.SourceDatabase
			return info, nil
		}
	}

	// Layer 3: live API, via ID override when the search cannot find the name.
	var player *apiPlayer
	var err error
	if id, ok := playerIDOverrides[name]; ok {
		player, err = r.client.LookupPlayer(ctx, id)
	} else {
		player, err = r.client.SearchPlayer(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	info := &models.PlayerInfo{
		Name:     name,
		Position: NormalizePosition(player.StrPosition),
		Team:     player.StrTeam,
		ImageURL: player.imageURL(),
		Source:   models.SourceLiveAPI,
	}

	if r.store != nil {
		if err := r.store.UpsertPlayer(ctx, info, player.IDPlayer); err != nil {
			r.log.Warn("Failed to cache player %q: %v", name, err)
		}
	}

	return info, nil
}
