// Package storage provides SQLite-backed persistence for wallet links, the
// prebuilt player metadata database, and saved squads.
//
// The database is a single local file (modernc.org/sqlite, no cgo), created
// and migrated on open. All methods are safe for concurrent use; database/sql
// serializes access to the underlying connection pool.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/strikesquad/squadapi/internal/models"
)

// Storage wraps the SQLite database
type Storage struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS wallet_links (
	twitter_id         TEXT PRIMARY KEY,
	twitter_username   TEXT NOT NULL DEFAULT '',
	wallet_address     TEXT NOT NULL,
	topstrike_username TEXT NOT NULL DEFAULT '',
	linked_at          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS players (
	name        TEXT PRIMARY KEY COLLATE NOCASE,
	position    TEXT NOT NULL DEFAULT '',
	team        TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL DEFAULT '',
	sportsdb_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS squads (
	twitter_id TEXT PRIMARY KEY,
	formation  TEXT NOT NULL,
	slots_json TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// Open opens (creating if necessary) the database at dbPath. If dbPath is
// empty, an OS-appropriate tmp location is used.
func Open(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "squadapi", "squadapi.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// UpsertWalletLink inserts or replaces the wallet link for a Twitter identity.
func (s *Storage) UpsertWalletLink(ctx context.Context, link *models.WalletLink) error {
	if err := link.Validate(); err != nil {
		return fmt.Errorf("invalid wallet link: %w", err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wallet_links (twitter_id, twitter_username, wallet_address, topstrike_username, linked_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(twitter_id) DO UPDATE SET
			twitter_username = excluded.twitter_username,
			wallet_address = excluded.wallet_address,
			topstrike_username = excluded.topstrike_username,
			linked_at = excluded.linked_at`,
		link.TwitterID, link.TwitterUsername, link.WalletAddress, link.TopStrikeUsername,
		link.LinkedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save wallet link: %w", err)
	}
	return nil
}

// GetWalletLink returns the link for a Twitter identity, if one exists.
func (s *Storage) GetWalletLink(ctx context.Context, twitterID string) (*models.WalletLink, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT twitter_id, twitter_username, wallet_address, topstrike_username, linked_at
		FROM wallet_links WHERE twitter_id = ?`, twitterID)

	link, err := scanWalletLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get wallet link: %w", err)
	}
	return link, true, nil
}

// DeleteWalletLink removes the link for a Twitter identity. Deleting a
// nonexistent link is not an error.
func (s *Storage) DeleteWalletLink(ctx context.Context, twitterID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM wallet_links WHERE twitter_id = ?`, twitterID); err != nil {
		return fmt.Errorf("failed to delete wallet link: %w", err)
	}
	return nil
}

// ListWalletLinks returns all links, most recently linked first. This is the
// leaderboard.
func (s *Storage) ListWalletLinks(ctx context.Context) ([]models.WalletLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT twitter_id, twitter_username, wallet_address, topstrike_username, linked_at
		FROM wallet_links ORDER BY linked_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet links: %w", err)
	}
	defer rows.Close()

	links := []models.WalletLink{}
	for rows.Next() {
		link, err := scanWalletLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet link: %w", err)
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWalletLink(row rowScanner) (*models.WalletLink, error) {
	var link models.WalletLink
	var linkedAt string
	if err := row.Scan(&link.TwitterID, &link.TwitterUsername, &link.WalletAddress, &link.TopStrikeUsername, &linkedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, linkedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed linked_at %q: %w", linkedAt, err)
	}
	link.LinkedAt = t
	return &link, nil
}

// GetPlayerByName returns player metadata from the prebuilt database.
// Lookups are case-insensitive.
func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*models.PlayerInfo, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, position, team, image_url FROM players WHERE name = ?`, name)

	var info models.PlayerInfo
	err := row.Scan(&info.Name, &info.Position, &info.Team, &info.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get player: %w", err)
	}
	return &info, true, nil
}

// UpsertPlayer stores player metadata, overwriting any existing row.
func (s *Storage) UpsertPlayer(ctx context.Context, info *models.PlayerInfo, sportsDBID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (name, position, team, image_url, sportsdb_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			position = excluded.position,
			team = excluded.team,
			image_url = excluded.image_url,
			sportsdb_id = excluded.sportsdb_id`,
		info.Name, info.Position, info.Team, info.ImageURL, sportsDBID)
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

// CountPlayers returns the number of rows in the player database.
func (s *Storage) CountPlayers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

// SaveSquad stores a user's squad arrangement as an opaque JSON document,
// replacing any previous one.
func (s *Storage) SaveSquad(ctx context.Context, twitterID, formation string, slotsJSON []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO squads (twitter_id, formation, slots_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(twitter_id) DO UPDATE SET
			formation = excluded.formation,
			slots_json = excluded.slots_json,
			updated_at = excluded.updated_at`,
		twitterID, formation, string(slotsJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save squad: %w", err)
	}
	return nil
}

// GetSquad returns a user's saved squad, if any.
func (s *Storage) GetSquad(ctx context.Context, twitterID string) (formation string, slotsJSON []byte, found bool, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT formation, slots_json FROM squads WHERE twitter_id = ?`, twitterID)

	var slots string
	scanErr := row.Scan(&formation, &slots)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return "", nil, false, nil
	}
	if scanErr != nil {
		return "", nil, false, fmt.Errorf("failed to get squad: %w", scanErr)
	}
	return formation, []byte(slots), true, nil
}
