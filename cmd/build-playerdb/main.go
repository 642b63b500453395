// build-playerdb resolves a list of player names through TheSportsDB and
// stores the results in the local player database, so the API can answer
// player lookups without burning free-tier calls at request time.
//
// The input file holds one player name per line; blank lines and lines
// starting with # are skipped.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/strikesquad/squadapi/internal/config"
	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/sportsdb"
	"github.com/strikesquad/squadapi/internal/storage"
)

var (
	configPath  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	playersPath = flag.String("players", "data/players.txt", "Path to player name list")
	delay       = flag.Duration("delay", 2*time.Second, "Delay between lookups (free tier is throttled)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	lg := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	names, err := readNames(*playersPath)
	if err != nil {
		lg.Fatal("Failed to read player list: %v", err)
	}
	if len(names) == 0 {
		lg.Fatal("Player list %s is empty", *playersPath)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		lg.Fatal("Failed to open storage: %v", err)
	}
	defer store.Close()

	resolver := sportsdb.NewResolver(
		sportsdb.NewClient(cfg.SportsDB.APIBaseURL, cfg.SportsDB.Timeout), store, lg)

	ctx := context.Background()
	resolved := 0
	missing := 0

	lg.Info("Resolving %d players into %s", len(names), cfg.Storage.DBPath)

	for i, name := range names {
		info, err := resolver.Resolve(ctx, name)
		switch {
		case errors.Is(err, sportsdb.ErrPlayerNotFound):
			lg.Warn("No match for %q", name)
			missing++
		case err != nil:
			lg.Error("Lookup failed for %q: %v", name, err)
			missing++
		default:
			lg.Info("Resolved %q: %s, %s (%s)", name, info.Position, info.Team, info.Source)
			resolved++
		}

		if i < len(names)-1 {
			time.Sleep(*delay)
		}
	}

	total, err := store.CountPlayers(ctx)
	if err != nil {
		lg.Fatal("Failed to count players: %v", err)
	}
	lg.Info("Done: %d resolved, %d missing, %d players in database", resolved, missing, total)
}

func readNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}
