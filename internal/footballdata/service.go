package footballdata

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/strikesquad/squadapi/internal/cache"
	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/models"
	"github.com/strikesquad/squadapi/internal/ratelimit"
)

// ErrNoTeamsMapped is returned when none of the requested team names resolve
// to a provider team ID. Unlike upstream failures, this is a caller mistake
// and is surfaced as an error instead of an empty result.
var ErrNoTeamsMapped = errors.New("no teams found in football-data mapping")

// LiveNotifier receives matches that were classified as live, so the alerts
// layer can ping subscribers. Implementations must dedup on their side.
type LiveNotifier interface {
	NotifyLive(matches []models.Match)
}

// Service orchestrates rate-limited, cached fixture fetches against
// football-data.org.
type Service struct {
	client   *Client
	limiter  *ratelimit.Limiter
	cache    cache.Store
	log      *logger.Logger
	notifier LiveNotifier

	windowDays  int
	maxUpcoming int

	now func() time.Time
}

// NewService wires the orchestrator. notifier may be nil when alerts are
// disabled. windowDays is the fetch window (the API caps it at 10 days) and
// maxUpcoming caps the merged upcoming list for display.
func NewService(client *Client, limiter *ratelimit.Limiter, store cache.Store, log *logger.Logger, notifier LiveNotifier, windowDays, maxUpcoming int) *Service {
	return &Service{
		client:      client,
		limiter:     limiter,
		cache:       store,
		log:         log,
		notifier:    notifier,
		windowDays:  windowDays,
		maxUpcoming: maxUpcoming,
		now:         time.Now,
	}
}

// MatchesForTeams resolves team names, then serves the classified dashboard
// from cache or a single rate-limited bulk fetch. The resolved team IDs are
// returned alongside so the handler can echo them to the UI.
//
// Upstream failures degrade to an empty dashboard (logged, not cached, nil
// error); the only error outcomes are ErrNoTeamsMapped and context
// cancellation during the admission wait.
func (s *Service) MatchesForTeams(ctx context.Context, teamNames []string) (*models.Dashboard, []int64, error) {
	teamIDs := ResolveTeamIDs(teamNames, s.log)
	if len(teamIDs) == 0 {
		return nil, nil, ErrNoTeamsMapped
	}

	key := cacheKey(teamIDs)
	if data, ok := s.cache.Get(ctx, key); ok {
		var dashboard models.Dashboard
		if err := json.Unmarshal(data, &dashboard); err == nil {
			s.log.Debug("Serving football-data dashboard from cache (key=%s)", key)
			return &dashboard, teamIDs, nil
		}
		s.log.Warn("Discarding undecodable cache entry for key %s", key)
	}

	if err := s.limiter.Admit(ctx); err != nil {
		return nil, teamIDs, err
	}

	now := s.now()
	matches, err := s.client.FetchMatches(ctx, now, now.AddDate(0, 0, s.windowDays))
	if err != nil {
		s.log.Error("football-data fetch failed: %v", err)
		return &models.Dashboard{LiveGames: []models.Match{}, UpcomingFixtures: []models.Match{}}, teamIDs, nil
	}
	s.log.Debug("Fetched %d matches in %d-day window (%d requests remaining this window)",
		len(matches), s.windowDays, s.limiter.Remaining())

	dashboard := s.classify(matches, teamIDs)

	if data, err := json.Marshal(dashboard); err == nil {
		s.cache.Set(ctx, key, data)
	}

	if s.notifier != nil && len(dashboard.LiveGames) > 0 {
		s.notifier.NotifyLive(dashboard.LiveGames)
	}

	return dashboard, teamIDs, nil
}

// ClearCache drops every cached dashboard. Exposed for the debug trigger on
// the HTTP surface.
func (s *Service) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
	s.log.Info("football-data cache cleared")
}

// classify partitions matches involving the requested teams into live games
// and, for the upcoming side, each team's chronologically next fixture. Two
// teams meeting each other collapse to one record; the merged list is sorted
// by kickoff and capped for display.
func (s *Service) classify(matches []models.Match, teamIDs []int64) *models.Dashboard {
	idSet := make(map[int64]bool, len(teamIDs))
	for _, id := range teamIDs {
		idSet[id] = true
	}

	live := []models.Match{}
	var upcoming []models.Match
	for _, m := range matches {
		if !idSet[m.HomeTeamID] && !idSet[m.AwayTeamID] {
			continue
		}
		switch {
		case m.IsLive():
			live = append(live, m)
		case m.IsUpcoming():
			upcoming = append(upcoming, m)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].UTCDate.Before(upcoming[j].UTCDate)
	})

	// Next match per team, keyed by match ID so a fixture between two tracked
	// teams appears once.
	nextByMatchID := make(map[int64]models.Match)
	for _, teamID := range teamIDs {
		for _, m := range upcoming {
			if m.Involves(teamID) {
				nextByMatchID[m.ID] = m
				break
			}
		}
	}

	next := make([]models.Match, 0, len(nextByMatchID))
	for _, m := range nextByMatchID {
		next = append(next, m)
	}
	sort.Slice(next, func(i, j int) bool {
		return next[i].UTCDate.Before(next[j].UTCDate)
	})
	if len(next) > s.maxUpcoming {
		next = next[:s.maxUpcoming]
	}

	return &models.Dashboard{LiveGames: live, UpcomingFixtures: next}
}

func cacheKey(teamIDs []int64) string {
	ids := make([]string, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return cache.Key(ids)
}
