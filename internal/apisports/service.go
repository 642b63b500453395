package apisports

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/strikesquad/squadapi/internal/cache"
	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/models"
	"github.com/strikesquad/squadapi/internal/ratelimit"
)

// ErrNoTeamsMapped is returned when none of the requested team names resolve
// to an API-Football team ID.
var ErrNoTeamsMapped = errors.New("no teams found in API-Football mapping")

// Service orchestrates the fan-out fetch against API-Football: one shared
// live call plus one rate-limited call per team, capped so a full squad still
// fits inside the 10-requests-per-minute quota.
type Service struct {
	client  *Client
	limiter *ratelimit.Limiter
	cache   cache.Store
	log     *logger.Logger

	teamFetchCap int // max per-team calls per dashboard fetch (9 + 1 live = quota)
	perTeamLimit int // fixtures kept per team before merging
	maxUpcoming  int // merged display cap

	now func() time.Time
}

// NewService wires the orchestrator.
func NewService(client *Client, limiter *ratelimit.Limiter, store cache.Store, log *logger.Logger, teamFetchCap, perTeamLimit, maxUpcoming int) *Service {
	return &Service{
		client:       client,
		limiter:      limiter,
		cache:        store,
		log:          log,
		teamFetchCap: teamFetchCap,
		perTeamLimit: perTeamLimit,
		maxUpcoming:  maxUpcoming,
		now:          time.Now,
	}
}

// DashboardForTeams resolves team names and serves the classified dashboard
// from cache or a shaped set of rate-limited upstream calls. A failed per-team
// branch contributes nothing without aborting its siblings; a total upstream
// outage degrades to an empty dashboard.
func (s *Service) DashboardForTeams(ctx context.Context, teamNames []string) (*models.Dashboard, []int64, error) {
	teamIDs := ResolveTeamIDs(teamNames, s.log)
	if len(teamIDs) == 0 {
		return nil, nil, ErrNoTeamsMapped
	}

	key := cacheKey(teamIDs)
	if data, ok := s.cache.Get(ctx, key); ok {
		var dashboard models.Dashboard
		if err := json.Unmarshal(data, &dashboard); err == nil {
			s.log.Debug("Serving API-Football dashboard from cache (key=%s)", key)
			return &dashboard, teamIDs, nil
		}
		s.log.Warn("Discarding undecodable cache entry for key %s", key)
	}

	idSet := make(map[int64]bool, len(teamIDs))
	for _, id := range teamIDs {
		idSet[id] = true
	}

	// 1 request: all live matches, filtered client-side.
	live := []models.Match{}
	if err := s.limiter.Admit(ctx); err != nil {
		return nil, teamIDs, err
	}
	liveMatches, err := s.client.FetchLive(ctx)
	if err != nil {
		s.log.Error("API-Football live fetch failed: %v", err)
	} else {
		for _, m := range liveMatches {
			if idSet[m.HomeTeamID] || idSet[m.AwayTeamID] {
				live = append(live, m)
			}
		}
	}

	// Up to teamFetchCap requests: per-team upcoming fixtures.
	teamsToFetch := teamIDs
	if len(teamsToFetch) > s.teamFetchCap {
		s.log.Warn("Limiting upcoming fetch to first %d of %d teams (quota protection)",
			s.teamFetchCap, len(teamIDs))
		teamsToFetch = teamsToFetch[:s.teamFetchCap]
	}

	season := currentSeason(s.now())
	from := s.now()
	to := from.AddDate(0, 0, 60)

	perTeam := make([][]models.Match, len(teamsToFetch))
	var wg sync.WaitGroup
	for i, teamID := range teamsToFetch {
		wg.Add(1)
		go func(i int, teamID int64) {
			defer wg.Done()
			if err := s.limiter.Admit(ctx); err != nil {
				s.log.Warn("Admission aborted for team %d: %v", teamID, err)
				return
			}
			fixtures, err := s.client.FetchTeamFixtures(ctx, teamID, season, from, to)
			if err != nil {
				// Isolated: this branch contributes nothing, siblings continue.
				s.log.Error("Fixture fetch failed for team %d: %v", teamID, err)
				return
			}
			sort.Slice(fixtures, func(a, b int) bool {
				return fixtures[a].UTCDate.Before(fixtures[b].UTCDate)
			})
			if len(fixtures) > s.perTeamLimit {
				fixtures = fixtures[:s.perTeamLimit]
			}
			perTeam[i] = fixtures
		}(i, teamID)
	}
	wg.Wait()

	dashboard := s.merge(live, perTeam, teamIDs)

	if data, err := json.Marshal(dashboard); err == nil {
		s.cache.Set(ctx, key, data)
	}

	s.log.Debug("API-Football dashboard built: %d live, %d upcoming (%d requests remaining this window)",
		len(dashboard.LiveGames), len(dashboard.UpcomingFixtures), s.limiter.Remaining())

	return dashboard, teamIDs, nil
}

// ClearCache drops every cached dashboard.
func (s *Service) ClearCache(ctx context.Context) {
	s.cache.Clear(ctx)
	s.log.Info("API-Football cache cleared")
}

// merge flattens the per-team fixture lists, keeps each team's next upcoming
// match (a shared fixture collapses to one record), sorts by kickoff, and caps
// the result for display.
func (s *Service) merge(live []models.Match, perTeam [][]models.Match, teamIDs []int64) *models.Dashboard {
	var pool []models.Match
	for _, fixtures := range perTeam {
		for _, m := range fixtures {
			if m.IsUpcoming() {
				pool = append(pool, m)
			}
		}
	}
	sort.Slice(pool, func(i, j int) bool {
		return pool[i].UTCDate.Before(pool[j].UTCDate)
	})

	nextByMatchID := make(map[int64]models.Match)
	for _, teamID := range teamIDs {
		for _, m := range pool {
			if m.Involves(teamID) {
				nextByMatchID[m.ID] = m
				break
			}
		}
	}

	upcoming := make([]models.Match, 0, len(nextByMatchID))
	for _, m := range nextByMatchID {
		upcoming = append(upcoming, m)
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].UTCDate.Before(upcoming[j].UTCDate)
	})
	if len(upcoming) > s.maxUpcoming {
		upcoming = upcoming[:s.maxUpcoming]
	}

	return &models.Dashboard{LiveGames: live, UpcomingFixtures: upcoming}
}

// currentSeason returns the season year API-Football expects: a season
// starting in August is addressed by its opening year.
func currentSeason(now time.Time) int {
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}

func cacheKey(teamIDs []int64) string {
	ids := make([]string, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return cache.Key(ids)
}
