package footballdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/strikesquad/squadapi/internal/cache"
	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/ratelimit"
)

// newTestService wires a Service against a mock upstream and returns the
// upstream call counter.
func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server, *int64) {
	t.Helper()

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	limiter, err := ratelimit.New(10, time.Minute)
	if err != nil {
		t.Fatalf("ratelimit.New failed: %v", err)
	}

	client := NewClient(server.URL, "test-token", 5*time.Second)
	svc := NewService(client, limiter, cache.NewMemory(2*time.Minute), logger.Nop(), nil, 10, 10)
	return svc, server, &calls
}

func matchesJSON(matches string) string {
	return fmt.Sprintf(`{"matches":[%s]}`, matches)
}

func matchJSON(id int64, utcDate, status string, homeID, awayID int64, home, away string) string {
	return fmt.Sprintf(`{
		"id": %d,
		"utcDate": %q,
		"status": %q,
		"homeTeam": {"id": %d, "name": %q, "crest": ""},
		"awayTeam": {"id": %d, "name": %q, "crest": ""},
		"score": {"fullTime": {"home": null, "away": null}},
		"competition": {"name": "Premier League"}
	}`, id, utcDate, status, homeID, home, awayID, away)
}

func TestMatchesForTeams_ClassifiesAndCaches(t *testing.T) {
	kickoff1 := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	kickoff2 := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	svc, _, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches" {
			t.Errorf("Expected path /matches, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Auth-Token") != "test-token" {
			t.Errorf("Expected X-Auth-Token header, got %q", r.Header.Get("X-Auth-Token"))
		}
		query := r.URL.Query()
		if query.Get("dateFrom") == "" || query.Get("dateTo") == "" {
			t.Error("Expected dateFrom and dateTo query parameters")
		}

		// 3 matches: 1 live involving Arsenal, 1 upcoming per team.
		body := matchesJSON(
			matchJSON(1, time.Now().UTC().Format(time.RFC3339), "IN_PLAY", 57, 65, "Arsenal FC", "Manchester City FC") + "," +
				matchJSON(2, kickoff2, "SCHEDULED", 64, 61, "Liverpool FC", "Chelsea FC") + "," +
				matchJSON(3, kickoff1, "TIMED", 57, 66, "Arsenal FC", "Manchester United FC"),
		)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	ctx := context.Background()
	dashboard, teamIDs, err := svc.MatchesForTeams(ctx, []string{"Arsenal", "Liverpool"})
	if err != nil {
		t.Fatalf("MatchesForTeams failed: %v", err)
	}

	if len(teamIDs) != 2 || teamIDs[0] != 57 || teamIDs[1] != 64 {
		t.Errorf("Expected team IDs [57 64], got %v", teamIDs)
	}
	if len(dashboard.LiveGames) != 1 {
		t.Fatalf("Expected 1 live game, got %d", len(dashboard.LiveGames))
	}
	if dashboard.LiveGames[0].ID != 1 {
		t.Errorf("Expected live match ID 1, got %d", dashboard.LiveGames[0].ID)
	}
	if len(dashboard.UpcomingFixtures) != 2 {
		t.Fatalf("Expected 2 upcoming fixtures, got %d", len(dashboard.UpcomingFixtures))
	}
	// Sorted ascending by kickoff: match 3 (24h) before match 2 (48h).
	if dashboard.UpcomingFixtures[0].ID != 3 || dashboard.UpcomingFixtures[1].ID != 2 {
		t.Errorf("Expected upcoming order [3 2], got [%d %d]",
			dashboard.UpcomingFixtures[0].ID, dashboard.UpcomingFixtures[1].ID)
	}
	if got := atomic.LoadInt64(calls); got != 1 {
		t.Errorf("Expected exactly 1 upstream call, got %d", got)
	}

	// Identical request within the TTL: same result, zero additional calls.
	cached, _, err := svc.MatchesForTeams(ctx, []string{"Liverpool", "Arsenal"})
	if err != nil {
		t.Fatalf("Cached MatchesForTeams failed: %v", err)
	}
	if len(cached.LiveGames) != 1 || len(cached.UpcomingFixtures) != 2 {
		t.Errorf("Expected cached result to match original, got %d live / %d upcoming",
			len(cached.LiveGames), len(cached.UpcomingFixtures))
	}
	if got := atomic.LoadInt64(calls); got != 1 {
		t.Errorf("Expected no additional upstream calls on cache hit, got %d total", got)
	}
}

func TestMatchesForTeams_NoMappedTeams(t *testing.T) {
	svc, _, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, matchesJSON(""))
	})

	_, _, err := svc.MatchesForTeams(context.Background(), []string{"FC Nonexistent"})
	if err != ErrNoTeamsMapped {
		t.Errorf("Expected ErrNoTeamsMapped, got %v", err)
	}
	if got := atomic.LoadInt64(calls); got != 0 {
		t.Errorf("Expected zero upstream calls for unmapped teams, got %d", got)
	}
}

func TestMatchesForTeams_SharedFixtureAppearsOnce(t *testing.T) {
	// Arsenal and Liverpool play each other as both teams' earliest fixture.
	kickoff := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	later := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)

	svc, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		body := matchesJSON(
			matchJSON(10, kickoff, "TIMED", 57, 64, "Arsenal FC", "Liverpool FC") + "," +
				matchJSON(11, later, "TIMED", 64, 61, "Liverpool FC", "Chelsea FC"),
		)
		fmt.Fprint(w, body)
	})

	dashboard, _, err := svc.MatchesForTeams(context.Background(), []string{"Arsenal", "Liverpool"})
	if err != nil {
		t.Fatalf("MatchesForTeams failed: %v", err)
	}
	if len(dashboard.UpcomingFixtures) != 1 {
		t.Fatalf("Expected shared fixture to appear exactly once, got %d fixtures", len(dashboard.UpcomingFixtures))
	}
	if dashboard.UpcomingFixtures[0].ID != 10 {
		t.Errorf("Expected fixture 10, got %d", dashboard.UpcomingFixtures[0].ID)
	}
}

func TestMatchesForTeams_FiltersUnrelatedMatches(t *testing.T) {
	kickoff := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)

	svc, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		// Neither team is in the requested set.
		body := matchesJSON(matchJSON(20, kickoff, "TIMED", 86, 81, "Real Madrid CF", "FC Barcelona"))
		fmt.Fprint(w, body)
	})

	dashboard, _, err := svc.MatchesForTeams(context.Background(), []string{"Arsenal"})
	if err != nil {
		t.Fatalf("MatchesForTeams failed: %v", err)
	}
	if len(dashboard.LiveGames) != 0 || len(dashboard.UpcomingFixtures) != 0 {
		t.Errorf("Expected empty dashboard for unrelated matches, got %d live / %d upcoming",
			len(dashboard.LiveGames), len(dashboard.UpcomingFixtures))
	}
}

func TestMatchesForTeams_UpstreamFailureDegradesToEmpty(t *testing.T) {
	svc, _, calls := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	dashboard, teamIDs, err := svc.MatchesForTeams(context.Background(), []string{"Arsenal"})
	if err != nil {
		t.Fatalf("Expected upstream failure to be absorbed, got %v", err)
	}
	if len(teamIDs) != 1 {
		t.Errorf("Expected resolved team IDs even on failure, got %v", teamIDs)
	}
	if len(dashboard.LiveGames) != 0 || len(dashboard.UpcomingFixtures) != 0 {
		t.Error("Expected empty dashboard on upstream failure")
	}

	// Failures must not be cached: the next request retries upstream.
	_, _, _ = svc.MatchesForTeams(context.Background(), []string{"Arsenal"})
	if got := atomic.LoadInt64(calls); got != 2 {
		t.Errorf("Expected failure to bypass the cache (2 calls), got %d", got)
	}
}

func TestMatchesForTeams_CapsUpcomingList(t *testing.T) {
	// 12 distinct teams each with their own next fixture; cap is 10.
	var parts string
	teams := []string{
		"Arsenal", "Liverpool", "Chelsea", "Manchester City", "Manchester United",
		"Tottenham", "Newcastle", "Aston Villa", "Everton", "Fulham", "Brentford", "Wolves",
	}
	ids := []int64{57, 64, 61, 65, 66, 73, 67, 58, 62, 63, 402, 76}
	for i, id := range ids {
		if i > 0 {
			parts += ","
		}
		kickoff := time.Now().Add(time.Duration(24+i) * time.Hour).UTC().Format(time.RFC3339)
		// Pair each team with a La Liga side not in the request.
		parts += matchJSON(int64(100+i), kickoff, "TIMED", id, 559, "Home", "Sevilla FC")
	}

	svc, _, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, matchesJSON(parts))
	})

	dashboard, _, err := svc.MatchesForTeams(context.Background(), teams)
	if err != nil {
		t.Fatalf("MatchesForTeams failed: %v", err)
	}
	if len(dashboard.UpcomingFixtures) != 10 {
		t.Errorf("Expected upcoming list capped at 10, got %d", len(dashboard.UpcomingFixtures))
	}
}

func TestResolveTeamIDs_DropsUnknownAndDeduplicates(t *testing.T) {
	log := logger.Nop()

	ids := ResolveTeamIDs([]string{"Arsenal", "FC Nonexistent", "Arsenal", "Tottenham", "Tottenham Hotspur"}, log)
	if len(ids) != 2 {
		t.Fatalf("Expected 2 IDs (Arsenal + Tottenham alias collapsed), got %v", ids)
	}
	if ids[0] != 57 || ids[1] != 73 {
		t.Errorf("Expected [57 73] preserving first occurrence, got %v", ids)
	}
}
