package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/strikesquad/squadapi/internal/apisports"
	"github.com/strikesquad/squadapi/internal/footballdata"
	"github.com/strikesquad/squadapi/internal/formations"
	"github.com/strikesquad/squadapi/internal/models"
	"github.com/strikesquad/squadapi/internal/sportsdb"
)

const fixturesCacheControl = "public, s-maxage=300, stale-while-revalidate=600"

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		s.log.Error("%s: %v", message, err)
	}
	s.respondJSON(w, status, errorResponse{Error: message})
}

// parseTeamNames splits the comma-separated teamNames parameter, dropping
// blanks.
func parseTeamNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "squadapi",
		"timestamp": time.Now().UTC(),
	})
}

// handleFootballData serves the main dashboard via football-data.org.
//
// GET /api/football-data?teamNames=Arsenal,Liverpool
// GET /api/football-data?clearCache=true
func (s *Server) handleFootballData(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("clearCache") == "true" {
		s.football.ClearCache(r.Context())
		s.respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Football-Data cache cleared",
		})
		return
	}

	teamNames := parseTeamNames(r.URL.Query().Get("teamNames"))
	if len(teamNames) == 0 {
		s.respondError(w, http.StatusBadRequest, "teamNames parameter required", nil)
		return
	}

	dashboard, teamIDs, err := s.football.MatchesForTeams(r.Context(), teamNames)
	if errors.Is(err, footballdata.ErrNoTeamsMapped) {
		s.respondError(w, http.StatusBadRequest, "No teams found in Football-Data mapping", nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch fixtures", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"teamNames":        teamNames,
		"teamIds":          teamIDs,
		"liveGames":        dashboard.LiveGames,
		"upcomingFixtures": dashboard.UpcomingFixtures,
		"cachedAt":         time.Now().UTC(),
	})
}

// handleDashboard serves the same dashboard shape via API-Football.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("clearCache") == "true" {
		s.dashboard.ClearCache(r.Context())
		s.respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "API-Football cache cleared",
		})
		return
	}

	teamNames := parseTeamNames(r.URL.Query().Get("teamNames"))
	if len(teamNames) == 0 {
		s.respondError(w, http.StatusBadRequest, "teamNames parameter required", nil)
		return
	}

	dashboard, teamIDs, err := s.dashboard.DashboardForTeams(r.Context(), teamNames)
	if errors.Is(err, apisports.ErrNoTeamsMapped) {
		s.respondError(w, http.StatusBadRequest, "No teams found in API-Football mapping", nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch fixtures", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"teamNames":        teamNames,
		"teamIds":          teamIDs,
		"liveGames":        dashboard.LiveGames,
		"upcomingFixtures": dashboard.UpcomingFixtures,
		"cachedAt":         time.Now().UTC(),
	})
}

// handleFixtures proxies the TopStrike fixtures feed, mirroring the upstream
// status and body.
func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	body, status, err := s.fixtures.FetchFixtures(r.Context())
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "Failed to reach fixtures upstream", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fixturesCacheControl)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.log.Error("Failed to write fixtures response: %v", err)
	}
}

// handlePlayers resolves player metadata by display name.
func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.respondError(w, http.StatusBadRequest, "name parameter required", nil)
		return
	}

	info, err := s.players.Resolve(r.Context(), name)
	if errors.Is(err, sportsdb.ErrPlayerNotFound) {
		s.respondError(w, http.StatusNotFound, "Player not found", nil)
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to resolve player", err)
		return
	}

	s.respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleFormations(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"formations": formations.All(),
	})
}

func (s *Server) handleGetWalletLink(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}
	twitterID := r.URL.Query().Get("twitterId")
	if twitterID == "" {
		s.respondError(w, http.StatusBadRequest, "twitterId parameter required", nil)
		return
	}

	link, found, err := s.store.GetWalletLink(r.Context(), twitterID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to load wallet link", err)
		return
	}
	if !found {
		s.respondError(w, http.StatusNotFound, "No wallet linked", nil)
		return
	}

	s.respondJSON(w, http.StatusOK, link)
}

type walletLinkRequest struct {
	TwitterID         string `json:"twitterId"`
	TwitterUsername   string `json:"twitterUsername"`
	WalletAddress     string `json:"walletAddress"`
	TopStrikeUsername string `json:"topstrikeUsername"`
}

func (s *Server) handlePostWalletLink(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}

	var req walletLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	link := &models.WalletLink{
		TwitterID:         req.TwitterID,
		TwitterUsername:   req.TwitterUsername,
		WalletAddress:     req.WalletAddress,
		TopStrikeUsername: req.TopStrikeUsername,
		LinkedAt:          time.Now().UTC(),
	}
	if err := link.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := s.store.UpsertWalletLink(r.Context(), link); err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to save wallet link", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"link":    link,
	})
}

func (s *Server) handleDeleteWalletLink(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}
	twitterID := r.URL.Query().Get("twitterId")
	if twitterID == "" {
		s.respondError(w, http.StatusBadRequest, "twitterId parameter required", nil)
		return
	}

	if err := s.store.DeleteWalletLink(r.Context(), twitterID); err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to delete wallet link", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}

	links, err := s.store.ListWalletLinks(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to load leaderboard", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"entries": links,
		"count":   len(links),
	})
}

func (s *Server) handleGetSquad(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}
	twitterID := r.URL.Query().Get("twitterId")
	if twitterID == "" {
		s.respondError(w, http.StatusBadRequest, "twitterId parameter required", nil)
		return
	}

	formation, slots, found, err := s.store.GetSquad(r.Context(), twitterID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to load squad", err)
		return
	}
	if !found {
		s.respondError(w, http.StatusNotFound, "No squad saved", nil)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"formation": formation,
		"slots":     json.RawMessage(slots),
	})
}

type squadRequest struct {
	TwitterID string            `json:"twitterId"`
	Formation string            `json:"formation"`
	Slots     map[string]string `json:"slots"`
}

func (s *Server) handlePostSquad(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Persistence not configured", nil)
		return
	}

	var req squadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.TwitterID == "" {
		s.respondError(w, http.StatusBadRequest, "twitterId is required", nil)
		return
	}
	if !formations.ValidSlots(req.Formation, req.Slots) {
		s.respondError(w, http.StatusBadRequest, "Unknown formation or invalid slot IDs", nil)
		return
	}

	slotsJSON, err := json.Marshal(req.Slots)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to encode slots", err)
		return
	}

	if err := s.store.SaveSquad(r.Context(), req.TwitterID, req.Formation, slotsJSON); err != nil {
		s.respondError(w, http.StatusInternalServerError, "Failed to save squad", err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
