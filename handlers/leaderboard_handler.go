package handlers

import (
	"net/http"

	"github.com/Dosada05/college-cricket/services"
)

const defaultLeaderboardLimit = 10

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(ls services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

// TopBatsmen godoc
// @Summary Players ranked by runs
// @Tags leaderboard
// @Produce json
// @Param q query string false "Filter by name or college"
// @Param limit query int false "Maximum entries, 0 for all" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /leaderboard/batsmen [get]
func (h *LeaderboardHandler) TopBatsmen(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultLeaderboardLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.leaderboardService.TopBatsmen(r.Context(), queryText(r), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"players": players})
}

// TopBowlers godoc
// @Summary Players ranked by wickets
// @Tags leaderboard
// @Produce json
// @Param q query string false "Filter by name or college"
// @Param limit query int false "Maximum entries, 0 for all" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /leaderboard/bowlers [get]
func (h *LeaderboardHandler) TopBowlers(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultLeaderboardLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.leaderboardService.TopBowlers(r.Context(), queryText(r), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"players": players})
}

// TopTeams godoc
// @Summary Teams ranked by win ratio
// @Tags leaderboard
// @Produce json
// @Param q query string false "Filter by name or college"
// @Param limit query int false "Maximum entries, 0 for all" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /leaderboard/teams [get]
func (h *LeaderboardHandler) TopTeams(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultLeaderboardLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.leaderboardService.TopTeams(r.Context(), queryText(r), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// Rank godoc
// @Summary Rank players or teams by any metric
// @Tags leaderboard
// @Produce json
// @Param kind query string true "players or teams"
// @Param metric query string false "Metric name, defaults per kind"
// @Param q query string false "Filter by name or college"
// @Param limit query int false "Maximum entries, 0 for all" default(10)
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Unknown kind or metric"
// @Router /leaderboard [get]
func (h *LeaderboardHandler) Rank(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, defaultLeaderboardLimit)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	q := r.URL.Query()
	board, err := h.leaderboardService.Rank(r.Context(), services.LeaderboardQuery{
		Kind:   q.Get("kind"),
		Metric: q.Get("metric"),
		Query:  queryText(r),
		Limit:  limit,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"leaderboard": board})
}
