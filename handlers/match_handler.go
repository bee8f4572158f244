package handlers

import (
	"net/http"

	"github.com/Dosada05/college-cricket/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// CreateMatch godoc
// @Summary Schedule a match
// @Tags matches
// @Accept json
// @Produce json
// @Param body body services.CreateMatchInput true "Match"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	fields := append([]idField{
		{"tournament_id", input.TournamentID},
		{"team1_id", &input.Team1ID},
		{"team2_id", &input.Team2ID},
	}, matchResultIDs(input.Result)...)
	if err := canonicalizeIDs(fields...); err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusCreated, jsonResponse{"match": match})
}

// GetMatchByID godoc
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /matches/{matchID} [get]
func (h *MatchHandler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"match": match})
}

// ListMatches godoc
// @Summary List matches
// @Tags matches
// @Produce json
// @Param q query string false "Search by venue"
// @Param status query string false "upcoming, live or completed"
// @Param tournament_id query string false "Tournament ID"
// @Param team_id query string false "Team ID"
// @Success 200 {object} map[string]interface{}
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := queryID(r, "tournament_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := queryID(r, "team_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), services.MatchListFilter{
		Query:        queryText(r),
		Status:       r.URL.Query().Get("status"),
		TournamentID: tournamentID,
		TeamID:       teamID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"matches": matches})
}

// ListTournamentMatches godoc
// @Summary Matches of a tournament
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Router /tournaments/{tournamentID}/matches [get]
func (h *MatchHandler) ListTournamentMatches(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), services.MatchListFilter{
		TournamentID: tournamentID,
		Status:       r.URL.Query().Get("status"),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"matches": matches})
}

// UpdateMatch godoc
// @Summary Update a match or record its result
// @Description Moving a completed match back to upcoming or live clears its result.
// @Tags matches
// @Accept json
// @Produce json
// @Param matchID path string true "Match ID"
// @Param body body services.UpdateMatchInput true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /matches/{matchID} [put]
func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	fields := append([]idField{
		{"tournament_id", input.TournamentID},
		{"team1_id", input.Team1ID},
		{"team2_id", input.Team2ID},
	}, matchResultIDs(input.Result)...)
	if err := canonicalizeIDs(fields...); err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"match": match})
}

// DeleteMatch godoc
// @Summary Delete a match
// @Tags matches
// @Param matchID path string true "Match ID"
// @Success 204
// @Security BearerAuth
// @Router /matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
