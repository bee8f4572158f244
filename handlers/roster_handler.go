package handlers

import (
	"net/http"

	"github.com/Dosada05/college-cricket/services"
)

type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rs services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rs}
}

type addTeamsRequest struct {
	TeamIDs []string `json:"team_ids"`
}

// GetRoster godoc
// @Summary Teams registered in a tournament
// @Tags roster
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/teams [get]
func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	roster, err := h.rosterService.GetRoster(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"roster": roster})
}

// ListAvailableTeams godoc
// @Summary Teams that can still be added
// @Tags roster
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID}/teams/available [get]
func (h *RosterHandler) ListAvailableTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.rosterService.ListAvailableTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// AddTeams godoc
// @Summary Add teams to a tournament
// @Description All teams are added or none are. The updated roster is returned.
// @Tags roster
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body addTeamsRequest true "Teams to add"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Team already registered"
// @Failure 422 {object} map[string]string "Empty, repeated or malformed selection"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams [post]
func (h *RosterHandler) AddTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req addTeamsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	for i, raw := range req.TeamIDs {
		id, err := bodyID("team_ids", raw)
		if err != nil {
			failedValidationResponse(w, r, err)
			return
		}
		req.TeamIDs[i] = id
	}

	if err := h.rosterService.AddTeams(r.Context(), tournamentID, req.TeamIDs); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	roster, err := h.rosterService.GetRoster(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusCreated, jsonResponse{"roster": roster})
}

// RemoveTeam godoc
// @Summary Remove a team from a tournament
// @Tags roster
// @Param tournamentID path string true "Tournament ID"
// @Param teamID path string true "Team ID"
// @Success 204
// @Failure 404 {object} map[string]interface{} "Team is not registered; reload the roster"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/teams/{teamID} [delete]
func (h *RosterHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.RemoveTeam(r.Context(), tournamentID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
