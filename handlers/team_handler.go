package handlers

import (
	"net/http"

	"github.com/Dosada05/college-cricket/services"
)

type TeamHandler struct {
	teamService   services.TeamService
	playerService services.PlayerService
}

func NewTeamHandler(ts services.TeamService, ps services.PlayerService) *TeamHandler {
	return &TeamHandler{
		teamService:   ts,
		playerService: ps,
	}
}

// CreateTeam godoc
// @Summary Create a team
// @Tags teams
// @Accept json
// @Produce json
// @Param body body services.CreateTeamInput true "Team"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := canonicalizeIDs(idField{"captain_id", input.CaptainID}); err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusCreated, jsonResponse{"team": team})
}

// GetTeamByID godoc
// @Summary Team with its players
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"team": team})
}

// ListTeams godoc
// @Summary List teams
// @Tags teams
// @Produce json
// @Param q query string false "Search by name or college"
// @Success 200 {object} map[string]interface{}
// @Router /teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context(), queryText(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// ListTeamPlayers godoc
// @Summary Players of a team
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Router /teams/{teamID}/players [get]
func (h *TeamHandler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListPlayers(r.Context(), services.PlayerListFilter{
		TeamID: teamID,
		Query:  queryText(r),
		Role:   r.URL.Query().Get("role"),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"players": players})
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param body body services.UpdateTeamInput true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teams/{teamID} [put]
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := canonicalizeIDs(idField{"captain_id", input.CaptainID}); err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"team": team})
}

// DeleteTeam godoc
// @Summary Delete a team
// @Tags teams
// @Param teamID path string true "Team ID"
// @Success 204
// @Failure 409 {object} map[string]string "Team has matches"
// @Security BearerAuth
// @Router /teams/{teamID} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadTeamLogo godoc
// @Summary Upload a team logo
// @Tags teams
// @Accept multipart/form-data
// @Produce json
// @Param teamID path string true "Team ID"
// @Param logo formData file true "Logo image"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Storage not configured"
// @Security BearerAuth
// @Router /teams/{teamID}/logo [put]
func (h *TeamHandler) UploadTeamLogo(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, contentType, err := readImage(r, "logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	team, err := h.teamService.UploadLogo(r.Context(), teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"team": team})
}
