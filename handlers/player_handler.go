package handlers

import (
	"net/http"

	"github.com/Dosada05/college-cricket/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// CreatePlayer godoc
// @Summary Create a player
// @Tags players
// @Accept json
// @Produce json
// @Param body body services.CreatePlayerInput true "Player"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := canonicalizeIDs(idField{"team_id", input.TeamID}); err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusCreated, jsonResponse{"player": player})
}

// GetPlayerByID godoc
// @Summary Get a player
// @Tags players
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /players/{playerID} [get]
func (h *PlayerHandler) GetPlayerByID(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"player": player})
}

// ListPlayers godoc
// @Summary List players
// @Tags players
// @Produce json
// @Param q query string false "Search by name or college"
// @Param role query string false "batsman, bowler or all-rounder"
// @Param team_id query string false "Team ID"
// @Success 200 {object} map[string]interface{}
// @Router /players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := queryID(r, "team_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListPlayers(r.Context(), services.PlayerListFilter{
		Query:  queryText(r),
		Role:   r.URL.Query().Get("role"),
		TeamID: teamID,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"players": players})
}

// UpdatePlayer godoc
// @Summary Update a player
// @Tags players
// @Accept json
// @Produce json
// @Param playerID path string true "Player ID"
// @Param body body services.UpdatePlayerInput true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /players/{playerID} [put]
func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := canonicalizeIDs(idField{"team_id", input.TeamID}); err != nil {
		failedValidationResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"player": player})
}

// DeletePlayer godoc
// @Summary Delete a player
// @Tags players
// @Param playerID path string true "Player ID"
// @Success 204
// @Security BearerAuth
// @Router /players/{playerID} [delete]
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPlayerImage godoc
// @Summary Upload a player photo
// @Tags players
// @Accept multipart/form-data
// @Produce json
// @Param playerID path string true "Player ID"
// @Param image formData file true "Photo"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Storage not configured"
// @Security BearerAuth
// @Router /players/{playerID}/image [put]
func (h *PlayerHandler) UploadPlayerImage(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, contentType, err := readImage(r, "image")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	player, err := h.playerService.UploadImage(r.Context(), playerID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusOK, jsonResponse{"player": player})
}
