package handlers

import (
	"net/http"

	"github.com/Dosada05/college-cricket/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fs services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fs}
}

// GenerateFixtures godoc
// @Summary Schedule a round robin for the registered teams
// @Description Teams are paired in the order they joined. Fails if the tournament already has matches.
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param body body services.GenerateFixturesInput false "Schedule options"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Matches already scheduled"
// @Failure 422 {object} map[string]string "Fewer than two teams or bad options"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/fixtures [post]
func (h *FixtureHandler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateFixturesInput
	// The body is optional.
	if r.ContentLength != 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	matches, err := h.fixtureService.GenerateFixtures(r.Context(), tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	writeEnvelope(w, r, http.StatusCreated, jsonResponse{"matches": matches})
}
