package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/services"
)

const (
	tournamentID = "11111111-1111-1111-1111-111111111111"
	teamID       = "22222222-2222-2222-2222-222222222222"
	otherTeamID  = "aaaabbbb-cccc-4ddd-8eee-ffff00001111"
)

type fakeRosterService struct {
	roster    *models.RosterView
	available []models.Team
	addErr    error
	removeErr error

	addCalls int
	added    []string
	removed  string
}

func (f *fakeRosterService) GetRoster(_ context.Context, id string) (*models.RosterView, error) {
	if f.roster == nil {
		return nil, services.ErrTournamentNotFound
	}
	return f.roster, nil
}

func (f *fakeRosterService) ListAvailableTeams(context.Context, string) ([]models.Team, error) {
	return f.available, nil
}

func (f *fakeRosterService) AddTeams(_ context.Context, _ string, teamIDs []string) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	f.added = teamIDs
	return nil
}

func (f *fakeRosterService) RemoveTeam(_ context.Context, _ string, id string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = id
	return nil
}

func newRosterRouter(svc services.RosterService) http.Handler {
	h := NewRosterHandler(svc)
	r := chi.NewRouter()
	r.Get("/tournaments/{tournamentID}/teams", h.GetRoster)
	r.Get("/tournaments/{tournamentID}/teams/available", h.ListAvailableTeams)
	r.Post("/tournaments/{tournamentID}/teams", h.AddTeams)
	r.Delete("/tournaments/{tournamentID}/teams/{teamID}", h.RemoveTeam)
	return r
}

func TestAddTeams(t *testing.T) {
	roster := &models.RosterView{Teams: []models.Team{{ID: teamID}, {ID: otherTeamID}}, Count: 2, Capacity: 8}
	pair := `{"team_ids": ["` + teamID + `", "` + otherTeamID + `"]}`
	one := `{"team_ids": ["` + teamID + `"]}`

	tests := []struct {
		name   string
		path   string
		body   string
		addErr error
		status int
	}{
		{"added", "/tournaments/" + tournamentID + "/teams", pair, nil, http.StatusCreated},
		{"bad tournament id", "/tournaments/nope/teams", one, nil, http.StatusBadRequest},
		{"bad body", "/tournaments/" + tournamentID + "/teams", `{"team_ids": `, nil, http.StatusBadRequest},
		{"empty selection", "/tournaments/" + tournamentID + "/teams", `{"team_ids": []}`,
			fmt.Errorf("add teams: %w: no teams selected", services.ErrValidationFailed), http.StatusUnprocessableEntity},
		{"already registered", "/tournaments/" + tournamentID + "/teams", one,
			services.ErrDuplicateMembership, http.StatusConflict},
		{"store down", "/tournaments/" + tournamentID + "/teams", one,
			services.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRosterService{roster: roster, addErr: tt.addErr}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			newRosterRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status == http.StatusCreated {
				if len(svc.added) != 2 {
					t.Errorf("added = %v, want two teams", svc.added)
				}
				body := decodeBody(t, rec)
				got, ok := body["roster"].(map[string]interface{})
				if !ok || got["count"] != float64(2) {
					t.Errorf("roster = %v, want count 2", body["roster"])
				}
			}
		})
	}
}

func TestAddTeamsMalformedIDs(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not a uuid", `{"team_ids": ["not-a-uuid"]}`},
		{"one bad among good", `{"team_ids": ["` + teamID + `", "42"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRosterService{roster: &models.RosterView{}}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tournaments/"+tournamentID+"/teams", strings.NewReader(tt.body))
			newRosterRouter(svc).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422 (%s)", rec.Code, rec.Body.String())
			}
			if svc.addCalls != 0 {
				t.Errorf("service called %d times, want 0", svc.addCalls)
			}
		})
	}
}

func TestAddTeamsCanonicalizesIDs(t *testing.T) {
	svc := &fakeRosterService{roster: &models.RosterView{}}
	body := `{"team_ids": [" ` + strings.ToUpper(otherTeamID) + `"]}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tournaments/"+tournamentID+"/teams", strings.NewReader(body))
	newRosterRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if len(svc.added) != 1 || svc.added[0] != otherTeamID {
		t.Errorf("added = %v, want [%s]", svc.added, otherTeamID)
	}
}

func TestRemoveTeam(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		svc := &fakeRosterService{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tournaments/"+tournamentID+"/teams/"+teamID, nil)
		newRosterRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if svc.removed != teamID {
			t.Errorf("removed = %q, want %q", svc.removed, teamID)
		}
	})

	t.Run("already gone", func(t *testing.T) {
		svc := &fakeRosterService{removeErr: services.ErrMembershipNotFound}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tournaments/"+tournamentID+"/teams/"+teamID, nil)
		newRosterRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if body := decodeBody(t, rec); body["refresh"] != true {
			t.Errorf("refresh = %v, want true", body["refresh"])
		}
	})

	t.Run("bad team id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tournaments/"+tournamentID+"/teams/x", nil)
		newRosterRouter(&fakeRosterService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestGetRoster(t *testing.T) {
	t.Run("full roster", func(t *testing.T) {
		svc := &fakeRosterService{roster: &models.RosterView{Count: 2, Capacity: 2, IsFull: true}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tournaments/"+tournamentID+"/teams", nil)
		newRosterRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		got := decodeBody(t, rec)["roster"].(map[string]interface{})
		if got["is_full"] != true {
			t.Errorf("is_full = %v, want true", got["is_full"])
		}
	})

	t.Run("unknown tournament", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tournaments/"+tournamentID+"/teams", nil)
		newRosterRouter(&fakeRosterService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("available teams", func(t *testing.T) {
		svc := &fakeRosterService{available: []models.Team{{ID: "e"}, {ID: "f"}}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tournaments/"+tournamentID+"/teams/available", nil)
		newRosterRouter(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		teams := decodeBody(t, rec)["teams"].([]interface{})
		if len(teams) != 2 {
			t.Errorf("got %d teams, want 2", len(teams))
		}
	})
}
