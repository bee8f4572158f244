package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/ranking"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/roster"
)

const minTournamentTeams = 2

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	ListTournaments(ctx context.Context, query, status string) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	GetStandings(ctx context.Context, id string) ([]models.TournamentStanding, error)
}

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Location    string    `json:"location"`
	Status      string    `json:"status,omitempty"`
	TeamCount   int       `json:"team_count"`
}

type UpdateTournamentInput struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Status      *string    `json:"status,omitempty"`
	TeamCount   *int       `json:"team_count,omitempty"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	membershipRepo repositories.MembershipRepository
	matchRepo      repositories.MatchRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	matchRepo repositories.MatchRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		matchRepo:      matchRepo,
	}
}

// ParseTournamentStatus accepts a status from client input. An empty string
// means upcoming.
func ParseTournamentStatus(raw string) (models.TournamentStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.TournamentUpcoming, nil
	}
	status := models.TournamentStatus(raw)
	if !status.Valid() {
		return "", validationError("unknown tournament status %q", raw)
	}
	return status, nil
}

func validateTournament(t *models.Tournament) error {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return validationError("start_date and end_date are required")
	}
	if t.EndDate.Before(t.StartDate) {
		return validationError("end_date must not be before start_date")
	}
	if t.TeamCount < minTournamentTeams {
		return validationError("team_count must be at least %d", minTournamentTeams)
	}
	return nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name, err := requireText("name", input.Name)
	if err != nil {
		return nil, err
	}
	location, err := requireText("location", input.Location)
	if err != nil {
		return nil, err
	}
	status, err := ParseTournamentStatus(input.Status)
	if err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Name:        name,
		Description: trimOptional(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Location:    location,
		Status:      status,
		TeamCount:   input.TeamCount,
		CreatedBy:   actorID(ctx),
	}
	if err := validateTournament(t); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, mapTournamentRepoError("create tournament", err)
	}
	return t, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError("get tournament", err)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, query, status string) ([]models.Tournament, error) {
	var statusFilter *models.TournamentStatus
	if strings.TrimSpace(status) != "" {
		st, err := ParseTournamentStatus(status)
		if err != nil {
			return nil, err
		}
		statusFilter = &st
	}

	tournaments, err := s.tournamentRepo.List(ctx, statusFilter)
	if err != nil {
		return nil, storeUnavailable("list tournaments", err)
	}
	return ranking.FilterByText(tournaments, query, ranking.TournamentTextFields...), nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError("get tournament", err)
	}

	if input.Name != nil {
		if t.Name, err = requireText("name", *input.Name); err != nil {
			return nil, err
		}
	}
	if input.Location != nil {
		if t.Location, err = requireText("location", *input.Location); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		t.Description = trimOptional(input.Description)
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	if input.Status != nil {
		if t.Status, err = ParseTournamentStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.TeamCount != nil {
		t.TeamCount = *input.TeamCount
	}
	if err := validateTournament(t); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, mapTournamentRepoError("update tournament", err)
	}
	return t, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id string) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return mapTournamentRepoError("delete tournament", err)
	}
	return nil
}

// GetStandings builds the table from the current roster and the tournament's
// matches.
func (s *tournamentService) GetStandings(ctx context.Context, id string) ([]models.TournamentStanding, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, id); err != nil {
		return nil, mapTournamentRepoError("get tournament", err)
	}

	var (
		teams       []models.Team
		memberships []models.Membership
		matches     []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if teams, err = s.teamRepo.List(gctx); err != nil {
			return storeUnavailable("list teams", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if memberships, err = s.membershipRepo.ListByTournament(gctx, id); err != nil {
			return storeUnavailable("list memberships", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if matches, err = s.matchRepo.List(gctx, repositories.MatchFilter{TournamentID: &id}); err != nil {
			return storeUnavailable("list matches", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ranking.BuildStandings(roster.Project(teams, memberships), matches), nil
}

func mapTournamentRepoError(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	}
	return storeUnavailable(op, err)
}
