package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/college-cricket/events"
	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/ranking"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/storage"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListMatches(ctx context.Context, filter MatchListFilter) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id string) error
}

type MatchListFilter struct {
	Query        string
	Status       string
	TournamentID string
	TeamID       string
}

type CreateMatchInput struct {
	TournamentID *string             `json:"tournament_id,omitempty"`
	Team1ID      string              `json:"team1_id"`
	Team2ID      string              `json:"team2_id"`
	Date         time.Time           `json:"date"`
	Venue        string              `json:"venue"`
	Status       string              `json:"status,omitempty"`
	Result       *models.MatchResult `json:"result,omitempty"`
}

type UpdateMatchInput struct {
	TournamentID *string             `json:"tournament_id,omitempty"`
	Team1ID      *string             `json:"team1_id,omitempty"`
	Team2ID      *string             `json:"team2_id,omitempty"`
	Date         *time.Time          `json:"date,omitempty"`
	Venue        *string             `json:"venue,omitempty"`
	Status       *string             `json:"status,omitempty"`
	Result       *models.MatchResult `json:"result,omitempty"`
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	uploader  storage.FileUploader
	publisher events.Publisher
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	publisher events.Publisher,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		uploader:  uploader,
		publisher: publisher,
	}
}

// ParseMatchStatus accepts a status from client input. An empty string means
// upcoming.
func ParseMatchStatus(raw string) (models.MatchStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.MatchUpcoming, nil
	}
	status := models.MatchStatus(raw)
	if !status.Valid() {
		return "", validationError("unknown match status %q", raw)
	}
	return status, nil
}

func validateMatch(m *models.Match) error {
	if m.Team1ID == "" || m.Team2ID == "" {
		return validationError("team1_id and team2_id are required")
	}
	if m.Team1ID == m.Team2ID {
		return validationError("a team cannot play itself")
	}
	if m.Date.IsZero() {
		return validationError("date is required")
	}
	if m.Result != nil {
		if m.Status != models.MatchCompleted {
			return validationError("only completed matches can have a result")
		}
		if w := m.Result.WinnerID; w != nil && !m.Involves(*w) {
			return validationError("winner must be one of the two teams")
		}
	}
	return nil
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	venue, err := requireText("venue", input.Venue)
	if err != nil {
		return nil, err
	}
	status, err := ParseMatchStatus(input.Status)
	if err != nil {
		return nil, err
	}

	m := &models.Match{
		TournamentID: trimOptional(input.TournamentID),
		Team1ID:      strings.TrimSpace(input.Team1ID),
		Team2ID:      strings.TrimSpace(input.Team2ID),
		Date:         input.Date,
		Venue:        venue,
		Status:       status,
		Result:       input.Result,
		CreatedBy:    actorID(ctx),
	}
	if err := validateMatch(m); err != nil {
		return nil, err
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return nil, mapMatchRepoError("create match", err)
	}
	s.notify(ctx, m)
	return m, nil
}

// GetMatch returns the match with both teams attached.
func (s *matchService) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError("get match", err)
	}
	if err := s.attachTeams(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *matchService) attachTeams(ctx context.Context, m *models.Match) error {
	for _, side := range []struct {
		id   string
		dest **models.Team
	}{{m.Team1ID, &m.Team1}, {m.Team2ID, &m.Team2}} {
		team, err := s.teamRepo.GetByID(ctx, side.id)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				continue
			}
			return storeUnavailable("get match team", err)
		}
		populateTeamLogoURL(team, s.uploader)
		*side.dest = team
	}
	return nil
}

func (s *matchService) ListMatches(ctx context.Context, filter MatchListFilter) ([]models.Match, error) {
	var repoFilter repositories.MatchFilter
	if strings.TrimSpace(filter.Status) != "" {
		st, err := ParseMatchStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		repoFilter.Status = &st
	}
	if id := strings.TrimSpace(filter.TournamentID); id != "" {
		repoFilter.TournamentID = &id
	}
	if id := strings.TrimSpace(filter.TeamID); id != "" {
		repoFilter.TeamID = &id
	}

	matches, err := s.matchRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, storeUnavailable("list matches", err)
	}
	return ranking.FilterByText(matches, filter.Query, ranking.MatchTextFields...), nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError("get match", err)
	}
	previousTournament := m.TournamentID

	if input.TournamentID != nil {
		m.TournamentID = trimOptional(input.TournamentID)
	}
	if input.Team1ID != nil {
		m.Team1ID = strings.TrimSpace(*input.Team1ID)
	}
	if input.Team2ID != nil {
		m.Team2ID = strings.TrimSpace(*input.Team2ID)
	}
	if input.Date != nil {
		m.Date = *input.Date
	}
	if input.Venue != nil {
		if m.Venue, err = requireText("venue", *input.Venue); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if m.Status, err = ParseMatchStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Result != nil {
		m.Result = input.Result
	} else if m.Status != models.MatchCompleted {
		// Reopening a completed match drops its result.
		m.Result = nil
	}
	if err := validateMatch(m); err != nil {
		return nil, err
	}

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return nil, mapMatchRepoError("update match", err)
	}
	s.notify(ctx, m)
	if previousTournament != nil && (m.TournamentID == nil || *m.TournamentID != *previousTournament) {
		publish(ctx, s.publisher, events.NewTournamentMessage(events.MatchUpdated, *previousTournament, map[string]string{"match_id": m.ID}))
	}
	return m, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id string) error {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return mapMatchRepoError("get match", err)
	}
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return mapMatchRepoError("delete match", err)
	}
	s.notify(ctx, m)
	return nil
}

// notify tells the match's tournament room that its standings may have moved.
func (s *matchService) notify(ctx context.Context, m *models.Match) {
	if m.TournamentID == nil {
		return
	}
	publish(ctx, s.publisher, events.NewTournamentMessage(events.MatchUpdated, *m.TournamentID, map[string]interface{}{
		"match_id": m.ID,
		"status":   m.Status,
	}))
}

func mapMatchRepoError(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchReferenceInvalid):
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return storeUnavailable(op, err)
}
