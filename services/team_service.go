package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/ranking"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context, query string) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	UploadLogo(ctx context.Context, id string, contentType string, r io.Reader) (*models.Team, error)
}

type CreateTeamInput struct {
	Name      string            `json:"name"`
	College   string            `json:"college"`
	CaptainID *string           `json:"captain_id,omitempty"`
	Stats     *models.TeamStats `json:"stats,omitempty"`
}

type UpdateTeamInput struct {
	Name      *string           `json:"name,omitempty"`
	College   *string           `json:"college,omitempty"`
	CaptainID *string           `json:"captain_id,omitempty"`
	Stats     *models.TeamStats `json:"stats,omitempty"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func validateTeamStats(st models.TeamStats) error {
	if st.Matches < 0 || st.Won < 0 || st.Lost < 0 || st.Draw < 0 {
		return validationError("team counters cannot be negative")
	}
	if st.Won+st.Lost+st.Draw > st.Matches {
		return validationError("won, lost and draw exceed matches played")
	}
	return nil
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name, err := requireText("name", input.Name)
	if err != nil {
		return nil, err
	}
	college, err := requireText("college", input.College)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:      name,
		College:   college,
		CaptainID: trimOptional(input.CaptainID),
		CreatedBy: actorID(ctx),
	}
	if input.Stats != nil {
		if err := validateTeamStats(*input.Stats); err != nil {
			return nil, err
		}
		team.Stats = *input.Stats
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, mapTeamRepoError("create team", err)
	}
	return team, nil
}

// GetTeam returns the team with its players.
func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError("get team", err)
	}

	players, err := s.playerRepo.List(ctx, repositories.PlayerFilter{TeamID: &id})
	if err != nil {
		return nil, storeUnavailable("list team players", err)
	}
	populatePlayerImageURLs(players, s.uploader)
	team.Players = players
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, query string) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, storeUnavailable("list teams", err)
	}
	teams = ranking.FilterByText(teams, query, ranking.TeamTextFields...)
	populateTeamLogoURLs(teams, s.uploader)
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError("get team", err)
	}

	if input.Name != nil {
		if team.Name, err = requireText("name", *input.Name); err != nil {
			return nil, err
		}
	}
	if input.College != nil {
		if team.College, err = requireText("college", *input.College); err != nil {
			return nil, err
		}
	}
	if input.CaptainID != nil {
		team.CaptainID = trimOptional(input.CaptainID)
	}
	if input.Stats != nil {
		if err := validateTeamStats(*input.Stats); err != nil {
			return nil, err
		}
		team.Stats = *input.Stats
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, mapTeamRepoError("update team", err)
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return mapTeamRepoError("get team", err)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return mapTeamRepoError("delete team", err)
	}
	if team.LogoKey != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			slog.Warn("failed to delete team logo", slog.String("team_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, id string, contentType string, r io.Reader) (*models.Team, error) {
	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError("get team", err)
	}

	oldKey := team.LogoKey
	newKey := storage.TeamLogoKey(team.ID, ext)
	if _, err := s.uploader.Upload(ctx, newKey, contentType, io.LimitReader(r, maxUploadSize)); err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return nil, ErrUploadUnavailable
		}
		return nil, fmt.Errorf("upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &newKey); err != nil {
		return nil, mapTeamRepoError("update team logo", err)
	}
	if oldKey != nil && *oldKey != newKey {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			slog.Warn("failed to delete old team logo", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	team.LogoKey = &newKey
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func mapTeamRepoError(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamInUse):
		return ErrTeamInUse
	}
	return storeUnavailable(op, err)
}
