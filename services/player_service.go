package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/ranking"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/storage"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context, filter PlayerListFilter) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, contentType string, r io.Reader) (*models.Player, error)
}

type PlayerListFilter struct {
	Query  string
	Role   string
	TeamID string
}

type CreatePlayerInput struct {
	Name                string              `json:"name"`
	College             string              `json:"college"`
	Age                 int                 `json:"age"`
	Role                string              `json:"role"`
	TeamID              *string             `json:"team_id,omitempty"`
	BattingStyle        *string             `json:"batting_style,omitempty"`
	BowlingStyle        *string             `json:"bowling_style,omitempty"`
	LastPerformanceDate *time.Time          `json:"last_performance_date,omitempty"`
	Stats               *models.PlayerStats `json:"stats,omitempty"`
}

type UpdatePlayerInput struct {
	Name                *string             `json:"name,omitempty"`
	College             *string             `json:"college,omitempty"`
	Age                 *int                `json:"age,omitempty"`
	Role                *string             `json:"role,omitempty"`
	TeamID              *string             `json:"team_id,omitempty"`
	BattingStyle        *string             `json:"batting_style,omitempty"`
	BowlingStyle        *string             `json:"bowling_style,omitempty"`
	LastPerformanceDate *time.Time          `json:"last_performance_date,omitempty"`
	Stats               *models.PlayerStats `json:"stats,omitempty"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{playerRepo: playerRepo, uploader: uploader}
}

// ParsePlayerRole accepts a role from client input.
func ParsePlayerRole(raw string) (models.PlayerRole, error) {
	role := models.PlayerRole(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", validationError("unknown player role %q", raw)
	}
	return role, nil
}

func validatePlayerStats(st models.PlayerStats) error {
	if st.Matches < 0 || st.Runs < 0 || st.Wickets < 0 || st.HighestScore < 0 {
		return validationError("player statistics cannot be negative")
	}
	if st.HighestScore > st.Runs {
		return validationError("highest score cannot exceed total runs")
	}
	return nil
}

func validateAge(age int) error {
	if age < 10 || age > 100 {
		return validationError("age must be between 10 and 100")
	}
	return nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name, err := requireText("name", input.Name)
	if err != nil {
		return nil, err
	}
	college, err := requireText("college", input.College)
	if err != nil {
		return nil, err
	}
	if err := validateAge(input.Age); err != nil {
		return nil, err
	}
	role, err := ParsePlayerRole(input.Role)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:                name,
		College:             college,
		Age:                 input.Age,
		Role:                role,
		TeamID:              trimOptional(input.TeamID),
		BattingStyle:        trimOptional(input.BattingStyle),
		BowlingStyle:        trimOptional(input.BowlingStyle),
		LastPerformanceDate: input.LastPerformanceDate,
		CreatedBy:           actorID(ctx),
	}
	if input.Stats != nil {
		if err := validatePlayerStats(*input.Stats); err != nil {
			return nil, err
		}
		player.Stats = *input.Stats
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapPlayerRepoError("create player", err)
	}
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError("get player", err)
	}
	populatePlayerImageURL(player, s.uploader)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, filter PlayerListFilter) ([]models.Player, error) {
	var repoFilter repositories.PlayerFilter
	if strings.TrimSpace(filter.Role) != "" {
		role, err := ParsePlayerRole(filter.Role)
		if err != nil {
			return nil, err
		}
		repoFilter.Role = &role
	}
	if teamID := strings.TrimSpace(filter.TeamID); teamID != "" {
		repoFilter.TeamID = &teamID
	}

	players, err := s.playerRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, storeUnavailable("list players", err)
	}
	players = ranking.FilterByText(players, filter.Query, ranking.PlayerTextFields...)
	populatePlayerImageURLs(players, s.uploader)
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id string, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError("get player", err)
	}

	if input.Name != nil {
		if player.Name, err = requireText("name", *input.Name); err != nil {
			return nil, err
		}
	}
	if input.College != nil {
		if player.College, err = requireText("college", *input.College); err != nil {
			return nil, err
		}
	}
	if input.Age != nil {
		if err := validateAge(*input.Age); err != nil {
			return nil, err
		}
		player.Age = *input.Age
	}
	if input.Role != nil {
		if player.Role, err = ParsePlayerRole(*input.Role); err != nil {
			return nil, err
		}
	}
	if input.TeamID != nil {
		player.TeamID = trimOptional(input.TeamID)
	}
	if input.BattingStyle != nil {
		player.BattingStyle = trimOptional(input.BattingStyle)
	}
	if input.BowlingStyle != nil {
		player.BowlingStyle = trimOptional(input.BowlingStyle)
	}
	if input.LastPerformanceDate != nil {
		player.LastPerformanceDate = input.LastPerformanceDate
	}
	if input.Stats != nil {
		if err := validatePlayerStats(*input.Stats); err != nil {
			return nil, err
		}
		player.Stats = *input.Stats
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, mapPlayerRepoError("update player", err)
	}
	populatePlayerImageURL(player, s.uploader)
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id string) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return mapPlayerRepoError("get player", err)
	}
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapPlayerRepoError("delete player", err)
	}
	if player.ImageKey != nil {
		if err := s.uploader.Delete(ctx, *player.ImageKey); err != nil {
			slog.Warn("failed to delete player image", slog.String("player_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *playerService) UploadImage(ctx context.Context, id string, contentType string, r io.Reader) (*models.Player, error) {
	ext, err := storage.ExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError("get player", err)
	}

	oldKey := player.ImageKey
	newKey := storage.PlayerImageKey(player.ID, ext)
	if _, err := s.uploader.Upload(ctx, newKey, contentType, io.LimitReader(r, maxUploadSize)); err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return nil, ErrUploadUnavailable
		}
		return nil, fmt.Errorf("upload player image: %w", err)
	}

	if err := s.playerRepo.UpdateImageKey(ctx, player.ID, &newKey); err != nil {
		return nil, mapPlayerRepoError("update player image", err)
	}
	if oldKey != nil && *oldKey != newKey {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			slog.Warn("failed to delete old player image", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	player.ImageKey = &newKey
	populatePlayerImageURL(player, s.uploader)
	return player, nil
}

func mapPlayerRepoError(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerTeamInvalid):
		return fmt.Errorf("%w: %w", ErrTeamNotFound, err)
	}
	return storeUnavailable(op, err)
}
