package services

import (
	"context"
	"strings"

	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/ranking"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/storage"
)

const (
	LeaderboardPlayers = "players"
	LeaderboardTeams   = "teams"
)

// LeaderboardQuery selects what is ranked. An empty Metric picks the default
// for the kind: runs for players, win_ratio for teams.
type LeaderboardQuery struct {
	Kind   string
	Metric string
	Query  string
	Limit  int
}

// Leaderboard is a ranked list. Exactly one of Players and Teams is set.
type Leaderboard struct {
	Kind    string          `json:"kind"`
	Metric  string          `json:"metric"`
	Players []models.Player `json:"players,omitempty"`
	Teams   []models.Team   `json:"teams,omitempty"`
}

type LeaderboardService interface {
	TopBatsmen(ctx context.Context, query string, limit int) ([]models.Player, error)
	TopBowlers(ctx context.Context, query string, limit int) ([]models.Player, error)
	TopTeams(ctx context.Context, query string, limit int) ([]models.Team, error)
	Rank(ctx context.Context, q LeaderboardQuery) (*Leaderboard, error)
}

type leaderboardService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	uploader   storage.FileUploader
}

func NewLeaderboardService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, uploader storage.FileUploader) LeaderboardService {
	return &leaderboardService{playerRepo: playerRepo, teamRepo: teamRepo, uploader: uploader}
}

func (s *leaderboardService) rankPlayers(ctx context.Context, metric ranking.Metric[models.Player], query string, limit int) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, repositories.PlayerFilter{})
	if err != nil {
		return nil, storeUnavailable("list players", err)
	}
	players = ranking.FilterByText(players, query, ranking.PlayerTextFields...)
	top := ranking.TopByMetric(players, metric, limit)
	populatePlayerImageURLs(top, s.uploader)
	return top, nil
}

func (s *leaderboardService) rankTeams(ctx context.Context, metric ranking.Metric[models.Team], query string, limit int) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, storeUnavailable("list teams", err)
	}
	teams = ranking.FilterByText(teams, query, ranking.TeamTextFields...)
	top := ranking.TopByMetric(teams, metric, limit)
	populateTeamLogoURLs(top, s.uploader)
	return top, nil
}

func (s *leaderboardService) TopBatsmen(ctx context.Context, query string, limit int) ([]models.Player, error) {
	return s.rankPlayers(ctx, ranking.Runs, query, limit)
}

func (s *leaderboardService) TopBowlers(ctx context.Context, query string, limit int) ([]models.Player, error) {
	return s.rankPlayers(ctx, ranking.Wickets, query, limit)
}

func (s *leaderboardService) TopTeams(ctx context.Context, query string, limit int) ([]models.Team, error) {
	return s.rankTeams(ctx, ranking.WinRatio, query, limit)
}

func (s *leaderboardService) Rank(ctx context.Context, q LeaderboardQuery) (*Leaderboard, error) {
	kind := strings.ToLower(strings.TrimSpace(q.Kind))
	if kind == "" {
		kind = LeaderboardPlayers
	}
	metricName := strings.ToLower(strings.TrimSpace(q.Metric))

	switch kind {
	case LeaderboardPlayers:
		if metricName == "" {
			metricName = "runs"
		}
		metric, ok := ranking.PlayerMetric(metricName)
		if !ok {
			return nil, validationError("unknown player metric %q, expected one of %s", metricName, strings.Join(ranking.PlayerMetricNames(), ", "))
		}
		players, err := s.rankPlayers(ctx, metric, q.Query, q.Limit)
		if err != nil {
			return nil, err
		}
		return &Leaderboard{Kind: kind, Metric: metricName, Players: players}, nil

	case LeaderboardTeams:
		if metricName == "" {
			metricName = "win_ratio"
		}
		metric, ok := ranking.TeamMetric(metricName)
		if !ok {
			return nil, validationError("unknown team metric %q, expected one of %s", metricName, strings.Join(ranking.TeamMetricNames(), ", "))
		}
		teams, err := s.rankTeams(ctx, metric, q.Query, q.Limit)
		if err != nil {
			return nil, err
		}
		return &Leaderboard{Kind: kind, Metric: metricName, Teams: teams}, nil
	}
	return nil, validationError("unknown leaderboard kind %q", q.Kind)
}
