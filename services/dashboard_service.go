package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/ranking"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/storage"
)

const (
	dashboardTopPlayers = 3
	dashboardMatches    = 5
)

type DashboardService interface {
	GetDashboard(ctx context.Context) (*models.Dashboard, error)
}

type dashboardService struct {
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	uploader       storage.FileUploader
}

func NewDashboardService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	uploader storage.FileUploader,
) DashboardService {
	return &dashboardService{
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		uploader:       uploader,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	var (
		players     []models.Player
		teams       []models.Team
		tournaments []models.Tournament
		matches     []models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if players, err = s.playerRepo.List(gctx, repositories.PlayerFilter{}); err != nil {
			return storeUnavailable("list players", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if teams, err = s.teamRepo.List(gctx); err != nil {
			return storeUnavailable("list teams", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if tournaments, err = s.tournamentRepo.List(gctx, nil); err != nil {
			return storeUnavailable("list tournaments", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if matches, err = s.matchRepo.List(gctx, repositories.MatchFilter{}); err != nil {
			return storeUnavailable("list matches", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	live := 0
	for _, m := range matches {
		if m.Status == models.MatchLive {
			live++
		}
	}

	batsmen := ranking.TopByMetric(players, ranking.Runs, dashboardTopPlayers)
	bowlers := ranking.TopByMetric(players, ranking.Wickets, dashboardTopPlayers)
	populatePlayerImageURLs(batsmen, s.uploader)
	populatePlayerImageURLs(bowlers, s.uploader)

	return &models.Dashboard{
		Stats: models.DashboardStats{
			PlayersTotal:     len(players),
			TeamsTotal:       len(teams),
			TournamentsTotal: len(tournaments),
			MatchesTotal:     len(matches),
			LiveMatches:      live,
		},
		TopBatsmen:      batsmen,
		TopBowlers:      bowlers,
		UpcomingMatches: ranking.UpcomingMatches(matches, dashboardMatches),
		RecentMatches:   ranking.RecentMatches(matches, dashboardMatches),
	}, nil
}
