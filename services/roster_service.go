package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/college-cricket/events"
	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/roster"
	"github.com/Dosada05/college-cricket/storage"
)

// RosterService keeps a tournament's roster in step with tournament_teams.
// Mutations return only an error; callers re-read the roster afterwards.
type RosterService interface {
	GetRoster(ctx context.Context, tournamentID string) (*models.RosterView, error)
	ListAvailableTeams(ctx context.Context, tournamentID string) ([]models.Team, error)
	AddTeams(ctx context.Context, tournamentID string, teamIDs []string) error
	RemoveTeam(ctx context.Context, tournamentID, teamID string) error
}

type rosterService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	membershipRepo repositories.MembershipRepository
	uploader       storage.FileUploader
	publisher      events.Publisher
}

func NewRosterService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	uploader storage.FileUploader,
	publisher events.Publisher,
) RosterService {
	return &rosterService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		uploader:       uploader,
		publisher:      publisher,
	}
}

type rosterSnapshot struct {
	tournament  *models.Tournament
	teams       []models.Team
	memberships []models.Membership
}

// snapshot loads the tournament, the team catalog and the memberships
// concurrently. Nothing is computed until all three reads have finished.
func (s *rosterService) snapshot(ctx context.Context, tournamentID string) (*rosterSnapshot, error) {
	var snap rosterSnapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return storeUnavailable("get tournament", err)
		}
		snap.tournament = t
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.List(gctx)
		if err != nil {
			return storeUnavailable("list teams", err)
		}
		snap.teams = teams
		return nil
	})
	g.Go(func() error {
		memberships, err := s.membershipRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return storeUnavailable("list memberships", err)
		}
		snap.memberships = memberships
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *rosterService) GetRoster(ctx context.Context, tournamentID string) (*models.RosterView, error) {
	snap, err := s.snapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	teams := roster.Project(snap.teams, snap.memberships)
	populateTeamLogoURLs(teams, s.uploader)

	capacity := snap.tournament.TeamCount
	return &models.RosterView{
		Tournament: snap.tournament,
		Teams:      teams,
		Count:      len(teams),
		Capacity:   capacity,
		IsFull:     capacity > 0 && len(teams) >= capacity,
	}, nil
}

func (s *rosterService) ListAvailableTeams(ctx context.Context, tournamentID string) ([]models.Team, error) {
	snap, err := s.snapshot(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	available := roster.AvailableTeams(snap.teams, snap.memberships)
	populateTeamLogoURLs(available, s.uploader)
	return available, nil
}

func (s *rosterService) AddTeams(ctx context.Context, tournamentID string, teamIDs []string) error {
	ids, err := roster.ValidateSelection(teamIDs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return storeUnavailable("get tournament", err)
	}

	existing, err := s.membershipRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return storeUnavailable("list memberships", err)
	}
	if conflicts := roster.Conflicts(ids, existing); len(conflicts) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateMembership, strings.Join(conflicts, ", "))
	}

	createdBy := actorID(ctx)
	entries := make([]*models.Membership, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, &models.Membership{
			TournamentID: tournamentID,
			TeamID:       id,
			CreatedBy:    createdBy,
		})
	}

	if err := s.membershipRepo.CreateBatch(ctx, nil, entries); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMembershipConflict):
			return fmt.Errorf("%w: %w", ErrDuplicateMembership, err)
		case errors.Is(err, repositories.ErrMembershipTeamInvalid):
			return fmt.Errorf("%w: %w", ErrTeamNotFound, err)
		case errors.Is(err, repositories.ErrMembershipTournamentInvalid):
			return ErrTournamentNotFound
		case errors.Is(err, repositories.ErrMembershipMalformedID):
			return fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return storeUnavailable("add teams", err)
	}

	publish(ctx, s.publisher, events.NewTournamentMessage(events.RosterUpdated, tournamentID, map[string]interface{}{
		"added": ids,
	}))
	return nil
}

// RemoveTeam reads the membership and then deletes it, in that order. A
// missing row yields ErrMembershipNotFound and a roster refresh event, so a
// second call for the same pair changes nothing.
func (s *rosterService) RemoveTeam(ctx context.Context, tournamentID, teamID string) error {
	tournamentID = strings.TrimSpace(tournamentID)
	teamID = strings.TrimSpace(teamID)
	if tournamentID == "" || teamID == "" {
		return validationError("tournament id and team id are required")
	}

	membership, err := s.membershipRepo.FindByTournamentAndTeam(ctx, tournamentID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			s.notifyStale(ctx, tournamentID)
			return ErrMembershipNotFound
		}
		return storeUnavailable("find membership", err)
	}

	if err := s.membershipRepo.Delete(ctx, membership.ID); err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			s.notifyStale(ctx, tournamentID)
			return ErrMembershipNotFound
		}
		return storeUnavailable("remove team", err)
	}

	publish(ctx, s.publisher, events.NewTournamentMessage(events.RosterUpdated, tournamentID, map[string]interface{}{
		"removed": teamID,
	}))
	return nil
}

func (s *rosterService) notifyStale(ctx context.Context, tournamentID string) {
	publish(ctx, s.publisher, events.NewTournamentMessage(events.RosterUpdated, tournamentID, map[string]interface{}{
		"refresh": true,
	}))
}
