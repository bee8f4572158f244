package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/college-cricket/events"
	"github.com/Dosada05/college-cricket/fixtures"
	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/repositories"
)

const day = 24 * time.Hour

// GenerateFixturesInput tunes the league schedule. Zero values fall back to one
// leg, the tournament start date, one day between rounds and the tournament
// location.
type GenerateFixturesInput struct {
	Legs              int        `json:"legs,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	DaysBetweenRounds int        `json:"days_between_rounds,omitempty"`
	Venue             string     `json:"venue,omitempty"`
}

type FixtureService interface {
	GenerateFixtures(ctx context.Context, tournamentID string, input GenerateFixturesInput) ([]models.Match, error)
}

type fixtureService struct {
	tournamentRepo repositories.TournamentRepository
	membershipRepo repositories.MembershipRepository
	matchRepo      repositories.MatchRepository
	publisher      events.Publisher
}

func NewFixtureService(
	tournamentRepo repositories.TournamentRepository,
	membershipRepo repositories.MembershipRepository,
	matchRepo repositories.MatchRepository,
	publisher events.Publisher,
) FixtureService {
	return &fixtureService{
		tournamentRepo: tournamentRepo,
		membershipRepo: membershipRepo,
		matchRepo:      matchRepo,
		publisher:      publisher,
	}
}

// GenerateFixtures schedules a round robin between the registered teams in the
// order they joined. It refuses to run when the tournament already has matches.
func (s *fixtureService) GenerateFixtures(ctx context.Context, tournamentID string, input GenerateFixturesInput) ([]models.Match, error) {
	legs := input.Legs
	if legs == 0 {
		legs = 1
	}
	generator, err := fixtures.NewRoundRobinGenerator(legs)
	if err != nil {
		return nil, validationError("%v", err)
	}
	if input.DaysBetweenRounds < 0 {
		return nil, validationError("days_between_rounds must not be negative")
	}
	gap := input.DaysBetweenRounds
	if gap == 0 {
		gap = 1
	}

	var (
		tournament  *models.Tournament
		memberships []models.Membership
		existing    []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gctx, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return storeUnavailable("get tournament", err)
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		m, err := s.membershipRepo.ListByTournament(gctx, tournamentID)
		if err != nil {
			return storeUnavailable("list memberships", err)
		}
		memberships = m
		return nil
	})
	g.Go(func() error {
		m, err := s.matchRepo.List(gctx, repositories.MatchFilter{TournamentID: &tournamentID})
		if err != nil {
			return storeUnavailable("list matches", err)
		}
		existing = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %d scheduled", ErrFixturesExist, len(existing))
	}

	teamIDs := make([]string, len(memberships))
	for i, m := range memberships {
		teamIDs[i] = m.TeamID
	}
	pairings, err := generator.Generate(teamIDs)
	if err != nil {
		return nil, validationError("%v", err)
	}

	start := tournament.StartDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	venue := strings.TrimSpace(input.Venue)
	if venue == "" {
		venue = tournament.Location
	}

	createdBy := actorID(ctx)
	batch := make([]*models.Match, len(pairings))
	for i, p := range pairings {
		tid := tournament.ID
		batch[i] = &models.Match{
			TournamentID: &tid,
			Team1ID:      p.HomeID,
			Team2ID:      p.AwayID,
			Date:         start.Add(time.Duration((p.Round-1)*gap) * day),
			Venue:        venue,
			Status:       models.MatchUpcoming,
			CreatedBy:    createdBy,
		}
	}

	if err := s.matchRepo.CreateBatch(ctx, nil, batch); err != nil {
		return nil, mapMatchRepoError("create fixtures", err)
	}

	matches := make([]models.Match, len(batch))
	for i, m := range batch {
		matches[i] = *m
	}
	publish(ctx, s.publisher, events.NewTournamentMessage(events.MatchUpdated, tournament.ID, map[string]interface{}{
		"generated": len(matches),
	}))
	return matches, nil
}
