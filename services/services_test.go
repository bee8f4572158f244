package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/college-cricket/events"
	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/storage"
)

func strPtr(s string) *string { return &s }

func TestTeamServiceCreateAndList(t *testing.T) {
	teams := newFakeTeamRepo()
	svc := NewTeamService(teams, &fakePlayerRepo{}, storage.NewDisabledUploader())
	ctx := models.WithSessionUser(context.Background(), &models.SessionUser{ID: "user-1"})

	team, err := svc.CreateTeam(ctx, CreateTeamInput{Name: "  Strikers ", College: "DCE"})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if team.Name != "Strikers" || team.CreatedBy == nil || *team.CreatedBy != "user-1" {
		t.Errorf("unexpected team %+v", team)
	}
	if _, err := svc.CreateTeam(ctx, CreateTeamInput{Name: "Strikers", College: "DCE"}); !errors.Is(err, ErrTeamNameConflict) {
		t.Errorf("duplicate create err = %v", err)
	}
	if _, err := svc.CreateTeam(ctx, CreateTeamInput{Name: "", College: "DCE"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("blank name err = %v", err)
	}
	bad := &models.TeamStats{Matches: 1, Won: 2}
	if _, err := svc.CreateTeam(ctx, CreateTeamInput{Name: "X", College: "Y", Stats: bad}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("bad stats err = %v", err)
	}

	if _, err := svc.CreateTeam(ctx, CreateTeamInput{Name: "Royals", College: "NSIT"}); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	found, err := svc.ListTeams(ctx, "dce")
	if err != nil {
		t.Fatalf("ListTeams: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Strikers" {
		t.Errorf("ListTeams(dce) = %+v", found)
	}
}

func TestTeamServiceGetIncludesPlayers(t *testing.T) {
	teams := newFakeTeamRepo("A")
	players := &fakePlayerRepo{players: []models.Player{
		{ID: "p1", Name: "Rahul", TeamID: strPtr("A"), Role: models.RoleBatsman},
		{ID: "p2", Name: "Vikram", Role: models.RoleBowler},
	}}
	svc := NewTeamService(teams, players, storage.NewDisabledUploader())

	team, err := svc.GetTeam(context.Background(), "A")
	if err != nil {
		t.Fatalf("GetTeam: %v", err)
	}
	if len(team.Players) != 1 || team.Players[0].ID != "p1" {
		t.Errorf("players = %+v", team.Players)
	}
	if _, err := svc.GetTeam(context.Background(), "missing"); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("err = %v, want ErrTeamNotFound", err)
	}
}

func TestTeamServiceUploadLogo(t *testing.T) {
	teams := newFakeTeamRepo("A")
	uploader := newFakeUploader()
	svc := NewTeamService(teams, &fakePlayerRepo{}, uploader)
	ctx := context.Background()

	team, err := svc.UploadLogo(ctx, "A", "image/png", strings.NewReader("png"))
	if err != nil {
		t.Fatalf("UploadLogo: %v", err)
	}
	if team.LogoURL == nil || *team.LogoURL != "https://cdn.test/teams/A/logo.png" {
		t.Errorf("LogoURL = %v", team.LogoURL)
	}

	if _, err := svc.UploadLogo(ctx, "A", "image/jpeg", strings.NewReader("jpg")); err != nil {
		t.Fatalf("second UploadLogo: %v", err)
	}
	if !reflect.DeepEqual(uploader.deleted, []string{"teams/A/logo.png"}) {
		t.Errorf("old logo not deleted: %v", uploader.deleted)
	}

	if _, err := svc.UploadLogo(ctx, "A", "text/plain", strings.NewReader("x")); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("bad content type err = %v", err)
	}

	disabled := NewTeamService(teams, &fakePlayerRepo{}, storage.NewDisabledUploader())
	if _, err := disabled.UploadLogo(ctx, "A", "image/png", strings.NewReader("png")); !errors.Is(err, ErrUploadUnavailable) {
		t.Errorf("disabled uploader err = %v", err)
	}
}

func TestPlayerServiceValidationAndFilters(t *testing.T) {
	repo := &fakePlayerRepo{}
	svc := NewPlayerService(repo, storage.NewDisabledUploader())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePlayerInput
		ok    bool
	}{
		{"valid", CreatePlayerInput{Name: "Rahul", College: "DCE", Age: 20, Role: "Batsman"}, true},
		{"valid all-rounder", CreatePlayerInput{Name: "Arjun", College: "NSIT", Age: 21, Role: "all-rounder"}, true},
		{"unknown role", CreatePlayerInput{Name: "X", College: "Y", Age: 20, Role: "keeper"}, false},
		{"too young", CreatePlayerInput{Name: "X", College: "Y", Age: 5, Role: "bowler"}, false},
		{"highest above runs", CreatePlayerInput{Name: "X", College: "Y", Age: 20, Role: "bowler",
			Stats: &models.PlayerStats{Runs: 10, HighestScore: 50}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePlayer(ctx, tt.input)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("err = %v, want ErrValidationFailed", err)
			}
		})
	}

	batsmen, err := svc.ListPlayers(ctx, PlayerListFilter{Role: "batsman"})
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(batsmen) != 1 || batsmen[0].Name != "Rahul" {
		t.Errorf("batsmen = %+v", batsmen)
	}
	if _, err := svc.ListPlayers(ctx, PlayerListFilter{Role: "captain"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("unknown role filter err = %v", err)
	}
	byCollege, _ := svc.ListPlayers(ctx, PlayerListFilter{Query: "nsit"})
	if len(byCollege) != 1 || byCollege[0].Name != "Arjun" {
		t.Errorf("query nsit = %+v", byCollege)
	}
}

func TestTournamentServiceValidation(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), newFakeTeamRepo(), newFakeMembershipRepo(newFakeTeamRepo()), &fakeMatchRepo{})
	ctx := context.Background()
	start := baseTime
	end := baseTime.Add(72 * time.Hour)

	tests := []struct {
		name  string
		input CreateTournamentInput
		ok    bool
	}{
		{"valid", CreateTournamentInput{Name: "Cup", Location: "Delhi", StartDate: start, EndDate: end, TeamCount: 8}, true},
		{"ends before start", CreateTournamentInput{Name: "Cup", Location: "Delhi", StartDate: end, EndDate: start, TeamCount: 8}, false},
		{"too few teams", CreateTournamentInput{Name: "Cup", Location: "Delhi", StartDate: start, EndDate: end, TeamCount: 1}, false},
		{"unknown status", CreateTournamentInput{Name: "Cup", Location: "Delhi", StartDate: start, EndDate: end, TeamCount: 8, Status: "paused"}, false},
		{"missing location", CreateTournamentInput{Name: "Cup", StartDate: start, EndDate: end, TeamCount: 8}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CreateTournament(ctx, tt.input)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Status != models.TournamentUpcoming {
					t.Errorf("default status = %q", got.Status)
				}
				return
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("err = %v, want ErrValidationFailed", err)
			}
		})
	}

	if _, err := svc.ListTournaments(ctx, "", "paused"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("unknown status filter err = %v", err)
	}
}

func TestTournamentServiceStandings(t *testing.T) {
	teams := newFakeTeamRepo("A", "B", "C")
	memberships := newFakeMembershipRepo(teams)
	memberships.seed("T", "A", "B", "C")
	tid := "T"
	matches := &fakeMatchRepo{matches: []models.Match{
		{ID: "m1", TournamentID: &tid, Team1ID: "A", Team2ID: "B", Status: models.MatchCompleted,
			Result: &models.MatchResult{WinnerID: strPtr("B")}},
		{ID: "m2", TournamentID: &tid, Team1ID: "B", Team2ID: "C", Status: models.MatchUpcoming},
	}}
	svc := NewTournamentService(newFakeTournamentRepo(models.Tournament{ID: "T", TeamCount: 4}), teams, memberships, matches)

	standings, err := svc.GetStandings(context.Background(), "T")
	if err != nil {
		t.Fatalf("GetStandings: %v", err)
	}
	var order []string
	for _, s := range standings {
		order = append(order, s.TeamID)
	}
	if want := []string{"B", "A", "C"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if standings[0].Points != 2 || standings[0].Rank != 1 {
		t.Errorf("leader = %+v", standings[0])
	}

	if _, err := svc.GetStandings(context.Background(), "missing"); !errors.Is(err, ErrTournamentNotFound) {
		t.Errorf("err = %v, want ErrTournamentNotFound", err)
	}
}

func TestUpdateMatchReopenDropsResult(t *testing.T) {
	svc := NewMatchService(&fakeMatchRepo{}, newFakeTeamRepo("A", "B"), storage.NewDisabledUploader(), &recordingPublisher{})
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, CreateMatchInput{
		Team1ID: "A", Team2ID: "B", Date: baseTime, Venue: "Ground 1", Status: "completed",
		Result: &models.MatchResult{WinnerID: strPtr("A"), Team1Score: "180/4", Team2Score: "150/9"},
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}

	live := "live"
	if _, err := svc.UpdateMatch(ctx, m.ID, UpdateMatchInput{Status: &live}); err != nil {
		t.Fatalf("UpdateMatch to live: %v", err)
	}
	got, err := svc.GetMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got.Status != models.MatchLive || got.Result != nil {
		t.Errorf("status = %s result = %+v, want live without result", got.Status, got.Result)
	}

	// An explicit result still needs a completed match.
	upcoming := "upcoming"
	_, err = svc.UpdateMatch(ctx, m.ID, UpdateMatchInput{Status: &upcoming, Result: &models.MatchResult{Team1Score: "1/0"}})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}

	// Edits that keep the match completed leave the result alone.
	completed := "completed"
	result := &models.MatchResult{WinnerID: strPtr("B"), Team1Score: "120", Team2Score: "121/3"}
	if _, err := svc.UpdateMatch(ctx, m.ID, UpdateMatchInput{Status: &completed, Result: result}); err != nil {
		t.Fatalf("UpdateMatch to completed: %v", err)
	}
	venue := "Ground 2"
	updated, err := svc.UpdateMatch(ctx, m.ID, UpdateMatchInput{Venue: &venue})
	if err != nil {
		t.Fatalf("UpdateMatch venue: %v", err)
	}
	if updated.Result == nil || *updated.Result.WinnerID != "B" {
		t.Errorf("result = %+v, want winner B kept", updated.Result)
	}
}

func TestMatchServicePublishesToTournamentRoom(t *testing.T) {
	teams := newFakeTeamRepo("A", "B")
	publisher := &recordingPublisher{}
	svc := NewMatchService(&fakeMatchRepo{}, teams, storage.NewDisabledUploader(), publisher)
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, CreateMatchInput{
		TournamentID: strPtr("T"), Team1ID: "A", Team2ID: "B", Date: baseTime, Venue: "Ground 1",
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if publisher.count() != 1 || publisher.messages[0].Type != events.MatchUpdated {
		t.Fatalf("events = %+v", publisher.messages)
	}

	completed := "completed"
	result := &models.MatchResult{WinnerID: strPtr("A"), Team1Score: "180/4", Team2Score: "150/9"}
	if _, err := svc.UpdateMatch(ctx, m.ID, UpdateMatchInput{Status: &completed, Result: result}); err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}

	got, err := svc.GetMatch(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got.Team1 == nil || got.Team2 == nil || got.Result == nil || *got.Result.WinnerID != "A" {
		t.Errorf("unexpected match %+v", got)
	}

	// Friendlies outside a tournament publish nothing.
	before := publisher.count()
	if _, err := svc.CreateMatch(ctx, CreateMatchInput{Team1ID: "A", Team2ID: "B", Date: baseTime, Venue: "Ground 2"}); err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	if publisher.count() != before {
		t.Error("friendly match should not publish")
	}
}

func TestMatchServiceValidation(t *testing.T) {
	svc := NewMatchService(&fakeMatchRepo{}, newFakeTeamRepo("A", "B"), storage.NewDisabledUploader(), events.NopPublisher())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateMatchInput
	}{
		{"same team", CreateMatchInput{Team1ID: "A", Team2ID: "A", Date: baseTime, Venue: "G"}},
		{"no date", CreateMatchInput{Team1ID: "A", Team2ID: "B", Venue: "G"}},
		{"result before completion", CreateMatchInput{Team1ID: "A", Team2ID: "B", Date: baseTime, Venue: "G",
			Result: &models.MatchResult{}}},
		{"winner not playing", CreateMatchInput{Team1ID: "A", Team2ID: "B", Date: baseTime, Venue: "G", Status: "completed",
			Result: &models.MatchResult{WinnerID: strPtr("C")}}},
		{"unknown status", CreateMatchInput{Team1ID: "A", Team2ID: "B", Date: baseTime, Venue: "G", Status: "abandoned"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateMatch(ctx, tt.input); !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("err = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func leaderboardPlayers() *fakePlayerRepo {
	return &fakePlayerRepo{players: []models.Player{
		{ID: "p1", Name: "Rahul", College: "DCE", Stats: models.PlayerStats{Matches: 10, Runs: 450, Wickets: 2}},
		{ID: "p2", Name: "Vikram", College: "NSIT", Stats: models.PlayerStats{Matches: 8, Runs: 120, Wickets: 18}},
		{ID: "p3", Name: "Arjun", College: "DCE", Stats: models.PlayerStats{Matches: 0, Runs: 0, Wickets: 0}},
		{ID: "p4", Name: "Karan", College: "IPU", Stats: models.PlayerStats{Matches: 5, Runs: 450, Wickets: 9}},
	}}
}

func TestLeaderboardService(t *testing.T) {
	teams := newFakeTeamRepo("A", "B")
	teams.teams[0].Stats = models.TeamStats{Matches: 4, Won: 1}
	teams.teams[1].Stats = models.TeamStats{Matches: 4, Won: 3}
	svc := NewLeaderboardService(leaderboardPlayers(), teams, storage.NewDisabledUploader())
	ctx := context.Background()

	batsmen, err := svc.TopBatsmen(ctx, "", 3)
	if err != nil {
		t.Fatalf("TopBatsmen: %v", err)
	}
	// p1 and p4 tie on runs; catalog order decides.
	var ids []string
	for _, p := range batsmen {
		ids = append(ids, p.ID)
	}
	if want := []string{"p1", "p4", "p2"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("batsmen = %v, want %v", ids, want)
	}

	bowlers, _ := svc.TopBowlers(ctx, "dce", 0)
	if len(bowlers) != 2 || bowlers[0].ID != "p1" {
		t.Errorf("DCE bowlers = %+v", bowlers)
	}

	top, _ := svc.TopTeams(ctx, "", 1)
	if len(top) != 1 || top[0].ID != "B" {
		t.Errorf("top team = %+v", top)
	}

	board, err := svc.Rank(ctx, LeaderboardQuery{Kind: "players", Metric: "runs_per_match", Limit: 1})
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(board.Players) != 1 || board.Players[0].ID != "p4" {
		t.Errorf("runs_per_match leader = %+v", board.Players)
	}

	if _, err := svc.Rank(ctx, LeaderboardQuery{Kind: "players", Metric: "sixes"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("unknown metric err = %v", err)
	}
	if _, err := svc.Rank(ctx, LeaderboardQuery{Kind: "umpires"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("unknown kind err = %v", err)
	}
	teamBoard, err := svc.Rank(ctx, LeaderboardQuery{Kind: "teams"})
	if err != nil || teamBoard.Metric != "win_ratio" || teamBoard.Teams[0].ID != "B" {
		t.Errorf("team board = %+v, err %v", teamBoard, err)
	}
}

func TestDashboardService(t *testing.T) {
	matches := &fakeMatchRepo{matches: []models.Match{
		{ID: "m1", Team1ID: "A", Team2ID: "B", Status: models.MatchCompleted, Date: baseTime},
		{ID: "m2", Team1ID: "A", Team2ID: "B", Status: models.MatchLive, Date: baseTime.Add(time.Hour)},
		{ID: "m3", Team1ID: "A", Team2ID: "B", Status: models.MatchUpcoming, Date: baseTime.Add(48 * time.Hour)},
		{ID: "m4", Team1ID: "A", Team2ID: "B", Status: models.MatchUpcoming, Date: baseTime.Add(24 * time.Hour)},
	}}
	svc := NewDashboardService(leaderboardPlayers(), newFakeTeamRepo("A", "B"),
		newFakeTournamentRepo(models.Tournament{ID: "T"}), matches, storage.NewDisabledUploader())

	d, err := svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	want := models.DashboardStats{PlayersTotal: 4, TeamsTotal: 2, TournamentsTotal: 1, MatchesTotal: 4, LiveMatches: 1}
	if d.Stats != want {
		t.Errorf("stats = %+v, want %+v", d.Stats, want)
	}
	if len(d.TopBatsmen) != 3 || d.TopBowlers[0].ID != "p2" {
		t.Errorf("top players = %+v / %+v", d.TopBatsmen, d.TopBowlers)
	}
	if len(d.UpcomingMatches) != 2 || d.UpcomingMatches[0].ID != "m4" {
		t.Errorf("upcoming = %+v", d.UpcomingMatches)
	}
	if len(d.RecentMatches) != 1 || d.RecentMatches[0].ID != "m1" {
		t.Errorf("recent = %+v", d.RecentMatches)
	}
}

func TestAuthService(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: " Asha@Example.com ", Password: "wicket-keeper"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "asha@example.com" || user.PasswordHash != "" {
		t.Errorf("unexpected user %+v", user)
	}
	if _, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "another-pass"}); !errors.Is(err, ErrUserEmailConflict) {
		t.Errorf("duplicate register err = %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "b@example.com", Password: "short"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("short password err = %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "not-an-email", Password: "long-enough"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("bad email err = %v", err)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "wicket-keeper"}); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}

	got, err := svc.GetUser(ctx, user.ID)
	if err != nil || got.Name != "Asha" {
		t.Errorf("GetUser = %+v, %v", got, err)
	}
}
