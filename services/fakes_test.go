package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Dosada05/college-cricket/events"
	"github.com/Dosada05/college-cricket/models"
	"github.com/Dosada05/college-cricket/repositories"
	"github.com/Dosada05/college-cricket/storage"
)

var baseTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type fakeTeamRepo struct {
	mu      sync.Mutex
	teams   []models.Team
	listErr error
	nextID  int
}

func newFakeTeamRepo(ids ...string) *fakeTeamRepo {
	r := &fakeTeamRepo{}
	for i, id := range ids {
		r.teams = append(r.teams, models.Team{
			ID:        id,
			Name:      "Team " + id,
			College:   "College " + id,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		})
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.teams {
		if existing.Name == t.Name && existing.College == t.College {
			return repositories.ErrTeamNameConflict
		}
	}
	r.nextID++
	t.ID = fmt.Sprintf("team-%d", r.nextID)
	t.CreatedAt = baseTime
	r.teams = append(r.teams, *t)
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.ID == id {
			team := t
			return &team, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) List(context.Context) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]models.Team(nil), r.teams...), nil
}

func (r *fakeTeamRepo) Update(_ context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.teams {
		if r.teams[i].ID == t.ID {
			r.teams[i] = *t
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id string, key *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.teams {
		if r.teams[i].ID == id {
			r.teams[i].LogoKey = key
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.teams {
		if r.teams[i].ID == id {
			r.teams = append(r.teams[:i], r.teams[i+1:]...)
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[string]*models.Tournament
	getCalls    int
	nextID      int
}

func newFakeTournamentRepo(ts ...models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: map[string]*models.Tournament{}}
	for i := range ts {
		t := ts[i]
		r.tournaments[t.ID] = &t
	}
	return r
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = fmt.Sprintf("tournament-%d", r.nextID)
	t.CreatedAt = baseTime
	cp := *t
	r.tournaments[t.ID] = &cp
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, status *models.TournamentStatus) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		if status == nil || t.Status == *status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	cp := *t
	r.tournaments[t.ID] = &cp
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

// fakeMembershipRepo behaves like tournament_teams: the unique pair and the
// team foreign key are checked and a batch is all-or-nothing.
type fakeMembershipRepo struct {
	mu         sync.Mutex
	rows       []models.Membership
	knownTeams map[string]bool
	calls      int
	listErr    error
	createErr  error
	nextID     int
}

func newFakeMembershipRepo(teams *fakeTeamRepo) *fakeMembershipRepo {
	known := map[string]bool{}
	for _, t := range teams.teams {
		known[t.ID] = true
	}
	return &fakeMembershipRepo{knownTeams: known}
}

func (r *fakeMembershipRepo) seed(tournamentID string, teamIDs ...string) {
	for _, id := range teamIDs {
		r.nextID++
		r.rows = append(r.rows, models.Membership{
			ID:           fmt.Sprintf("m-%d", r.nextID),
			TournamentID: tournamentID,
			TeamID:       id,
			JoinedAt:     baseTime.Add(time.Duration(r.nextID) * time.Second),
		})
	}
}

func (r *fakeMembershipRepo) teamIDs(tournamentID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, m := range r.rows {
		if m.TournamentID == tournamentID {
			ids = append(ids, m.TeamID)
		}
	}
	return ids
}

func (r *fakeMembershipRepo) ListByTournament(_ context.Context, tournamentID string) ([]models.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Membership, 0)
	for _, m := range r.rows {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) FindByTournamentAndTeam(_ context.Context, tournamentID, teamID string) (*models.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, m := range r.rows {
		if m.TournamentID == tournamentID && m.TeamID == teamID {
			found := m
			return &found, nil
		}
	}
	return nil, repositories.ErrMembershipNotFound
}

func (r *fakeMembershipRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, entries []*models.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createErr != nil {
		return r.createErr
	}
	pending := append([]models.Membership(nil), r.rows...)
	next := r.nextID
	for _, e := range entries {
		if !r.knownTeams[e.TeamID] {
			return repositories.ErrMembershipTeamInvalid
		}
		for _, m := range pending {
			if m.TournamentID == e.TournamentID && m.TeamID == e.TeamID {
				return repositories.ErrMembershipConflict
			}
		}
		next++
		row := *e
		row.ID = fmt.Sprintf("m-%d", next)
		row.JoinedAt = baseTime.Add(time.Duration(next) * time.Second)
		pending = append(pending, row)
	}
	r.rows = pending
	r.nextID = next
	return nil
}

func (r *fakeMembershipRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMembershipNotFound
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players []models.Player
	nextID  int
}

func (r *fakePlayerRepo) Create(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = fmt.Sprintf("player-%d", r.nextID)
	p.CreatedAt = baseTime
	r.players = append(r.players, *p)
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(_ context.Context, f repositories.PlayerFilter) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Player, 0)
	for _, p := range r.players {
		if f.Role != nil && p.Role != *f.Role {
			continue
		}
		if f.TeamID != nil && (p.TeamID == nil || *p.TeamID != *f.TeamID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.players {
		if r.players[i].ID == p.ID {
			r.players[i] = *p
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) UpdateImageKey(_ context.Context, id string, key *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.players {
		if r.players[i].ID == id {
			r.players[i].ImageKey = key
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.players {
		if r.players[i].ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

type fakeMatchRepo struct {
	mu       sync.Mutex
	matches  []models.Match
	nextID   int
	batchErr error
}

func (r *fakeMatchRepo) Create(_ context.Context, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = fmt.Sprintf("match-%d", r.nextID)
	r.matches = append(r.matches, *m)
	return nil
}

func (r *fakeMatchRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, batch []*models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.batchErr != nil {
		return r.batchErr
	}
	for _, m := range batch {
		r.nextID++
		m.ID = fmt.Sprintf("match-%d", r.nextID)
		m.CreatedAt = baseTime
		r.matches = append(r.matches, *m)
	}
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) List(_ context.Context, f repositories.MatchFilter) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Match, 0)
	for _, m := range r.matches {
		if f.Status != nil && m.Status != *f.Status {
			continue
		}
		if f.TournamentID != nil && (m.TournamentID == nil || *m.TournamentID != *f.TournamentID) {
			continue
		}
		if f.TeamID != nil && !m.Involves(*f.TeamID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].ID == m.ID {
			r.matches[i] = *m
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.matches {
		if r.matches[i].ID == id {
			r.matches = append(r.matches[:i], r.matches[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = baseTime
	r.users = append(r.users, *u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []events.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg events.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string]string{}}
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = string(b)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
