package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/college-cricket/models"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player references a team that does not exist")
)

// PlayerFilter narrows List. Zero values mean "no filter".
type PlayerFilter struct {
	TeamID *string
	Role   *models.PlayerRole
}

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context, filter PlayerFilter) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdateImageKey(ctx context.Context, playerID string, imageKey *string) error
	Delete(ctx context.Context, id string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, college, age, role, team_id, matches, runs, wickets,
	highest_score, best_bowling, batting_style, bowling_style, last_performance_date,
	image_key, created_by, created_at`

func scanPlayer(row rowScanner, p *models.Player) error {
	var role string
	err := row.Scan(
		&p.ID, &p.Name, &p.College, &p.Age, &role, &p.TeamID,
		&p.Stats.Matches, &p.Stats.Runs, &p.Stats.Wickets,
		&p.Stats.HighestScore, &p.Stats.BestBowling,
		&p.BattingStyle, &p.BowlingStyle, &p.LastPerformanceDate,
		&p.ImageKey, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return err
	}
	p.Role = models.PlayerRole(role)
	if !p.Role.Valid() {
		warnUnknownEnum("players", "role", p.ID, role)
		p.Role = models.RoleBatsman
	}
	return nil
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (name, college, age, role, team_id, matches, runs, wickets,
			highest_score, best_bowling, batting_style, bowling_style, last_performance_date,
			image_key, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.College, p.Age, string(p.Role), p.TeamID,
		p.Stats.Matches, p.Stats.Runs, p.Stats.Wickets,
		p.Stats.HighestScore, p.Stats.BestBowling,
		p.BattingStyle, p.BowlingStyle, p.LastPerformanceDate,
		p.ImageKey, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p := &models.Player{}
	if err := scanPlayer(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, filter PlayerFilter) ([]models.Player, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		conditions = append(conditions, fmt.Sprintf("team_id = $%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}

	query := `SELECT ` + playerColumns + ` FROM players`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := `
		UPDATE players SET
			name = $1, college = $2, age = $3, role = $4, team_id = $5,
			matches = $6, runs = $7, wickets = $8, highest_score = $9, best_bowling = $10,
			batting_style = $11, bowling_style = $12, last_performance_date = $13
		WHERE id = $14`
	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.College, p.Age, string(p.Role), p.TeamID,
		p.Stats.Matches, p.Stats.Runs, p.Stats.Wickets,
		p.Stats.HighestScore, p.Stats.BestBowling,
		p.BattingStyle, p.BowlingStyle, p.LastPerformanceDate,
		p.ID,
	)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateImageKey(ctx context.Context, playerID string, imageKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET image_key = $1 WHERE id = $2`, imageKey, playerID)
	if err != nil {
		return fmt.Errorf("failed to update player image key: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := pqError(err); ok && pqErr.Code == pqForeignKeyViolation {
		return ErrPlayerTeamInvalid
	}
	return fmt.Errorf("player query failed: %w", err)
}
