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
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchReferenceInvalid = errors.New("match references a team or tournament that does not exist")
)

type MatchFilter struct {
	Status       *models.MatchStatus
	TournamentID *string
	TeamID       *string
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, team1_id, team2_id, date, venue, status, result, created_by, created_at`

func scanMatch(row rowScanner, m *models.Match) error {
	var (
		status string
		result []byte
	)
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Team1ID, &m.Team2ID, &m.Date, &m.Venue, &status,
		&result, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		return err
	}
	m.Status = models.MatchStatus(status)
	if !m.Status.Valid() {
		warnUnknownEnum("matches", "status", m.ID, status)
		m.Status = models.MatchUpcoming
	}
	m.Result, err = models.DecodeMatchResult(result)
	return err
}

// resultArg keeps a nil result as SQL NULL instead of a JSON "null".
func resultArg(r *models.MatchResult) interface{} {
	if r == nil {
		return nil
	}
	return *r
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, team1_id, team2_id, date, venue, status, result, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.TournamentID, m.Team1ID, m.Team2ID, m.Date, m.Venue, string(m.Status), resultArg(m.Result), m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
	return handleMatchError(err)
}

// CreateBatch inserts all matches or none. A caller-supplied *sql.Tx is used as is.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) (err error) {
	if len(matches) == 0 {
		return nil
	}

	tx, isExternalTx := exec.(*sql.Tx)
	if !isExternalTx {
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("CreateBatch failed to begin transaction: %w", err)
		}
		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback()
				panic(p)
			} else if err != nil {
				_ = tx.Rollback()
			} else {
				err = tx.Commit()
			}
		}()
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (tournament_id, team1_id, team2_id, date, venue, status, result, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		err = stmt.QueryRowContext(ctx,
			m.TournamentID, m.Team1ID, m.Team2ID, m.Date, m.Venue, string(m.Status), resultArg(m.Result), m.CreatedBy,
		).Scan(&m.ID, &m.CreatedAt)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for %s vs %s: %w", m.Team1ID, m.Team2ID, handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	m := &models.Match{}
	if err := scanMatch(r.db.QueryRowContext(ctx, query, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]models.Match, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.TournamentID != nil {
		args = append(args, *filter.TournamentID)
		conditions = append(conditions, fmt.Sprintf("tournament_id = $%d", len(args)))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		conditions = append(conditions, fmt.Sprintf("(team1_id = $%d OR team2_id = $%d)", len(args), len(args)))
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET
			tournament_id = $1, team1_id = $2, team2_id = $3, date = $4,
			venue = $5, status = $6, result = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		m.TournamentID, m.Team1ID, m.Team2ID, m.Date, m.Venue, string(m.Status), resultArg(m.Result), m.ID,
	)
	if err != nil {
		return handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := pqError(err); ok && pqErr.Code == pqForeignKeyViolation {
		return ErrMatchReferenceInvalid
	}
	return fmt.Errorf("match query failed: %w", err)
}
