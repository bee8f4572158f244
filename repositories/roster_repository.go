// File: repositories/roster_repository.go
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/college-cricket/models"
)

var (
	ErrMembershipNotFound          = errors.New("membership not found")
	ErrMembershipConflict          = errors.New("team is already entered into the tournament")
	ErrMembershipTeamInvalid       = errors.New("membership references a team that does not exist")
	ErrMembershipTournamentInvalid = errors.New("membership references a tournament that does not exist")
	ErrMembershipMalformedID       = errors.New("membership id is not a valid uuid")
)

// MembershipRepository is the store contract for tournament_teams.
type MembershipRepository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Membership, error)
	FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID string) (*models.Membership, error)
	CreateBatch(ctx context.Context, exec SQLExecutor, entries []*models.Membership) error
	Delete(ctx context.Context, id string) error
}

type postgresMembershipRepository struct {
	db *sql.DB
}

func NewPostgresMembershipRepository(db *sql.DB) MembershipRepository {
	return &postgresMembershipRepository{db: db}
}

const membershipColumns = `id, tournament_id, team_id, joined_at, created_by`

func scanMembership(row rowScanner, m *models.Membership) error {
	return row.Scan(&m.ID, &m.TournamentID, &m.TeamID, &m.JoinedAt, &m.CreatedBy)
}

// ListByTournament returns memberships in the order teams joined.
func (r *postgresMembershipRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM tournament_teams WHERE tournament_id = $1 ORDER BY joined_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships for tournament %s: %w", tournamentID, err)
	}
	defer rows.Close()

	memberships := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		if err := scanMembership(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}
	return memberships, nil
}

func (r *postgresMembershipRepository) FindByTournamentAndTeam(ctx context.Context, tournamentID, teamID string) (*models.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM tournament_teams WHERE tournament_id = $1 AND team_id = $2`
	m := &models.Membership{}
	if err := scanMembership(r.db.QueryRowContext(ctx, query, tournamentID, teamID), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership (%s, %s): %w", tournamentID, teamID, err)
	}
	return m, nil
}

// CreateBatch inserts all entries or none. When exec is a *sql.Tx the caller
// owns the transaction; otherwise one is opened here.
func (r *postgresMembershipRepository) CreateBatch(ctx context.Context, exec SQLExecutor, entries []*models.Membership) (err error) {
	if len(entries) == 0 {
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
		INSERT INTO tournament_teams (tournament_id, team_id, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at`)
	if err != nil {
		return fmt.Errorf("CreateBatch failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		err = stmt.QueryRowContext(ctx, entry.TournamentID, entry.TeamID, entry.CreatedBy).Scan(&entry.ID, &entry.JoinedAt)
		if err != nil {
			err = handleMembershipError(err)
			return fmt.Errorf("CreateBatch failed for team %s: %w", entry.TeamID, err)
		}
	}
	return nil
}

func (r *postgresMembershipRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournament_teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete membership %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrMembershipNotFound)
}

func handleMembershipError(err error) error {
	pqErr, ok := pqError(err)
	if !ok {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return ErrMembershipConflict
	case pqForeignKeyViolation:
		if pqErr.Constraint == "tournament_teams_tournament_id_fkey" {
			return ErrMembershipTournamentInvalid
		}
		return ErrMembershipTeamInvalid
	case pqInvalidTextRepr:
		return ErrMembershipMalformedID
	}
	return err
}
