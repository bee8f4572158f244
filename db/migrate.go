package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent and run in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(120) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email))`,

		`CREATE TABLE IF NOT EXISTS teams (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(120) NOT NULL,
			college VARCHAR(200) NOT NULL,
			captain UUID,
			matches INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			lost INTEGER NOT NULL DEFAULT 0,
			draw INTEGER NOT NULL DEFAULT 0,
			logo_key TEXT,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT teams_name_college_key UNIQUE (name, college)
		)`,

		`CREATE TABLE IF NOT EXISTS players (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(120) NOT NULL,
			college VARCHAR(200) NOT NULL,
			age INTEGER NOT NULL CHECK (age > 0),
			role VARCHAR(20) NOT NULL,
			team_id UUID REFERENCES teams(id) ON DELETE SET NULL,
			matches INTEGER NOT NULL DEFAULT 0,
			runs INTEGER NOT NULL DEFAULT 0,
			wickets INTEGER NOT NULL DEFAULT 0,
			highest_score INTEGER NOT NULL DEFAULT 0,
			best_bowling VARCHAR(20) NOT NULL DEFAULT '',
			batting_style VARCHAR(40),
			bowling_style VARCHAR(40),
			last_performance_date TIMESTAMPTZ,
			image_key TEXT,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_players_team_id ON players(team_id)`,

		`CREATE TABLE IF NOT EXISTS tournaments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(160) NOT NULL,
			description TEXT,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			location VARCHAR(200) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'upcoming',
			team_count INTEGER NOT NULL DEFAULT 0,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS tournament_teams (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			tournament_id UUID NOT NULL,
			team_id UUID NOT NULL,
			joined_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			CONSTRAINT tournament_teams_tournament_id_fkey FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE,
			CONSTRAINT tournament_teams_team_id_fkey FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE,
			CONSTRAINT tournament_teams_tournament_id_team_id_key UNIQUE (tournament_id, team_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tournament_teams_tournament_id ON tournament_teams(tournament_id)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			tournament_id UUID REFERENCES tournaments(id) ON DELETE SET NULL,
			team1_id UUID NOT NULL REFERENCES teams(id) ON DELETE RESTRICT,
			team2_id UUID NOT NULL REFERENCES teams(id) ON DELETE RESTRICT,
			date TIMESTAMPTZ NOT NULL,
			venue VARCHAR(200) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'upcoming',
			result JSONB,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (team1_id <> team2_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_tournament_id ON matches(tournament_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date)`,
	}

	for _, migration := range migrations {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
