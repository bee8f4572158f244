package models

import "time"

type PlayerRole string

const (
	RoleBatsman    PlayerRole = "batsman"
	RoleBowler     PlayerRole = "bowler"
	RoleAllRounder PlayerRole = "all-rounder"
)

func (r PlayerRole) Valid() bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder:
		return true
	}
	return false
}

// PlayerStats is the career line of a player. BestBowling is free text ("5/23").
type PlayerStats struct {
	Matches      int    `json:"matches" db:"matches"`
	Runs         int    `json:"runs" db:"runs"`
	Wickets      int    `json:"wickets" db:"wickets"`
	HighestScore int    `json:"highest_score" db:"highest_score"`
	BestBowling  string `json:"best_bowling" db:"best_bowling"`
}

type Player struct {
	ID                  string      `json:"id" db:"id"`
	Name                string      `json:"name" db:"name"`
	College             string      `json:"college" db:"college"`
	Age                 int         `json:"age" db:"age"`
	Role                PlayerRole  `json:"role" db:"role"`
	TeamID              *string     `json:"team_id,omitempty" db:"team_id"`
	Stats               PlayerStats `json:"stats" db:"-"`
	BattingStyle        *string     `json:"batting_style,omitempty" db:"batting_style"`
	BowlingStyle        *string     `json:"bowling_style,omitempty" db:"bowling_style"`
	LastPerformanceDate *time.Time  `json:"last_performance_date,omitempty" db:"last_performance_date"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
	CreatedBy           *string     `json:"created_by,omitempty" db:"created_by"`

	ImageKey *string `json:"-" db:"image_key"`
	ImageURL *string `json:"image_url,omitempty" db:"-"`
}
