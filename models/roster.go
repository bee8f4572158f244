// File: models/roster.go
package models

import "time"

// Membership is one row of tournament_teams: a team entered into a tournament.
type Membership struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	TeamID       string    `json:"team_id" db:"team_id"`
	JoinedAt     time.Time `json:"joined_at" db:"joined_at"`
	CreatedBy    *string   `json:"created_by,omitempty" db:"created_by"`
}

// RosterView is the roster of a tournament as seen by clients. Teams is always
// computed from memberships at read time.
type RosterView struct {
	Tournament *Tournament `json:"tournament"`
	Teams      []Team      `json:"teams"`
	Count      int         `json:"count"`
	Capacity   int         `json:"capacity"`
	IsFull     bool        `json:"is_full"`
}
