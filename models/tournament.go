package models

import "time"

// TournamentStatus mirrors the status column of the tournaments table.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentOngoing   TournamentStatus = "ongoing"
	TournamentCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentUpcoming, TournamentOngoing, TournamentCompleted:
		return true
	}
	return false
}

// Tournament представляет турнир.
type Tournament struct {
	ID          string           `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	StartDate   time.Time        `json:"start_date" db:"start_date"`
	EndDate     time.Time        `json:"end_date" db:"end_date"`
	Location    string           `json:"location" db:"location"`
	Status      TournamentStatus `json:"status" db:"status"`
	TeamCount   int              `json:"team_count" db:"team_count"`
	CreatedBy   *string          `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty" db:"updated_at"`
}
