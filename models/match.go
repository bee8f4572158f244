package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchUpcoming, MatchLive, MatchCompleted:
		return true
	}
	return false
}

// MatchResult is stored as JSONB in matches.result.
type MatchResult struct {
	WinnerID        *string `json:"winner_id,omitempty"`
	Team1Score      string  `json:"team1_score"`
	Team2Score      string  `json:"team2_score"`
	PlayerOfMatchID *string `json:"player_of_match_id,omitempty"`
}

// Value encodes the result as a JSON string; lib/pq would send []byte as bytea.
func (r MatchResult) Value() (driver.Value, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// DecodeMatchResult turns a nullable JSONB column into a result. NULL and
// empty input yield nil.
func DecodeMatchResult(raw []byte) (*MatchResult, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var r MatchResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, errors.New("malformed match result: " + err.Error())
	}
	return &r, nil
}

type Match struct {
	ID           string       `json:"id" db:"id"`
	TournamentID *string      `json:"tournament_id,omitempty" db:"tournament_id"`
	Team1ID      string       `json:"team1_id" db:"team1_id"`
	Team2ID      string       `json:"team2_id" db:"team2_id"`
	Date         time.Time    `json:"date" db:"date"`
	Venue        string       `json:"venue" db:"venue"`
	Status       MatchStatus  `json:"status" db:"status"`
	Result       *MatchResult `json:"result,omitempty" db:"result"`
	CreatedBy    *string      `json:"created_by,omitempty" db:"created_by"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`

	Team1 *Team `json:"team1,omitempty" db:"-"`
	Team2 *Team `json:"team2,omitempty" db:"-"`
}

// Involves reports whether the team played in the match.
func (m Match) Involves(teamID string) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}
