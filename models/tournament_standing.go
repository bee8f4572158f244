package models

// TournamentStanding is one computed row of a tournament table. It is never
// persisted; standings are rebuilt from completed matches on each request.
type TournamentStanding struct {
	Rank     int    `json:"rank"`
	TeamID   string `json:"team_id"`
	Team     *Team  `json:"team,omitempty"`
	Played   int    `json:"played"`
	Won      int    `json:"won"`
	Lost     int    `json:"lost"`
	NoResult int    `json:"no_result"`
	Points   int    `json:"points"`
}
