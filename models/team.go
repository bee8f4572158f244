package models

import "time"

// TeamStats holds the running match counters of a team.
type TeamStats struct {
	Matches int `json:"matches" db:"matches"`
	Won     int `json:"won" db:"won"`
	Lost    int `json:"lost" db:"lost"`
	Draw    int `json:"draw" db:"draw"`
}

type Team struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	College   string    `json:"college" db:"college"`
	CaptainID *string   `json:"captain_id,omitempty" db:"captain"`
	Stats     TeamStats `json:"stats" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	CreatedBy *string   `json:"created_by,omitempty" db:"created_by"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Players []Player `json:"players,omitempty" db:"-"`
}
