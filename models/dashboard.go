package models

type DashboardStats struct {
	PlayersTotal     int `json:"players_total"`
	TeamsTotal       int `json:"teams_total"`
	TournamentsTotal int `json:"tournaments_total"`
	MatchesTotal     int `json:"matches_total"`
	LiveMatches      int `json:"live_matches"`
}

// Dashboard is the landing page summary.
type Dashboard struct {
	Stats           DashboardStats `json:"stats"`
	TopBatsmen      []Player       `json:"top_batsmen"`
	TopBowlers      []Player       `json:"top_bowlers"`
	UpcomingMatches []Match        `json:"upcoming_matches"`
	RecentMatches   []Match        `json:"recent_matches"`
}
