package ranking

import "github.com/Dosada05/college-cricket/models"

const (
	pointsForWin      = 2
	pointsForNoResult = 1
)

// BuildStandings computes the table of a tournament from its roster and the
// matches played in it. Only completed matches between two roster teams
// count. A completed match without a winner counts as a no-result. Rows are
// ranked by points; teams level on points keep roster order.
func BuildStandings(roster []models.Team, matches []models.Match) []models.TournamentStanding {
	rows := make([]models.TournamentStanding, len(roster))
	index := make(map[string]int, len(roster))
	for i := range roster {
		team := roster[i]
		rows[i] = models.TournamentStanding{TeamID: team.ID, Team: &team}
		index[team.ID] = i
	}

	for _, m := range matches {
		if m.Status != models.MatchCompleted {
			continue
		}
		i1, ok1 := index[m.Team1ID]
		i2, ok2 := index[m.Team2ID]
		if !ok1 || !ok2 || i1 == i2 {
			continue
		}
		rows[i1].Played++
		rows[i2].Played++

		winner := ""
		if m.Result != nil && m.Result.WinnerID != nil {
			winner = *m.Result.WinnerID
		}
		switch winner {
		case m.Team1ID:
			rows[i1].Won++
			rows[i1].Points += pointsForWin
			rows[i2].Lost++
		case m.Team2ID:
			rows[i2].Won++
			rows[i2].Points += pointsForWin
			rows[i1].Lost++
		default:
			rows[i1].NoResult++
			rows[i2].NoResult++
			rows[i1].Points += pointsForNoResult
			rows[i2].Points += pointsForNoResult
		}
	}

	ranked := TopByMetric(rows, func(s models.TournamentStanding) float64 { return float64(s.Points) }, 0)
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
