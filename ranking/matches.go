package ranking

import (
	"slices"

	"github.com/Dosada05/college-cricket/models"
)

// UpcomingMatches returns the upcoming matches, soonest first.
func UpcomingMatches(matches []models.Match, limit int) []models.Match {
	return byStatusAndDate(matches, models.MatchUpcoming, false, limit)
}

// RecentMatches returns the completed matches, most recent first.
func RecentMatches(matches []models.Match, limit int) []models.Match {
	return byStatusAndDate(matches, models.MatchCompleted, true, limit)
}

func byStatusAndDate(matches []models.Match, status models.MatchStatus, newestFirst bool, limit int) []models.Match {
	selected := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == status {
			selected = append(selected, m)
		}
	}
	slices.SortStableFunc(selected, func(a, b models.Match) int {
		if newestFirst {
			return b.Date.Compare(a.Date)
		}
		return a.Date.Compare(b.Date)
	})
	if limit > 0 && limit < len(selected) {
		selected = selected[:limit]
	}
	return selected
}
