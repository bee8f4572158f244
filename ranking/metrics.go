package ranking

import (
	"sort"

	"github.com/Dosada05/college-cricket/models"
)

func Runs(p models.Player) float64    { return float64(p.Stats.Runs) }
func Wickets(p models.Player) float64 { return float64(p.Stats.Wickets) }

// RunsPerMatch is what the leaderboard shows as the batting average.
func RunsPerMatch(p models.Player) float64 {
	return DerivedAverage(p.Stats.Runs, p.Stats.Matches)
}

// WicketsPerMatch is what the leaderboard shows as the bowling average.
func WicketsPerMatch(p models.Player) float64 {
	return DerivedAverage(p.Stats.Wickets, p.Stats.Matches)
}

func WinRatio(t models.Team) float64 {
	return DerivedAverage(t.Stats.Won, t.Stats.Matches)
}

func WinPercentage(t models.Team) float64 {
	return WinRatio(t) * 100
}

func Wins(t models.Team) float64          { return float64(t.Stats.Won) }
func MatchesPlayed(t models.Team) float64 { return float64(t.Stats.Matches) }

var playerMetrics = map[string]Metric[models.Player]{
	"runs":              Runs,
	"wickets":           Wickets,
	"runs_per_match":    RunsPerMatch,
	"wickets_per_match": WicketsPerMatch,
}

var teamMetrics = map[string]Metric[models.Team]{
	"win_ratio": WinRatio,
	"won":       Wins,
	"matches":   MatchesPlayed,
}

// PlayerMetric looks up a player metric by its query-string name.
func PlayerMetric(name string) (Metric[models.Player], bool) {
	m, ok := playerMetrics[name]
	return m, ok
}

// TeamMetric looks up a team metric by its query-string name.
func TeamMetric(name string) (Metric[models.Team], bool) {
	m, ok := teamMetrics[name]
	return m, ok
}

func PlayerMetricNames() []string { return metricNames(playerMetrics) }
func TeamMetricNames() []string   { return metricNames(teamMetrics) }

func metricNames[T any](m map[string]Metric[T]) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Searchable text fields. The leaderboard and list pages search players and
// teams by name or college, tournaments by name or location, matches by venue.
var (
	PlayerTextFields     = []Field[models.Player]{func(p models.Player) string { return p.Name }, func(p models.Player) string { return p.College }}
	TeamTextFields       = []Field[models.Team]{func(t models.Team) string { return t.Name }, func(t models.Team) string { return t.College }}
	TournamentTextFields = []Field[models.Tournament]{func(t models.Tournament) string { return t.Name }, func(t models.Tournament) string { return t.Location }}
	MatchTextFields      = []Field[models.Match]{func(m models.Match) string { return m.Venue }}
)
