// Package roster derives tournament rosters from tournament_teams rows.
//
// Nothing here talks to the store: callers fetch the team catalog and the
// membership rows, and these functions compute the views. The membership rows
// are the only source of truth, so every view is recomputed from them.
package roster

import (
	"errors"
	"strings"

	"github.com/Dosada05/college-cricket/models"
)

var (
	ErrEmptySelection     = errors.New("at least one team must be selected")
	ErrBlankTeamID        = errors.New("team id must not be blank")
	ErrDuplicateSelection = errors.New("team selected more than once")
)

func memberSet(memberships []models.Membership) map[string]struct{} {
	set := make(map[string]struct{}, len(memberships))
	for _, m := range memberships {
		set[m.TeamID] = struct{}{}
	}
	return set
}

// AvailableTeams returns the catalog teams that have no membership row, in
// catalog order.
func AvailableTeams(allTeams []models.Team, existing []models.Membership) []models.Team {
	joined := memberSet(existing)
	available := make([]models.Team, 0, len(allTeams))
	for _, team := range allTeams {
		if _, ok := joined[team.ID]; ok {
			continue
		}
		available = append(available, team)
	}
	return available
}

// Project joins memberships with the catalog and returns the roster in
// membership order. A membership whose team is not in the catalog (deleted
// between the two reads) is skipped.
func Project(allTeams []models.Team, memberships []models.Membership) []models.Team {
	byID := make(map[string]models.Team, len(allTeams))
	for _, team := range allTeams {
		byID[team.ID] = team
	}
	teams := make([]models.Team, 0, len(memberships))
	seen := make(map[string]struct{}, len(memberships))
	for _, m := range memberships {
		if _, dup := seen[m.TeamID]; dup {
			continue
		}
		team, ok := byID[m.TeamID]
		if !ok {
			continue
		}
		seen[m.TeamID] = struct{}{}
		teams = append(teams, team)
	}
	return teams
}

// HasTeam reports whether a membership row exists for the team.
func HasTeam(memberships []models.Membership, teamID string) bool {
	for _, m := range memberships {
		if m.TeamID == teamID {
			return true
		}
	}
	return false
}

// ValidateSelection checks a requested set of team ids before anything is
// written: it must be non-empty, without blanks and without repeats. The
// returned ids are trimmed and keep request order.
func ValidateSelection(teamIDs []string) ([]string, error) {
	if len(teamIDs) == 0 {
		return nil, ErrEmptySelection
	}
	ids := make([]string, 0, len(teamIDs))
	seen := make(map[string]struct{}, len(teamIDs))
	for _, raw := range teamIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			return nil, ErrBlankTeamID
		}
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateSelection
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// Conflicts returns the requested ids that already have a membership row.
func Conflicts(teamIDs []string, existing []models.Membership) []string {
	joined := memberSet(existing)
	var conflicts []string
	for _, id := range teamIDs {
		if _, ok := joined[id]; ok {
			conflicts = append(conflicts, id)
		}
	}
	return conflicts
}
