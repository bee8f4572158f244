package roster

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Dosada05/college-cricket/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func makeTeams(ids ...string) []models.Team {
	teams := make([]models.Team, 0, len(ids))
	for _, id := range ids {
		teams = append(teams, models.Team{ID: id, Name: "Team " + id, College: "College " + id})
	}
	return teams
}

func makeMemberships(tournamentID string, teamIDs ...string) []models.Membership {
	ms := make([]models.Membership, 0, len(teamIDs))
	for i, id := range teamIDs {
		ms = append(ms, models.Membership{ID: "m" + id, TournamentID: tournamentID, TeamID: id, JoinedAt: epoch(i)})
	}
	return ms
}

func epoch(minutes int) time.Time {
	return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}

func ids(teams []models.Team) []string {
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.ID)
	}
	return out
}

// ---------------------------------------------------------------------------
// AvailableTeams
// ---------------------------------------------------------------------------

func TestAvailableTeams(t *testing.T) {
	tests := []struct {
		name    string
		catalog []models.Team
		members []models.Membership
		want    []string
	}{
		{"no memberships returns full catalog", makeTeams("A", "B", "C"), nil, []string{"A", "B", "C"}},
		{"empty catalog", nil, makeMemberships("T", "A"), []string{}},
		{"excludes joined teams keeping catalog order", makeTeams("A", "B", "C", "D"), makeMemberships("T", "C", "A"), []string{"B", "D"}},
		{"all joined", makeTeams("A", "B"), makeMemberships("T", "A", "B"), []string{}},
		{"membership for unknown team is ignored", makeTeams("A"), makeMemberships("T", "Z"), []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(AvailableTeams(tt.catalog, tt.members))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AvailableTeams = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAvailableTeams_DisjointFromRoster(t *testing.T) {
	catalog := makeTeams("A", "B", "C", "D", "E", "F")
	members := makeMemberships("T", "B", "E")

	available := AvailableTeams(catalog, members)
	for _, team := range available {
		if HasTeam(members, team.ID) {
			t.Errorf("team %s is both available and joined", team.ID)
		}
	}
	if len(available)+len(members) != len(catalog) {
		t.Errorf("available(%d) + joined(%d) != catalog(%d)", len(available), len(members), len(catalog))
	}
}

func TestAvailableTeams_AfterAdd(t *testing.T) {
	catalog := makeTeams("A", "B", "C")
	members := makeMemberships("T")

	members = append(members, makeMemberships("T", "A")...)

	got := ids(AvailableTeams(catalog, members))
	if want := []string{"B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("after adding A, available = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// Project
// ---------------------------------------------------------------------------

func TestProject_MembershipOrder(t *testing.T) {
	catalog := makeTeams("A", "B", "C", "D")
	members := makeMemberships("T", "D", "B")

	got := ids(Project(catalog, members))
	if want := []string{"D", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Project = %v, want %v", got, want)
	}
}

func TestProject_SkipsMissingAndRepeatedTeams(t *testing.T) {
	catalog := makeTeams("A", "B")
	members := makeMemberships("T", "A", "gone", "A", "B")

	got := ids(Project(catalog, members))
	if want := []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Project = %v, want %v", got, want)
	}
}

func TestProject_Empty(t *testing.T) {
	got := Project(makeTeams("A"), nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Project with no memberships = %#v, want empty non-nil slice", got)
	}
}

// ---------------------------------------------------------------------------
// ValidateSelection / Conflicts
// ---------------------------------------------------------------------------

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr error
	}{
		{"empty", nil, nil, ErrEmptySelection},
		{"blank id", []string{"A", "  "}, nil, ErrBlankTeamID},
		{"duplicate", []string{"A", "B", " A"}, nil, ErrDuplicateSelection},
		{"trims and keeps order", []string{" C", "A "}, []string{"C", "A"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSelection(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	members := makeMemberships("T", "A", "B")

	if got := Conflicts([]string{"C", "D"}, members); len(got) != 0 {
		t.Errorf("Conflicts = %v, want none", got)
	}
	got := Conflicts([]string{"B", "C", "A"}, members)
	if want := []string{"B", "A"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Conflicts = %v, want %v", got, want)
	}
}
