package fixtures

import "errors"

var (
	ErrNotEnoughTeams = errors.New("at least two teams are required")
	ErrDuplicateTeam  = errors.New("team appears more than once")
	ErrInvalidLegs    = errors.New("legs must be 1 or 2")
)

// Pairing is one match of a fixture list. Round and Order start at 1; Order
// runs across the whole list.
type Pairing struct {
	Round  int
	Order  int
	HomeID string
	AwayID string
}

type Generator interface {
	Generate(teamIDs []string) ([]Pairing, error)

	Name() string
}
