package fixtures

import "fmt"

type RoundRobinGenerator struct {
	legs int
}

// NewRoundRobinGenerator builds a league schedule where every team meets every
// other team once per leg.
func NewRoundRobinGenerator(legs int) (Generator, error) {
	if legs != 1 && legs != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLegs, legs)
	}
	return &RoundRobinGenerator{legs: legs}, nil
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate uses the circle method: the first team stays in place and the rest
// rotate, so no team plays twice in a round. With an odd number of teams one
// team sits out each round. The second leg repeats the first with home and
// away swapped.
func (g *RoundRobinGenerator) Generate(teamIDs []string) ([]Pairing, error) {
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: %w (found %d)", ErrNotEnoughTeams, len(teamIDs))
	}
	seen := make(map[string]bool, len(teamIDs))
	for _, id := range teamIDs {
		if seen[id] {
			return nil, fmt.Errorf("RoundRobinGenerator: %w: %s", ErrDuplicateTeam, id)
		}
		seen[id] = true
	}

	slots := append([]string(nil), teamIDs...)
	if len(slots)%2 == 1 {
		slots = append(slots, "") // bye
	}
	n := len(slots)
	rounds := n - 1

	firstLeg := make([]Pairing, 0, len(teamIDs)*(len(teamIDs)-1)/2)
	for round := 1; round <= rounds; round++ {
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == "" || away == "" {
				continue
			}
			// The fixed team alternates home and away.
			if i == 0 && round%2 == 0 {
				home, away = away, home
			}
			firstLeg = append(firstLeg, Pairing{Round: round, HomeID: home, AwayID: away})
		}
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}

	pairings := firstLeg
	if g.legs == 2 {
		for _, p := range firstLeg {
			pairings = append(pairings, Pairing{Round: p.Round + rounds, HomeID: p.AwayID, AwayID: p.HomeID})
		}
	}
	for i := range pairings {
		pairings[i].Order = i + 1
	}
	return pairings, nil
}
