package rules

import (
	"fmt"
	"math/rand"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// SelectBusfahrer picks the player(s) who must drive the bus in phase 3,
// based on unplayed-card counts at phase 2 entry. Default selects everyone
// tied for the most unplayed cards, Reverse everyone tied for the fewest,
// Random a single player uniformly.
func SelectBusfahrer(random *rand.Rand, mode models.SelectionMode, players []*models.Player) ([]string, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("no players to select from")
	}

	switch mode {
	case models.SelectionDefault:
		return selectByCount(players, func(count, best int) bool { return count > best }), nil
	case models.SelectionReverse:
		return selectByCount(players, func(count, best int) bool { return count < best }), nil
	case models.SelectionRandom:
		return []string{players[random.Intn(len(players))].ID}, nil
	default:
		return nil, fmt.Errorf("unknown selection mode: %q", mode)
	}
}

// selectByCount returns every player whose unplayed count ties the best
// one under the given ordering.
func selectByCount(players []*models.Player, better func(count, best int) bool) []string {
	best := players[0].UnplayedCount()
	for _, p := range players[1:] {
		if count := p.UnplayedCount(); better(count, best) {
			best = count
		}
	}

	var selected []string
	for _, p := range players {
		if p.UnplayedCount() == best {
			selected = append(selected, p.ID)
		}
	}
	return selected
}
