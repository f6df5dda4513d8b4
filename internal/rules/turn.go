package rules

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// ErrActiveNotInOrder reports a game document whose active player is
// missing from its own turn order. Callers treat this as corruption, not
// as a player mistake.
var ErrActiveNotInOrder = errors.New("active player not in turn order")

// NextPlayer resolves which player acts after the active one. Default walks
// the turn order forward, Reverse backward. Random picks uniformly among
// players who have not had a turn, excluding the active player when anyone
// else is still waiting, and wraps to the first seat once everyone acted.
func NextPlayer(random *rand.Rand, mode models.TurnMode, turnOrder []string, players []*models.Player, active string) (string, error) {
	if len(turnOrder) == 0 {
		return "", fmt.Errorf("empty turn order")
	}

	activeIdx := -1
	for i, id := range turnOrder {
		if id == active {
			activeIdx = i
			break
		}
	}
	if activeIdx == -1 {
		return "", fmt.Errorf("%w: %s", ErrActiveNotInOrder, active)
	}

	switch mode {
	case models.TurnModeDefault:
		return turnOrder[(activeIdx+1)%len(turnOrder)], nil
	case models.TurnModeReverse:
		return turnOrder[(activeIdx-1+len(turnOrder))%len(turnOrder)], nil
	case models.TurnModeRandom:
		return nextRandom(random, turnOrder, players, active), nil
	default:
		return "", fmt.Errorf("unknown turn mode: %q", mode)
	}
}

func nextRandom(random *rand.Rand, turnOrder []string, players []*models.Player, active string) string {
	hadTurn := make(map[string]bool, len(players))
	for _, p := range players {
		hadTurn[p.ID] = p.HadTurn
	}

	var waiting []string
	for _, id := range turnOrder {
		if !hadTurn[id] && id != active {
			waiting = append(waiting, id)
		}
	}
	if len(waiting) == 0 {
		for _, id := range turnOrder {
			if !hadTurn[id] {
				waiting = append(waiting, id)
			}
		}
	}
	if len(waiting) == 0 {
		return turnOrder[0]
	}
	return waiting[random.Intn(len(waiting))]
}
