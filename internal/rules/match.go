// Package rules holds the pure card comparison and selection rules shared
// by the game phases. Nothing here touches stores or mutates game state.
package rules

import (
	"fmt"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// MatchesCard reports whether a held card matches a revealed card under the
// given match style.
func MatchesCard(card, target models.Card, style models.MatchStyle) (bool, error) {
	switch style {
	case models.MatchNumber:
		return card.Number == target.Number, nil
	case models.MatchType:
		return card.Type == target.Type, nil
	case models.MatchExact:
		return card.Number == target.Number && card.Type == target.Type, nil
	default:
		return false, fmt.Errorf("unknown match style: %q", style)
	}
}

// MatchesRow reports whether a held card matches any revealed card of a
// pyramid row under the given match style.
func MatchesRow(card models.Card, row []models.TableCard, style models.MatchStyle) (bool, error) {
	for _, target := range row {
		if !target.Flipped {
			continue
		}
		ok, err := MatchesCard(card, target.Card, style)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
