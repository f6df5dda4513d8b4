package rules

import (
	"fmt"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// Relation is a relational operator a player bets on in phase 3
type Relation string

const (
	// RelationEqual matches when the cards share rank or suit
	RelationEqual Relation = "equal"

	// RelationUnequal matches when the cards share neither rank nor suit
	RelationUnequal Relation = "unequal"

	// RelationSame matches equal ranks
	RelationSame Relation = "same"

	// RelationLower matches a strictly lower rank
	RelationLower Relation = "lower"

	// RelationHigher matches a strictly higher rank
	RelationHigher Relation = "higher"
)

// IsRankRelation reports whether the relation compares ranks only.
func (r Relation) IsRankRelation() bool {
	return r == RelationSame || r == RelationLower || r == RelationHigher
}

// IsSuitRelation reports whether the relation is a suit equality check.
func (r Relation) IsSuitRelation() bool {
	return r == RelationEqual || r == RelationUnequal
}

// CompareCards evaluates a relational bet of card against the chain head.
func CompareCards(card, last models.Card, relation Relation) (bool, error) {
	switch relation {
	case RelationEqual:
		return card.Number == last.Number || card.Type == last.Type, nil
	case RelationUnequal:
		return card.Number != last.Number && card.Type != last.Type, nil
	case RelationSame:
		return card.Number == last.Number, nil
	case RelationLower:
		return card.Number < last.Number, nil
	case RelationHigher:
		return card.Number > last.Number, nil
	default:
		return false, fmt.Errorf("unknown relation: %q", relation)
	}
}

// CompareSuits evaluates the final-card suit bet against the first card.
// Only equal and unequal are valid there, and they compare suits alone.
func CompareSuits(card, first models.Card, relation Relation) (bool, error) {
	switch relation {
	case RelationEqual:
		return card.Type == first.Type, nil
	case RelationUnequal:
		return card.Type != first.Type, nil
	default:
		return false, fmt.Errorf("relation %q does not compare suits", relation)
	}
}
