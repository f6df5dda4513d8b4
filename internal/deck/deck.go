package deck

import (
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// Size is the number of cards in a fresh double deck.
const Size = 104

// New builds an ordered double deck: two copies of every rank and suit.
func New() []models.Card {
	cards := make([]models.Card, 0, Size)
	for copies := 0; copies < 2; copies++ {
		for _, suit := range models.Suits {
			for number := models.MinCardNumber; number <= models.MaxCardNumber; number++ {
				cards = append(cards, models.Card{Number: number, Type: suit})
			}
		}
	}
	return cards
}

// DealHand takes n cards off the top of the deck as hand cards and returns
// the hand and the remaining deck.
func DealHand(cards []models.Card, n int) ([]models.HandCard, []models.Card) {
	hand := make([]models.HandCard, 0, n)
	for _, c := range cards[:n] {
		hand = append(hand, models.HandCard{Card: c})
	}
	return hand, cards[n:]
}

// DealTable takes n cards off the top of the deck as face-down table cards
// and returns the layout and the remaining deck.
func DealTable(cards []models.Card, n int) ([]models.TableCard, []models.Card) {
	table := make([]models.TableCard, 0, n)
	for _, c := range cards[:n] {
		table = append(table, models.TableCard{Card: c})
	}
	return table, cards[n:]
}
