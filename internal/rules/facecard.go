package rules

import (
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// FaceCardDrinks returns how many drinks a laid face card assigns to a
// player of the given gender. Jacks hit Male players, queens hit Female
// players, kings hit everyone, and any other gender drinks on every face
// card. Non-face cards assign nothing.
func FaceCardDrinks(card models.Card, gender models.Gender) int {
	if !card.IsFace() {
		return 0
	}

	if gender != models.GenderMale && gender != models.GenderFemale {
		return 1
	}

	switch card.Number {
	case models.JackNumber:
		if gender == models.GenderMale {
			return 1
		}
	case models.QueenNumber:
		if gender == models.GenderFemale {
			return 1
		}
	case models.KingNumber:
		return 1
	}
	return 0
}
