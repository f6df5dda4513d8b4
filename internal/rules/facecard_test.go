package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

func TestFaceCardDrinks(t *testing.T) {
	jack := models.Card{Number: models.JackNumber, Type: models.SuitClubs}
	queen := models.Card{Number: models.QueenNumber, Type: models.SuitHearts}
	king := models.Card{Number: models.KingNumber, Type: models.SuitSpades}

	tests := []struct {
		name   string
		card   models.Card
		gender models.Gender
		drinks int
	}{
		{"jack hits male", jack, models.GenderMale, 1},
		{"jack spares female", jack, models.GenderFemale, 0},
		{"jack hits divers", jack, models.GenderDivers, 1},
		{"queen hits female", queen, models.GenderFemale, 1},
		{"queen spares male", queen, models.GenderMale, 0},
		{"queen hits divers", queen, models.GenderDivers, 1},
		{"king hits male", king, models.GenderMale, 1},
		{"king hits female", king, models.GenderFemale, 1},
		{"king hits divers", king, models.GenderDivers, 1},
		{"numeric card assigns nothing", models.Card{Number: 9, Type: models.SuitClubs}, models.GenderDivers, 0},
		{"ace assigns nothing", models.Card{Number: models.AceNumber, Type: models.SuitClubs}, models.GenderMale, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.drinks, FaceCardDrinks(tt.card, tt.gender))
		})
	}
}
