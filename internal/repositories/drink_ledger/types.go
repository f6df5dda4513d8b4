package drink_ledger

import (
	"time"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

type AddDrinkRecordInput struct {
	Record *models.DrinkRecord
}

type CreateDrinkRecordInput struct {
	GameID string

	// FromPlayerID is empty when the drinks come out of the communal pot
	FromPlayerID string

	// ToPlayerID is empty when the drinks go into the communal pot
	ToPlayerID string

	Count  int
	Reason models.DrinkReason

	// Timestamp defaults to now when zero
	Timestamp time.Time
}

type CreateDrinkRecordOutput struct {
	Record *models.DrinkRecord
}

type GetDrinkRecordsForGameInput struct {
	GameID string
}

type GetDrinkRecordsForGameOutput struct {
	Records []*models.DrinkRecord
}

type GetDrinkRecordsForPlayerInput struct {
	PlayerID string
}

type GetDrinkRecordsForPlayerOutput struct {
	Records []*models.DrinkRecord
}
