package drink_ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/drink_ledger Repository

import (
	"context"
)

// Repository defines the interface for drink ledger persistence
type Repository interface {
	// AddDrinkRecord adds a drink record to the ledger
	AddDrinkRecord(ctx context.Context, input *AddDrinkRecordInput) error

	// CreateDrinkRecord builds a drink record with a generated ID and
	// stores it
	CreateDrinkRecord(ctx context.Context, input *CreateDrinkRecordInput) (*CreateDrinkRecordOutput, error)

	// GetDrinkRecordsForGame retrieves all drink records for a game
	GetDrinkRecordsForGame(ctx context.Context, input *GetDrinkRecordsForGameInput) (*GetDrinkRecordsForGameOutput, error)

	// GetDrinkRecordsForPlayer retrieves all drink records for a player
	GetDrinkRecordsForPlayer(ctx context.Context, input *GetDrinkRecordsForPlayerInput) (*GetDrinkRecordsForPlayerOutput, error)
}
