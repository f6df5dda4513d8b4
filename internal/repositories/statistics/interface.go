package statistics

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/statistics Repository

import (
	"context"
)

// Repository defines the interface for lifetime player statistics
type Repository interface {
	// AddDrinks increments a player's cumulative drink counters
	AddDrinks(ctx context.Context, input *AddDrinksInput) error

	// AddRetry increments a player's failed final phase run counter
	AddRetry(ctx context.Context, input *AddRetryInput) error

	// AddGamePlayed increments a player's started games counter
	AddGamePlayed(ctx context.Context, input *AddGamePlayedInput) error

	// AddGameWon increments a player's completed runs counter
	AddGameWon(ctx context.Context, input *AddGameWonInput) error

	// GetPlayerStatistics retrieves a player's cumulative counters
	GetPlayerStatistics(ctx context.Context, input *GetPlayerStatisticsInput) (*GetPlayerStatisticsOutput, error)
}
