package game

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/game Repository

import (
	"context"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

// Repository defines the interface for game document persistence
type Repository interface {
	// CreateGame persists a freshly built game document
	CreateGame(ctx context.Context, input *CreateGameInput) error

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error)

	// UpdateGame applies a mutation under optimistic locking and returns
	// the updated document
	UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error)

	// DeleteGame removes a game
	DeleteGame(ctx context.Context, input *DeleteGameInput) error

	// ListWaitingGames retrieves every game waiting for players
	ListWaitingGames(ctx context.Context, input *ListWaitingGamesInput) (*ListWaitingGamesOutput, error)

	// PublishChatPing emits a chat-kind change notification
	PublishChatPing(ctx context.Context, input *PublishChatPingInput) error

	// SubscribeChanges opens a feed of change notifications
	SubscribeChanges(ctx context.Context) (*ChangeFeed, error)
}
