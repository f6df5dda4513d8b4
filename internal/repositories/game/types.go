package game

import "github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"

type CreateGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

// UpdateGameInput carries the mutation applied under optimistic locking.
// Mutate may run several times against fresh reads; it must revalidate its
// preconditions on every call and stay free of side effects.
type UpdateGameInput struct {
	GameID string
	Mutate func(game *models.Game) error
}

type DeleteGameInput struct {
	GameID string

	// SuccessorID names the replacement game, if the delete hands over to one
	SuccessorID string
}

type ListWaitingGamesInput struct {
}

type ListWaitingGamesOutput struct {
	Games []*models.Game
}

type PublishChatPingInput struct {
	GameID string
}
