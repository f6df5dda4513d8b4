package game

import "context"

// Service defines the interface for game operations
type Service interface {
	// CreateGame creates a waiting game with the caller as owner
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// JoinGame seats a player in a waiting game
	JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error)

	// LeaveGame removes a player; an owner leaving destroys the game
	LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error)

	// KickPlayer lets the owner remove another player from a waiting game
	KickPlayer(ctx context.Context, input *KickPlayerInput) (*KickPlayerOutput, error)

	// GetGame fetches a game document
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// ListOpenGames lists games waiting for players
	ListOpenGames(ctx context.Context, input *ListOpenGamesInput) (*ListOpenGamesOutput, error)

	// StartGame deals hands and the pyramid and enters phase 1
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// FlipRow reveals the pyramid row of the current round
	FlipRow(ctx context.Context, input *FlipRowInput) (*FlipRowOutput, error)

	// LayCard plays a hand card per the current phase's rules
	LayCard(ctx context.Context, input *LayCardInput) (*LayCardOutput, error)

	// NextPlayer ends the caller's turn in phase 1 or advances the
	// phase 2 round
	NextPlayer(ctx context.Context, input *NextPlayerInput) (*NextPlayerOutput, error)

	// StartPhase2 selects the Busfahrer and enters phase 2
	StartPhase2(ctx context.Context, input *StartPhase2Input) (*StartPhase2Output, error)

	// StartPhase3 deals the diamond and enters phase 3
	StartPhase3(ctx context.Context, input *StartPhase3Input) (*StartPhase3Output, error)

	// CheckCard resolves a phase 3 relational guess
	CheckCard(ctx context.Context, input *CheckCardInput) (*CheckCardOutput, error)

	// CheckLastCard resolves the final compound guess
	CheckLastCard(ctx context.Context, input *CheckLastCardInput) (*CheckLastCardOutput, error)

	// RetryPhase deals a fresh diamond after a failed run
	RetryPhase(ctx context.Context, input *RetryPhaseInput) (*RetryPhaseOutput, error)

	// OpenNewGame clones roster and settings into a new waiting game and
	// discards the old one
	OpenNewGame(ctx context.Context, input *OpenNewGameInput) (*OpenNewGameOutput, error)

	// PingChat publishes a chat presence ping for a game
	PingChat(ctx context.Context, input *PingChatInput) (*PingChatOutput, error)

	// GetDrinkLedger fetches a game's drink records
	GetDrinkLedger(ctx context.Context, input *GetDrinkLedgerInput) (*GetDrinkLedgerOutput, error)

	// GetPlayerStatistics fetches a player's lifetime counters
	GetPlayerStatistics(ctx context.Context, input *GetPlayerStatisticsInput) (*GetPlayerStatisticsOutput, error)
}
