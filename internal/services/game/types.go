package game

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/common/clock"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/common/uuid"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/deck"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/rules"
	ledgerRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/drink_ledger"
	gameRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/game"
	statsRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/statistics"
)

// DefaultChaosMultiplier scales matched-card drink values in chaos mode
const DefaultChaosMultiplier = 2

// Config holds configuration for the game service
type Config struct {
	// GameRepo persists game documents
	GameRepo gameRepo.Repository

	// DrinkLedgerRepo records drink assignments
	DrinkLedgerRepo ledgerRepo.Repository

	// StatisticsRepo receives cumulative per-player counters
	StatisticsRepo statsRepo.Repository

	// ShufflerFactory builds the configured shuffle strategy
	ShufflerFactory deck.Factory

	// Random drives turn order, random turn mode and Busfahrer picks
	Random *rand.Rand

	// Clock provides the current time
	Clock clock.Clock

	// UUIDGenerator provides identifiers for games and records
	UUIDGenerator uuid.UUID

	// Logger receives service logs; defaults to a no-op logger
	Logger *zap.Logger

	// ChaosMultiplier scales matched-card ranks in chaos mode;
	// defaults to DefaultChaosMultiplier
	ChaosMultiplier int
}

// CreateGameInput contains parameters for creating a new game
type CreateGameInput struct {
	// PlayerID is the identity of the creating player, who becomes owner
	PlayerID string

	// PlayerName is the display name of the creating player
	PlayerName string

	// Gender is the creating player's gender for the face-card rule
	Gender models.Gender

	// Settings are the game options; nil selects the defaults
	Settings *models.Settings
}

// CreateGameOutput contains the result of creating a new game
type CreateGameOutput struct {
	// Game is the created game document
	Game *models.Game
}

// JoinGameInput contains parameters for joining a waiting game
type JoinGameInput struct {
	// GameID is the game to join
	GameID string

	// PlayerID is the identity of the joining player
	PlayerID string

	// PlayerName is the display name of the joining player
	PlayerName string

	// Gender is the joining player's gender for the face-card rule
	Gender models.Gender
}

// JoinGameOutput contains the result of joining a game
type JoinGameOutput struct {
	// Game is the updated game document
	Game *models.Game
}

// LeaveGameInput contains parameters for leaving a game
type LeaveGameInput struct {
	// GameID is the game to leave
	GameID string

	// PlayerID is the identity of the leaving player
	PlayerID string
}

// LeaveGameOutput contains the result of leaving a game
type LeaveGameOutput struct {
	// Destroyed indicates the owner left and the game was deleted
	Destroyed bool

	// Game is the updated game document; nil when the game was destroyed
	Game *models.Game
}

// KickPlayerInput contains parameters for removing another player
type KickPlayerInput struct {
	// GameID is the game to remove the player from
	GameID string

	// PlayerID is the identity of the acting player; must be the owner
	PlayerID string

	// TargetID is the player to remove
	TargetID string
}

// KickPlayerOutput contains the result of removing a player
type KickPlayerOutput struct {
	// Game is the updated game document
	Game *models.Game
}

// GetGameInput contains parameters for fetching a game
type GetGameInput struct {
	// GameID is the game to fetch
	GameID string
}

// GetGameOutput contains the fetched game
type GetGameOutput struct {
	// Game is the game document
	Game *models.Game
}

// ListOpenGamesInput contains parameters for listing joinable games
type ListOpenGamesInput struct{}

// ListOpenGamesOutput contains the joinable games
type ListOpenGamesOutput struct {
	// Games are the waiting games, oldest first
	Games []*models.Game
}

// StartGameInput contains parameters for starting phase 1
type StartGameInput struct {
	// GameID is the game to start
	GameID string

	// PlayerID is the identity of the acting player; must be the owner
	PlayerID string
}

// StartGameOutput contains the result of starting the game
type StartGameOutput struct {
	// Game is the updated game document
	Game *models.Game
}

// FlipRowInput contains parameters for revealing a pyramid row
type FlipRowInput struct {
	// GameID is the game being played
	GameID string

	// PlayerID is the identity of the acting player
	PlayerID string

	// Row is the pyramid row to reveal, 1 (tip) to 5 (base)
	Row int
}

// FlipRowOutput contains the result of revealing a row
type FlipRowOutput struct {
	// Game is the updated game document
	Game *models.Game
}

// LayCardInput contains parameters for laying a hand card
type LayCardInput struct {
	// GameID is the game being played
	GameID string

	// PlayerID is the identity of the acting player
	PlayerID string

	// CardIndex is the index of the card in the player's hand
	CardIndex int
}

// LayCardOutput contains the result of laying a card
type LayCardOutput struct {
	// Game is the updated game document
	Game *models.Game

	// Drinks is the number of drinks the play added to the pot or to
	// other players
	Drinks int
}

// NextPlayerInput contains parameters for ending a turn or round
type NextPlayerInput struct {
	// GameID is the game being played
	GameID string

	// PlayerID is the identity of the acting player
	PlayerID string
}

// NextPlayerOutput contains the result of advancing the game
type NextPlayerOutput struct {
	// Game is the updated game document
	Game *models.Game
}

// StartPhase2Input contains parameters for entering phase 2
type StartPhase2Input struct {
	// GameID is the game to advance
	GameID string

	// PlayerID is the identity of the acting player; must be the owner
	PlayerID string
}

// StartPhase2Output contains the result of entering phase 2
type StartPhase2Output struct {
	// Game is the updated game document
	Game *models.Game
}

// StartPhase3Input contains parameters for entering phase 3
type StartPhase3Input struct {
	// GameID is the game to advance
	GameID string

	// PlayerID is the identity of the acting player; must be the owner
	PlayerID string
}

// StartPhase3Output contains the result of entering phase 3
type StartPhase3Output struct {
	// Game is the updated game document
	Game *models.Game
}

// CheckCardInput contains parameters for a phase 3 guess
type CheckCardInput struct {
	// GameID is the game being played
	GameID string

	// PlayerID is the identity of the acting player
	PlayerID string

	// CardIndex is the diamond card to flip; must lie in the current row
	CardIndex int

	// Relation is the bet against the chain head
	Relation rules.Relation
}

// CheckCardOutput contains the result of a phase 3 guess
type CheckCardOutput struct {
	// Game is the updated game document
	Game *models.Game

	// Success indicates the guess was correct and the run continues
	Success bool
}

// CheckLastCardInput contains parameters for the final compound guess
type CheckLastCardInput struct {
	// GameID is the game being played
	GameID string

	// PlayerID is the identity of the acting player
	PlayerID string

	// CardIndex is the diamond card to check; must be the final card
	CardIndex int

	// Relation is the rank bet against the chain head
	Relation rules.Relation

	// LastRelation is the suit bet against the first card
	LastRelation rules.Relation
}

// CheckLastCardOutput contains the result of the final guess
type CheckLastCardOutput struct {
	// Game is the updated game document
	Game *models.Game

	// Success indicates the run was completed and the game is over
	Success bool
}

// RetryPhaseInput contains parameters for restarting a failed run
type RetryPhaseInput struct {
	// GameID is the game to reset
	GameID string

	// PlayerID is the identity of the acting player; must be the owner
	PlayerID string
}

// RetryPhaseOutput contains the result of restarting the run
type RetryPhaseOutput struct {
	// Game is the updated game document
	Game *models.Game
}

// OpenNewGameInput contains parameters for cloning a game
type OpenNewGameInput struct {
	// GameID is the finished game to replace
	GameID string

	// PlayerID is the identity of the acting player; must be the owner
	PlayerID string
}

// OpenNewGameOutput contains the replacement game
type OpenNewGameOutput struct {
	// Game is the new waiting game
	Game *models.Game
}

// PingChatInput contains parameters for a chat presence ping
type PingChatInput struct {
	// GameID is the game whose chat changed
	GameID string

	// PlayerID is the identity of the pinging player
	PlayerID string
}

// PingChatOutput contains the result of a chat ping
type PingChatOutput struct{}

// GetDrinkLedgerInput contains parameters for reading a game's ledger
type GetDrinkLedgerInput struct {
	// GameID is the game whose records to fetch
	GameID string
}

// GetDrinkLedgerOutput contains a game's drink records
type GetDrinkLedgerOutput struct {
	// Records are the drink records in chronological order
	Records []*models.DrinkRecord
}

// GetPlayerStatisticsInput contains parameters for reading lifetime counters
type GetPlayerStatisticsInput struct {
	// PlayerID is the player to look up
	PlayerID string
}

// GetPlayerStatisticsOutput contains a player's lifetime counters
type GetPlayerStatisticsOutput struct {
	// Statistics holds the player's cumulative counters
	Statistics *statsRepo.Statistics
}
