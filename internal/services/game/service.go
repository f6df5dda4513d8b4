package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"unicode/utf8"

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

const maxNameLength = 32

// service implements the Service interface
type service struct {
	gameRepo        gameRepo.Repository
	drinkLedgerRepo ledgerRepo.Repository
	statsRepo       statsRepo.Repository
	shufflers       deck.Factory
	clock           clock.Clock
	uuid            uuid.UUID
	logger          *zap.Logger
	chaosMultiplier int

	// random is shared across request goroutines and guarded by randMu
	random *rand.Rand
	randMu sync.Mutex
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	// Validate config
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}

	if cfg.DrinkLedgerRepo == nil {
		return nil, ErrNilDrinkLedgerRepo
	}

	if cfg.StatisticsRepo == nil {
		return nil, ErrNilStatisticsRepo
	}

	if cfg.ShufflerFactory == nil {
		return nil, ErrNilShufflerFactory
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	chaosMultiplier := cfg.ChaosMultiplier
	if chaosMultiplier <= 0 {
		chaosMultiplier = DefaultChaosMultiplier
	}

	return &service{
		gameRepo:        cfg.GameRepo,
		drinkLedgerRepo: cfg.DrinkLedgerRepo,
		statsRepo:       cfg.StatisticsRepo,
		shufflers:       cfg.ShufflerFactory,
		clock:           cfg.Clock,
		uuid:            cfg.UUIDGenerator,
		logger:          logger,
		chaosMultiplier: chaosMultiplier,
		random:          cfg.Random,
	}, nil
}

// CreateGame creates a waiting game with the caller as owner
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.PlayerID == "" {
		return nil, errors.New("player ID cannot be empty")
	}

	name, err := validateName(input.PlayerName)
	if err != nil {
		return nil, err
	}

	if err := validateGender(input.Gender); err != nil {
		return nil, err
	}

	settings := models.Settings{}
	if input.Settings != nil {
		settings = *input.Settings
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	now := s.clock.Now()
	owner := &models.Player{
		ID:     input.PlayerID,
		Name:   name,
		Gender: input.Gender,
		Role:   models.PlayerRoleOwner,
	}

	game := &models.Game{
		ID:         s.uuid.NewUUID(),
		Status:     models.GameStatusWaiting,
		Players:    []*models.Player{owner},
		Settings:   settings,
		Statistics: models.NewGameStatistics([]*models.Player{owner}),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.gameRepo.CreateGame(ctx, &gameRepo.CreateGameInput{Game: game}); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &CreateGameOutput{Game: game}, nil
}

// JoinGame seats a player in a waiting game
func (s *service) JoinGame(ctx context.Context, input *JoinGameInput) (*JoinGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	name, err := validateName(input.PlayerName)
	if err != nil {
		return nil, err
	}

	if err := validateGender(input.Gender); err != nil {
		return nil, err
	}

	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if game.Status != models.GameStatusWaiting {
			return ErrGameAlreadyStarted
		}

		if game.Player(input.PlayerID) != nil {
			return ErrPlayerAlreadyInGame
		}

		if len(game.Players) >= game.Settings.PlayerLimit {
			return ErrGameFull
		}

		game.Players = append(game.Players, &models.Player{
			ID:     input.PlayerID,
			Name:   name,
			Gender: input.Gender,
			Role:   models.PlayerRolePlayer,
		})
		game.Statistics.For(input.PlayerID)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &JoinGameOutput{Game: updated}, nil
}

// LeaveGame removes a player; an owner leaving destroys the game
func (s *service) LeaveGame(ctx context.Context, input *LeaveGameInput) (*LeaveGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	current, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	player := current.Player(input.PlayerID)
	if player == nil {
		return nil, ErrPlayerNotInGame
	}

	// The owner takes the game down with them
	if player.IsOwner() {
		err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
			GameID: input.GameID,
		})
		if err != nil {
			if errors.Is(err, gameRepo.ErrGameNotFound) {
				return nil, ErrGameNotFound
			}
			return nil, fmt.Errorf("failed to delete game %s: %w", input.GameID, err)
		}

		return &LeaveGameOutput{Destroyed: true}, nil
	}

	if current.Status != models.GameStatusWaiting {
		return nil, ErrGameAlreadyStarted
	}

	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if game.Status != models.GameStatusWaiting {
			return ErrGameAlreadyStarted
		}

		if game.Player(input.PlayerID) == nil {
			return ErrPlayerNotInGame
		}

		game.Players = removePlayer(game.Players, input.PlayerID)
		delete(game.Statistics.Players, input.PlayerID)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &LeaveGameOutput{Game: updated}, nil
}

// KickPlayer lets the owner remove another player from a waiting game
func (s *service) KickPlayer(ctx context.Context, input *KickPlayerInput) (*KickPlayerOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" || input.TargetID == "" {
		return nil, errors.New("game ID, player ID and target ID cannot be empty")
	}

	if input.TargetID == input.PlayerID {
		return nil, errors.New("cannot kick yourself, leave instead")
	}

	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if game.Status != models.GameStatusWaiting {
			return ErrGameAlreadyStarted
		}

		if err := requireOwner(game, input.PlayerID); err != nil {
			return err
		}

		if game.Player(input.TargetID) == nil {
			return ErrPlayerNotFound
		}

		game.Players = removePlayer(game.Players, input.TargetID)
		delete(game.Statistics.Players, input.TargetID)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &KickPlayerOutput{Game: updated}, nil
}

// GetGame fetches a game document
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{Game: game}, nil
}

// ListOpenGames lists games waiting for players
func (s *service) ListOpenGames(ctx context.Context, _ *ListOpenGamesInput) (*ListOpenGamesOutput, error) {
	output, err := s.gameRepo.ListWaitingGames(ctx, &gameRepo.ListWaitingGamesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting games: %w", err)
	}

	return &ListOpenGamesOutput{Games: output.Games}, nil
}

// OpenNewGame clones roster and settings into a new waiting game and
// discards the old one
func (s *service) OpenNewGame(ctx context.Context, input *OpenNewGameInput) (*OpenNewGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	current, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if err := requireOwner(current, input.PlayerID); err != nil {
		return nil, err
	}

	// Same seats, fresh hands and counters
	players := make([]*models.Player, 0, len(current.Players))
	for _, p := range current.Players {
		players = append(players, &models.Player{
			ID:     p.ID,
			Name:   p.Name,
			Gender: p.Gender,
			Role:   p.Role,
		})
	}

	now := s.clock.Now()
	next := &models.Game{
		ID:         s.uuid.NewUUID(),
		Status:     models.GameStatusWaiting,
		Players:    players,
		Settings:   current.Settings,
		Statistics: models.NewGameStatistics(players),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.gameRepo.CreateGame(ctx, &gameRepo.CreateGameInput{Game: next}); err != nil {
		return nil, fmt.Errorf("failed to create replacement game: %w", err)
	}

	// The new game exists at this point, so a failed cleanup must not
	// fail the operation
	err = s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
		GameID:      input.GameID,
		SuccessorID: next.ID,
	})
	if err != nil && !errors.Is(err, gameRepo.ErrGameNotFound) {
		s.logger.Warn("failed to delete replaced game",
			zap.String("game_id", input.GameID),
			zap.String("successor_id", next.ID),
			zap.Error(err))
	}

	return &OpenNewGameOutput{Game: next}, nil
}

// PingChat publishes a chat presence ping for a game
func (s *service) PingChat(ctx context.Context, input *PingChatInput) (*PingChatOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	current, err := s.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if current.Player(input.PlayerID) == nil {
		return nil, ErrPlayerNotInGame
	}

	err = s.gameRepo.PublishChatPing(ctx, &gameRepo.PublishChatPingInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish chat ping: %w", err)
	}

	return &PingChatOutput{}, nil
}

// GetDrinkLedger fetches a game's drink records
func (s *service) GetDrinkLedger(ctx context.Context, input *GetDrinkLedgerInput) (*GetDrinkLedgerOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	if _, err := s.getGame(ctx, input.GameID); err != nil {
		return nil, err
	}

	output, err := s.drinkLedgerRepo.GetDrinkRecordsForGame(ctx, &ledgerRepo.GetDrinkRecordsForGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get drink records: %w", err)
	}

	return &GetDrinkLedgerOutput{Records: output.Records}, nil
}

// GetPlayerStatistics fetches a player's lifetime counters
func (s *service) GetPlayerStatistics(ctx context.Context, input *GetPlayerStatisticsInput) (*GetPlayerStatisticsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	output, err := s.statsRepo.GetPlayerStatistics(ctx, &statsRepo.GetPlayerStatisticsInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get player statistics: %w", err)
	}

	return &GetPlayerStatisticsOutput{Statistics: output.Statistics}, nil
}

// getGame reads a game and maps the repository's not-found error
func (s *service) getGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: gameID})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	return game, nil
}

// updateGame runs a mutation through the repository's conditional update.
// Rejections raised inside the mutation come back untouched; everything
// else is treated as a transient fault.
func (s *service) updateGame(ctx context.Context, gameID string, mutate func(*models.Game) error) (*models.Game, error) {
	updated, err := s.gameRepo.UpdateGame(ctx, &gameRepo.UpdateGameInput{
		GameID: gameID,
		Mutate: mutate,
	})
	if err != nil {
		var gameErr GameError
		if errors.As(err, &gameErr) {
			return nil, gameErr
		}
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to update game %s: %w", gameID, err)
	}
	return updated, nil
}

// shuffledDeck builds and shuffles a fresh deck per the game's settings
func (s *service) shuffledDeck(game *models.Game) ([]models.Card, error) {
	shuffler, err := s.shufflers.Shuffler(game.Settings.Shuffling)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return shuffler.Shuffle(deck.New()), nil
}

// shuffleTurnOrder permutes the given player IDs in place
func (s *service) shuffleTurnOrder(ids []string) {
	s.randMu.Lock()
	defer s.randMu.Unlock()

	s.random.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

// resolveNextPlayer applies the configured turn mode
func (s *service) resolveNextPlayer(game *models.Game) (string, error) {
	s.randMu.Lock()
	defer s.randMu.Unlock()

	return rules.NextPlayer(s.random, game.Settings.TurnMode, game.TurnOrder, game.Players, game.ActivePlayer)
}

// selectBusfahrer applies the configured selection mode
func (s *service) selectBusfahrer(game *models.Game) ([]string, error) {
	s.randMu.Lock()
	defer s.randMu.Unlock()

	return rules.SelectBusfahrer(s.random, game.Settings.Selection, game.Players)
}

// drinkEntry captures one ledger write to perform after a committed update
type drinkEntry struct {
	from   string
	to     string
	count  int
	reason models.DrinkReason
}

// writeDrinkRecords appends committed drink assignments to the ledger.
// Ledger writes are best effort; the game document already holds the
// authoritative counters.
func (s *service) writeDrinkRecords(ctx context.Context, gameID string, entries []drinkEntry) {
	for _, entry := range entries {
		_, err := s.drinkLedgerRepo.CreateDrinkRecord(ctx, &ledgerRepo.CreateDrinkRecordInput{
			GameID:       gameID,
			FromPlayerID: entry.from,
			ToPlayerID:   entry.to,
			Count:        entry.count,
			Reason:       entry.reason,
			Timestamp:    s.clock.Now(),
		})
		if err != nil {
			s.logger.Warn("failed to write drink record",
				zap.String("game_id", gameID),
				zap.Error(err))
		}
	}
}

// creditDrinks forwards drink counters to the statistics sink
func (s *service) creditDrinks(ctx context.Context, playerID string, given, self int) {
	if given == 0 && self == 0 {
		return
	}

	err := s.statsRepo.AddDrinks(ctx, &statsRepo.AddDrinksInput{
		PlayerID: playerID,
		Given:    given,
		Self:     self,
	})
	if err != nil {
		s.logger.Warn("failed to update player statistics",
			zap.String("player_id", playerID),
			zap.Error(err))
	}
}

// foldPendingDrinks folds every player's pending drinks into their own
// tally and returns the folded amounts by player ID
func foldPendingDrinks(game *models.Game) map[string]int {
	folded := make(map[string]int)
	for _, p := range game.Players {
		if p.Drinks == 0 {
			continue
		}
		game.Statistics.For(p.ID).DrinksSelf += p.Drinks
		folded[p.ID] = p.Drinks
		p.Drinks = 0
	}
	return folded
}

// requireOwner checks that the player is seated and owns the game
func requireOwner(game *models.Game, playerID string) error {
	player := game.Player(playerID)
	if player == nil {
		return ErrPlayerNotInGame
	}
	if !player.IsOwner() {
		return ErrNotGameOwner
	}
	return nil
}

func removePlayer(players []*models.Player, id string) []*models.Player {
	out := make([]*models.Player, 0, len(players))
	for _, p := range players {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func validateGender(gender models.Gender) error {
	switch gender {
	case models.GenderMale, models.GenderFemale, models.GenderDivers:
		return nil
	default:
		return ErrInvalidGender
	}
}
