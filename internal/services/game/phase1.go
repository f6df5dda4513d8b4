package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/deck"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/rules"
	statsRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/statistics"
)

// StartGame deals hands and the pyramid and enters phase 1
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if game.Status != models.GameStatusWaiting {
			return ErrGameAlreadyStarted
		}

		if err := requireOwner(game, input.PlayerID); err != nil {
			return err
		}

		if len(game.Players) < models.MinPlayers {
			return ErrNotEnoughPlayers
		}

		cards, err := s.shuffledDeck(game)
		if err != nil {
			return err
		}

		// Deal every hand, then the pyramid from the remainder
		for _, p := range game.Players {
			p.Cards, cards = deck.DealHand(cards, models.HandSize)
			p.Drinks = 0
			p.Exen = false
			p.HadTurn = false
		}
		game.Cards, _ = deck.DealTable(cards, models.PyramidSize)

		order := make([]string, 0, len(game.Players))
		for _, p := range game.Players {
			order = append(order, p.ID)
		}
		s.shuffleTurnOrder(order)

		game.Status = models.GameStatusActive
		game.Phase = models.PhaseOne
		game.Round = 1
		game.LastRound = 0
		game.DrinkCount = 0
		game.TurnOrder = order
		game.ActivePlayer = order[0]
		game.LastCardIndex = 0
		game.Busfahrer = nil
		game.TryOwner = ""
		game.EndGame = false
		game.Statistics = models.NewGameStatistics(game.Players)

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range updated.Players {
		err := s.statsRepo.AddGamePlayed(ctx, &statsRepo.AddGamePlayedInput{
			PlayerID: p.ID,
		})
		if err != nil {
			s.logger.Warn("failed to count played game",
				zap.String("player_id", p.ID),
				zap.Error(err))
		}
	}

	return &StartGameOutput{Game: updated}, nil
}

// FlipRow reveals the pyramid row of the current round
func (s *service) FlipRow(ctx context.Context, input *FlipRowInput) (*FlipRowOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	if input.Row < 1 || input.Row > models.PyramidRows {
		return nil, ErrInvalidRow
	}

	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if game.Status != models.GameStatusActive {
			return ErrGameNotStarted
		}

		if game.Phase != models.PhaseOne {
			return ErrWrongPhase
		}

		if game.Player(input.PlayerID) == nil {
			return ErrPlayerNotInGame
		}

		if game.ActivePlayer != input.PlayerID {
			return ErrNotActivePlayer
		}

		if input.Row != game.Round {
			return ErrWrongRound
		}

		if game.LastRound == game.Round {
			return ErrRowAlreadyFlipped
		}

		start, end := models.PyramidRowBounds(input.Row)
		for i := start; i < end; i++ {
			game.Cards[i].Flipped = true
		}
		game.LastRound = game.Round

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &FlipRowOutput{Game: updated}, nil
}

// layResult captures what a lay changed, for post-commit accounting
type layResult struct {
	drinks  int
	records []drinkEntry
	given   map[string]int
}

// LayCard plays a hand card per the current phase's rules
func (s *service) LayCard(ctx context.Context, input *LayCardInput) (*LayCardOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	if input.CardIndex < 0 {
		return nil, ErrInvalidCardIndex
	}

	var result layResult
	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		result = layResult{}

		if game.Status != models.GameStatusActive {
			return ErrGameNotStarted
		}

		switch game.Phase {
		case models.PhaseOne:
			return s.layPyramidCard(game, input, &result)
		case models.PhaseTwo:
			return s.layHandCard(game, input, &result)
		default:
			return ErrWrongPhase
		}
	})
	if err != nil {
		return nil, err
	}

	s.writeDrinkRecords(ctx, input.GameID, result.records)
	for playerID, given := range result.given {
		s.creditDrinks(ctx, playerID, given, 0)
	}

	return &LayCardOutput{Game: updated, Drinks: result.drinks}, nil
}

// layPyramidCard resolves a phase 1 lay against the revealed row. Any
// seated player may lay once the row is up; only NextPlayer consumes the
// turn.
func (s *service) layPyramidCard(game *models.Game, input *LayCardInput, result *layResult) error {
	player := game.Player(input.PlayerID)
	if player == nil {
		return ErrPlayerNotInGame
	}

	if game.LastRound != game.Round {
		return ErrRowNotFlipped
	}

	if input.CardIndex >= len(player.Cards) {
		return ErrInvalidCardIndex
	}

	card := &player.Cards[input.CardIndex]
	if card.Played {
		return ErrCardAlreadyPlayed
	}

	start, end := models.PyramidRowBounds(game.Round)
	match, err := rules.MatchesRow(card.Card, game.Cards[start:end], game.Settings.MatchStyle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if !match {
		return ErrCardMismatch
	}

	card.Played = true

	drinks := game.Round
	if game.Settings.ChaosMode {
		drinks = card.Number * s.chaosMultiplier
	}
	game.DrinkCount += drinks

	result.drinks = drinks
	result.records = append(result.records, drinkEntry{
		from:   player.ID,
		count:  drinks,
		reason: models.DrinkReasonRowMatch,
	})

	return nil
}

// advanceResult captures what an advance folded, for post-commit accounting
type advanceResult struct {
	records []drinkEntry
	given   map[string]int
	self    map[string]int
}

// NextPlayer ends the caller's turn in phase 1 or advances the phase 2 round
func (s *service) NextPlayer(ctx context.Context, input *NextPlayerInput) (*NextPlayerOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	var result advanceResult
	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		result = advanceResult{}

		if game.Status != models.GameStatusActive {
			return ErrGameNotStarted
		}

		switch game.Phase {
		case models.PhaseOne:
			return s.endTurn(game, input, &result)
		case models.PhaseTwo:
			return s.advanceRound(game, input, &result)
		default:
			return ErrWrongPhase
		}
	})
	if err != nil {
		// A corrupted turn order is not caller-recoverable
		if errors.Is(err, rules.ErrActiveNotInOrder) {
			s.logger.Error("active player missing from turn order",
				zap.String("game_id", input.GameID),
				zap.Error(err))
		}
		return nil, err
	}

	s.writeDrinkRecords(ctx, input.GameID, result.records)
	for playerID, given := range result.given {
		s.creditDrinks(ctx, playerID, given, 0)
	}
	for playerID, self := range result.self {
		s.creditDrinks(ctx, playerID, 0, self)
	}

	return &NextPlayerOutput{Game: updated}, nil
}

// endTurn folds the pot, resolves the next active player and advances the
// round once everybody acted
func (s *service) endTurn(game *models.Game, input *NextPlayerInput, result *advanceResult) error {
	player := game.Player(input.PlayerID)
	if player == nil {
		return ErrPlayerNotInGame
	}

	if game.ActivePlayer != input.PlayerID {
		return ErrNotActivePlayer
	}

	if game.DrinkCount > 0 {
		game.Statistics.For(player.ID).DrinksGiven += game.DrinkCount
		result.given = map[string]int{player.ID: game.DrinkCount}
		result.records = append(result.records, drinkEntry{
			to:     player.ID,
			count:  game.DrinkCount,
			reason: models.DrinkReasonTurnPot,
		})
		game.DrinkCount = 0
	}

	result.self = foldPendingDrinks(game)
	game.Statistics.RecomputeTopDrinker()

	player.HadTurn = true

	next, err := s.resolveNextPlayer(game)
	if err != nil {
		return err
	}
	game.ActivePlayer = next

	if game.AllHadTurn() {
		game.ResetTurns()
		if game.Round < models.Phase1MaxRound {
			game.Round++
		}
	}

	return nil
}
