package game

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/deck"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/rules"
	statsRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/statistics"
)

// StartPhase3 deals the diamond and enters phase 3
func (s *service) StartPhase3(ctx context.Context, input *StartPhase3Input) (*StartPhase3Output, error) {
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

		if game.Phase != models.PhaseTwo {
			return ErrWrongPhase
		}

		if err := requireOwner(game, input.PlayerID); err != nil {
			return err
		}

		// Outstanding drinks are downed before boarding the bus
		result.self = foldPendingDrinks(game)
		game.Statistics.RecomputeTopDrinker()

		diamond, err := s.dealDiamond(game)
		if err != nil {
			return err
		}

		game.Phase = models.PhaseThree
		game.Cards = diamond
		game.Round = models.Phase3StartRound
		game.LastRound = 0
		game.DrinkCount = 0
		game.LastCardIndex = models.DiamondFirstIndex
		game.TryOwner = ""
		game.EndGame = false

		return nil
	})
	if err != nil {
		return nil, err
	}

	for playerID, self := range result.self {
		s.creditDrinks(ctx, playerID, 0, self)
	}

	return &StartPhase3Output{Game: updated}, nil
}

// dealDiamond deals a fresh diamond with both sentinel cards revealed
func (s *service) dealDiamond(game *models.Game) ([]models.TableCard, error) {
	cards, err := s.shuffledDeck(game)
	if err != nil {
		return nil, err
	}

	diamond, _ := deck.DealTable(cards, models.DiamondSize)
	diamond[models.DiamondFirstIndex].Flipped = true
	diamond[models.DiamondLastIndex].Flipped = true

	return diamond, nil
}

// guessResult captures a guess outcome, for post-commit accounting
type guessResult struct {
	success     bool
	failedOwner string
	winners     []string
}

// CheckCard resolves a phase 3 relational guess
func (s *service) CheckCard(ctx context.Context, input *CheckCardInput) (*CheckCardOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	if !input.Relation.IsRankRelation() && !input.Relation.IsSuitRelation() {
		return nil, ErrInvalidRelation
	}

	var result guessResult
	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		result = guessResult{}

		if err := s.requireRunnableDiamond(game); err != nil {
			return err
		}

		if game.Round == models.RoundFailed {
			return ErrRunFailed
		}

		if game.Round == 0 {
			return ErrWrongRound
		}

		if err := s.claimRun(game, input.PlayerID); err != nil {
			return err
		}

		// One pick per diamond row, tip to tip
		row := models.DiamondRows + 1 - game.Round
		start, end := models.DiamondRowBounds(row)
		if input.CardIndex < start || input.CardIndex >= end {
			return ErrInvalidCardIndex
		}

		card := &game.Cards[input.CardIndex]
		if card.Flipped {
			return ErrCardAlreadyFlipped
		}
		card.Flipped = true

		head := game.Cards[game.LastCardIndex].Card
		ok, err := rules.CompareCards(card.Card, head, input.Relation)
		if err != nil {
			return ErrInvalidRelation
		}

		if !ok {
			s.failRun(game, &result)
			return nil
		}

		game.Round--
		game.LastCardIndex = input.CardIndex
		result.success = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.failedOwner != "" {
		s.countRetry(ctx, result.failedOwner)
	}

	return &CheckCardOutput{Game: updated, Success: result.success}, nil
}

// CheckLastCard resolves the final compound guess
func (s *service) CheckLastCard(ctx context.Context, input *CheckLastCardInput) (*CheckLastCardOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	if input.CardIndex != models.DiamondLastIndex {
		return nil, ErrInvalidCardIndex
	}

	if !input.Relation.IsRankRelation() {
		return nil, ErrInvalidRelation
	}

	if !input.LastRelation.IsSuitRelation() {
		return nil, ErrInvalidRelation
	}

	var result guessResult
	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		result = guessResult{}

		if err := s.requireRunnableDiamond(game); err != nil {
			return err
		}

		if game.Round == models.RoundFailed {
			return ErrRunFailed
		}

		if game.Round != 0 {
			return ErrRunNotFinished
		}

		if err := s.claimRun(game, input.PlayerID); err != nil {
			return err
		}

		final := game.Cards[models.DiamondLastIndex].Card
		first := game.Cards[models.DiamondFirstIndex].Card
		head := game.Cards[game.LastCardIndex].Card

		suitOK, err := rules.CompareSuits(final, first, input.LastRelation)
		if err != nil {
			return ErrInvalidRelation
		}

		rankOK, err := rules.CompareCards(final, head, input.Relation)
		if err != nil {
			return ErrInvalidRelation
		}

		if !suitOK || !rankOK {
			s.failRun(game, &result)
			return nil
		}

		game.EndGame = true
		result.success = true
		result.winners = append([]string(nil), game.Busfahrer...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.failedOwner != "" {
		s.countRetry(ctx, result.failedOwner)
	}

	for _, winner := range result.winners {
		err := s.statsRepo.AddGameWon(ctx, &statsRepo.AddGameWonInput{
			PlayerID: winner,
		})
		if err != nil {
			s.logger.Warn("failed to count won game",
				zap.String("player_id", winner),
				zap.Error(err))
		}
	}

	return &CheckLastCardOutput{Game: updated, Success: result.success}, nil
}

// RetryPhase deals a fresh diamond after a failed run
func (s *service) RetryPhase(ctx context.Context, input *RetryPhaseInput) (*RetryPhaseOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if err := s.requireRunnableDiamond(game); err != nil {
			return err
		}

		if err := requireOwner(game, input.PlayerID); err != nil {
			return err
		}

		if game.Round != models.RoundFailed {
			return ErrRunNotFailed
		}

		diamond, err := s.dealDiamond(game)
		if err != nil {
			return err
		}

		game.Cards = diamond
		game.Round = models.Phase3StartRound
		game.LastCardIndex = models.DiamondFirstIndex
		game.TryOwner = ""

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RetryPhaseOutput{Game: updated}, nil
}

// requireRunnableDiamond checks the game is in phase 3 and not yet over
func (s *service) requireRunnableDiamond(game *models.Game) error {
	if game.Status != models.GameStatusActive {
		return ErrGameNotStarted
	}

	if game.Phase != models.PhaseThree {
		return ErrWrongPhase
	}

	if game.EndGame {
		return ErrGameFinished
	}

	return nil
}

// claimRun enforces run ownership, claiming it for the first valid actor
func (s *service) claimRun(game *models.Game, playerID string) error {
	if game.Player(playerID) == nil {
		return ErrPlayerNotInGame
	}

	if game.TryOwner == playerID {
		return nil
	}

	if game.TryOwner != "" {
		return ErrNotTryOwner
	}

	if !game.Settings.Everyone && !game.IsBusfahrer(playerID) {
		return ErrNotBusfahrer
	}

	game.TryOwner = playerID

	return nil
}

// failRun applies the failure sentinel and books the failed attempt
func (s *service) failRun(game *models.Game, result *guessResult) {
	result.failedOwner = game.TryOwner
	game.Statistics.For(game.TryOwner).Retries++
	game.Round = models.RoundFailed
	game.TryOwner = ""
}

// countRetry forwards a failed run to the statistics sink
func (s *service) countRetry(ctx context.Context, playerID string) {
	err := s.statsRepo.AddRetry(ctx, &statsRepo.AddRetryInput{
		PlayerID: playerID,
	})
	if err != nil {
		s.logger.Warn("failed to count retry",
			zap.String("player_id", playerID),
			zap.Error(err))
	}
}
