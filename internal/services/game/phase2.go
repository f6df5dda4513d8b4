package game

import (
	"context"
	"errors"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/rules"
)

// Phase 2 rounds: numeric cards feed the pot, face cards assign drinks,
// aces set the must-chug flag.
const (
	phase2RoundNumeric = 1
	phase2RoundFace    = 2
	phase2RoundAce     = 3
)

// StartPhase2 selects the Busfahrer and enters phase 2
func (s *service) StartPhase2(ctx context.Context, input *StartPhase2Input) (*StartPhase2Output, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" || input.PlayerID == "" {
		return nil, errors.New("game ID and player ID cannot be empty")
	}

	updated, err := s.updateGame(ctx, input.GameID, func(game *models.Game) error {
		if game.Status != models.GameStatusActive {
			return ErrGameNotStarted
		}

		if game.Phase != models.PhaseOne {
			return ErrWrongPhase
		}

		if err := requireOwner(game, input.PlayerID); err != nil {
			return err
		}

		busfahrer, err := s.selectBusfahrer(game)
		if err != nil {
			return err
		}

		game.Phase = models.PhaseTwo
		game.Round = 1
		game.LastRound = 0
		game.DrinkCount = 0
		game.ActivePlayer = ""
		game.Busfahrer = busfahrer
		game.Cards = nil
		game.ResetTurns()
		for _, p := range game.Players {
			p.Drinks = 0
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &StartPhase2Output{Game: updated}, nil
}

// layHandCard resolves a phase 2 lay; all players act simultaneously
func (s *service) layHandCard(game *models.Game, input *LayCardInput, result *layResult) error {
	player := game.Player(input.PlayerID)
	if player == nil {
		return ErrPlayerNotInGame
	}

	if input.CardIndex >= len(player.Cards) {
		return ErrInvalidCardIndex
	}

	card := &player.Cards[input.CardIndex]
	if card.Played {
		return ErrCardAlreadyPlayed
	}

	switch game.Round {
	case phase2RoundNumeric:
		if !card.IsNumeric() {
			return ErrCardNotAllowed
		}

		card.Played = true
		game.DrinkCount += card.Number
		game.Statistics.For(player.ID).DrinksGiven += card.Number
		game.Statistics.RecomputeTopDrinker()

		result.drinks = card.Number
		result.given = map[string]int{player.ID: card.Number}
		result.records = append(result.records, drinkEntry{
			from:   player.ID,
			count:  card.Number,
			reason: models.DrinkReasonPotContribution,
		})

	case phase2RoundFace:
		if !card.IsFace() {
			return ErrCardNotAllowed
		}

		card.Played = true

		given := 0
		for _, other := range game.Players {
			if other.ID == player.ID {
				continue
			}
			drinks := rules.FaceCardDrinks(card.Card, other.Gender)
			if drinks == 0 {
				continue
			}
			other.Drinks += drinks
			given += drinks
			result.records = append(result.records, drinkEntry{
				from:   player.ID,
				to:     other.ID,
				count:  drinks,
				reason: models.DrinkReasonFaceCard,
			})
		}
		if given > 0 {
			game.Statistics.For(player.ID).DrinksGiven += given
			game.Statistics.RecomputeTopDrinker()
			result.given = map[string]int{player.ID: given}
		}
		result.drinks = given

	case phase2RoundAce:
		if !card.IsAce() {
			return ErrCardNotAllowed
		}

		card.Played = true
		player.Exen = true

	default:
		return ErrWrongRound
	}

	return nil
}

// advanceRound moves phase 2 to the next round; only the owner may do it
func (s *service) advanceRound(game *models.Game, input *NextPlayerInput, result *advanceResult) error {
	if err := requireOwner(game, input.PlayerID); err != nil {
		return err
	}

	if game.Round >= models.Phase2MaxRound {
		return ErrWrongRound
	}

	// Nobody may sit on face cards past round 2
	if game.Round == phase2RoundFace {
		for _, p := range game.Players {
			if p.HasUnplayedFaceCards() {
				return ErrFaceCardsPending
			}
		}
	}

	result.self = foldPendingDrinks(game)
	game.Statistics.RecomputeTopDrinker()
	game.DrinkCount = 0
	game.Round++

	return nil
}
