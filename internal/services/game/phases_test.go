package game

import (
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/rules"
)

func (s *GameServiceTestSuite) TestStartGameDealsHandsAndPyramid() {
	s.putGame(s.waitingGame("g1"))

	output, err := s.service.StartGame(s.ctx, &StartGameInput{GameID: "g1", PlayerID: testAlice})
	s.Require().NoError(err)

	game := output.Game
	s.Equal(models.GameStatusActive, game.Status)
	s.Equal(models.PhaseOne, game.Phase)
	s.Equal(1, game.Round)
	s.Len(game.Cards, models.PyramidSize)
	for _, p := range game.Players {
		s.Len(p.Cards, models.HandSize)
	}
	s.ElementsMatch([]string{testAlice, testBob}, game.TurnOrder)
	s.Contains(game.TurnOrder, game.ActivePlayer)

	// Starting a game counts as played for everyone seated
	s.Equal(1, s.lifetimeStats(testAlice).GamesPlayed)
	s.Equal(1, s.lifetimeStats(testBob).GamesPlayed)
}

func (s *GameServiceTestSuite) TestStartGameOwnerOnly() {
	s.putGame(s.waitingGame("g1"))

	_, err := s.service.StartGame(s.ctx, &StartGameInput{GameID: "g1", PlayerID: testBob})
	s.ErrorIs(err, ErrNotGameOwner)
}

func (s *GameServiceTestSuite) TestStartGameNeedsTwoPlayers() {
	game := s.waitingGame("g1")
	game.Players = game.Players[:1]
	s.putGame(game)

	_, err := s.service.StartGame(s.ctx, &StartGameInput{GameID: "g1", PlayerID: testAlice})
	s.ErrorIs(err, ErrNotEnoughPlayers)
}

func (s *GameServiceTestSuite) TestFlipRowRevealsCurrentRow() {
	s.putGame(s.phase1Game("g1"))

	output, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 1})
	s.Require().NoError(err)

	s.True(output.Game.Cards[0].Flipped)
	s.False(output.Game.Cards[1].Flipped)
	s.Equal(1, output.Game.LastRound)
}

func (s *GameServiceTestSuite) TestFlipRowRejectsDoubleFlip() {
	s.putGame(s.phase1Game("g1"))

	_, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 1})
	s.Require().NoError(err)

	_, err = s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 1})
	s.ErrorIs(err, ErrRowAlreadyFlipped)
}

func (s *GameServiceTestSuite) TestFlipRowWrongRound() {
	s.putGame(s.phase1Game("g1"))

	_, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 2})
	s.ErrorIs(err, ErrWrongRound)
}

func (s *GameServiceTestSuite) TestFlipRowOnlyActivePlayer() {
	s.putGame(s.phase1Game("g1"))

	_, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testBob, Row: 1})
	s.ErrorIs(err, ErrNotActivePlayer)
}

func (s *GameServiceTestSuite) TestLayCardMatchingRowFeedsPot() {
	s.putGame(s.phase1Game("g1"))

	_, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 1})
	s.Require().NoError(err)

	// The tip is the seven of hearts; Alice holds the seven of spades
	output, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testAlice, CardIndex: 0})
	s.Require().NoError(err)

	s.Equal(1, output.Drinks)
	s.Equal(1, output.Game.DrinkCount)
	s.True(output.Game.Player(testAlice).Cards[0].Played)

	records := s.ledgerRecords("g1")
	s.Require().Len(records, 1)
	s.Equal(models.DrinkReasonRowMatch, records[0].Reason)
	s.Equal(testAlice, records[0].FromPlayerID)
	s.Equal(1, records[0].Count)
}

func (s *GameServiceTestSuite) TestLayCardChaosModeUsesRankTimesMultiplier() {
	game := s.phase1Game("g1")
	game.Settings.ChaosMode = true
	s.putGame(game)

	_, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 1})
	s.Require().NoError(err)

	output, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testAlice, CardIndex: 0})
	s.Require().NoError(err)

	// Rank 7 times the default multiplier of 2, not the row index
	s.Equal(14, output.Drinks)
	s.Equal(14, output.Game.DrinkCount)
}

func (s *GameServiceTestSuite) TestLayCardAnySeatedPlayerMayLay() {
	game := s.phase1Game("g1")
	game.Players[1].Cards = hand(card(7, models.SuitClubs))
	s.putGame(game)

	_, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 1})
	s.Require().NoError(err)

	// Laying is open to the whole table; Bob matches the revealed seven
	// even though it is Alice's turn
	output, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testBob, CardIndex: 0})
	s.Require().NoError(err)

	s.Equal(1, output.Drinks)
	s.Equal(1, output.Game.DrinkCount)
	s.True(output.Game.Player(testBob).Cards[0].Played)
	s.Equal(testAlice, output.Game.ActivePlayer)
}

func (s *GameServiceTestSuite) TestLayCardMismatchedCardRejected() {
	s.putGame(s.phase1Game("g1"))

	_, err := s.service.FlipRow(s.ctx, &FlipRowInput{GameID: "g1", PlayerID: testAlice, Row: 1})
	s.Require().NoError(err)

	// The nine of hearts does not match the seven under Number-only
	_, err = s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testAlice, CardIndex: 1})
	s.ErrorIs(err, ErrCardMismatch)
}

func (s *GameServiceTestSuite) TestLayCardRequiresFlippedRow() {
	s.putGame(s.phase1Game("g1"))

	_, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testAlice, CardIndex: 0})
	s.ErrorIs(err, ErrRowNotFlipped)
}

func (s *GameServiceTestSuite) TestNextPlayerAdvancesTurnAndRound() {
	s.putGame(s.phase1Game("g1"))

	output, err := s.service.NextPlayer(s.ctx, &NextPlayerInput{GameID: "g1", PlayerID: testAlice})
	s.Require().NoError(err)
	s.Equal(testBob, output.Game.ActivePlayer)
	s.True(output.Game.Player(testAlice).HadTurn)
	s.Equal(1, output.Game.Round)

	// Once everybody acted the round advances and the flags reset
	output, err = s.service.NextPlayer(s.ctx, &NextPlayerInput{GameID: "g1", PlayerID: testBob})
	s.Require().NoError(err)
	s.Equal(2, output.Game.Round)
	s.False(output.Game.Player(testAlice).HadTurn)
	s.False(output.Game.Player(testBob).HadTurn)
}

func (s *GameServiceTestSuite) TestNextPlayerFoldsPotToActor() {
	game := s.phase1Game("g1")
	game.DrinkCount = 3
	s.putGame(game)

	output, err := s.service.NextPlayer(s.ctx, &NextPlayerInput{GameID: "g1", PlayerID: testAlice})
	s.Require().NoError(err)

	s.Equal(0, output.Game.DrinkCount)
	s.Equal(3, output.Game.Statistics.For(testAlice).DrinksGiven)
	s.Equal(testAlice, output.Game.Statistics.TopDrinker.PlayerID)
	s.Equal(3, s.lifetimeStats(testAlice).DrinksGiven)

	records := s.ledgerRecords("g1")
	s.Require().Len(records, 1)
	s.Equal(models.DrinkReasonTurnPot, records[0].Reason)
	s.Equal(testAlice, records[0].ToPlayerID)
}

func (s *GameServiceTestSuite) TestStartPhase2SelectsBusfahrer() {
	// Alice holds three unplayed cards, Bob two; Default selects the max
	s.putGame(s.phase1Game("g1"))

	output, err := s.service.StartPhase2(s.ctx, &StartPhase2Input{GameID: "g1", PlayerID: testAlice})
	s.Require().NoError(err)

	game := output.Game
	s.Equal(models.PhaseTwo, game.Phase)
	s.Equal(1, game.Round)
	s.Empty(game.Cards)
	s.Empty(game.ActivePlayer)
	s.Equal([]string{testAlice}, game.Busfahrer)
}

func (s *GameServiceTestSuite) TestLayCardPhase2NumericFeedsPot() {
	game := s.phase2Game("g1", 1)
	game.Players[1].Cards = hand(card(2, models.SuitClubs))
	s.putGame(game)

	output, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testBob, CardIndex: 0})
	s.Require().NoError(err)

	s.Equal(2, output.Drinks)
	s.Equal(2, output.Game.DrinkCount)
	s.Equal(2, output.Game.Statistics.For(testBob).DrinksGiven)
}

func (s *GameServiceTestSuite) TestLayCardPhase2FaceCardAssignsGenderedDrinks() {
	game := s.phase2Game("g1", 2)
	game.Players[0].Cards = hand(card(models.JackNumber, models.SuitDiamonds))
	s.putGame(game)

	// A jack makes male players drink; Alice herself is exempt
	output, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testAlice, CardIndex: 0})
	s.Require().NoError(err)

	s.Equal(1, output.Drinks)
	s.Equal(1, output.Game.Player(testBob).Drinks)
	s.Equal(0, output.Game.Player(testAlice).Drinks)

	records := s.ledgerRecords("g1")
	s.Require().Len(records, 1)
	s.Equal(models.DrinkReasonFaceCard, records[0].Reason)
	s.Equal(testAlice, records[0].FromPlayerID)
	s.Equal(testBob, records[0].ToPlayerID)
}

func (s *GameServiceTestSuite) TestLayCardPhase2AceSetsExen() {
	game := s.phase2Game("g1", 3)
	game.Players[1].Cards = hand(card(models.AceNumber, models.SuitHearts))
	s.putGame(game)

	output, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testBob, CardIndex: 0})
	s.Require().NoError(err)

	s.True(output.Game.Player(testBob).Exen)
}

func (s *GameServiceTestSuite) TestLayCardPhase2WrongKindRejected() {
	game := s.phase2Game("g1", 1)
	game.Players[1].Cards = hand(card(models.KingNumber, models.SuitHearts))
	s.putGame(game)

	_, err := s.service.LayCard(s.ctx, &LayCardInput{GameID: "g1", PlayerID: testBob, CardIndex: 0})
	s.ErrorIs(err, ErrCardNotAllowed)
}

func (s *GameServiceTestSuite) TestAdvanceRoundBlocksOnUnplayedFaceCards() {
	game := s.phase2Game("g1", 2)
	game.Players[1].Cards = hand(card(models.KingNumber, models.SuitHearts))
	s.putGame(game)

	_, err := s.service.NextPlayer(s.ctx, &NextPlayerInput{GameID: "g1", PlayerID: testAlice})
	s.ErrorIs(err, ErrFaceCardsPending)
}

func (s *GameServiceTestSuite) TestAdvanceRoundFoldsPendingDrinks() {
	game := s.phase2Game("g1", 2)
	game.Players[1].Drinks = 2
	s.putGame(game)

	output, err := s.service.NextPlayer(s.ctx, &NextPlayerInput{GameID: "g1", PlayerID: testAlice})
	s.Require().NoError(err)

	s.Equal(3, output.Game.Round)
	s.Equal(0, output.Game.Player(testBob).Drinks)
	s.Equal(2, output.Game.Statistics.For(testBob).DrinksSelf)
	s.Equal(2, s.lifetimeStats(testBob).DrinksSelf)
}

func (s *GameServiceTestSuite) TestAdvanceRoundOwnerOnly() {
	s.putGame(s.phase2Game("g1", 1))

	_, err := s.service.NextPlayer(s.ctx, &NextPlayerInput{GameID: "g1", PlayerID: testBob})
	s.ErrorIs(err, ErrNotGameOwner)
}

func (s *GameServiceTestSuite) TestStartPhase3DealsDiamond() {
	s.putGame(s.phase2Game("g1", 3))

	output, err := s.service.StartPhase3(s.ctx, &StartPhase3Input{GameID: "g1", PlayerID: testAlice})
	s.Require().NoError(err)

	game := output.Game
	s.Equal(models.PhaseThree, game.Phase)
	s.Equal(models.Phase3StartRound, game.Round)
	s.Require().Len(game.Cards, models.DiamondSize)
	s.True(game.Cards[models.DiamondFirstIndex].Flipped)
	s.True(game.Cards[models.DiamondLastIndex].Flipped)
	for i := 1; i < models.DiamondLastIndex; i++ {
		s.False(game.Cards[i].Flipped)
	}
	s.Empty(game.TryOwner)
}

func (s *GameServiceTestSuite) TestCheckCardClaimsRunForBusfahrer() {
	s.putGame(s.phase3Game("g1"))

	// Alice never boarded the bus
	_, err := s.service.CheckCard(s.ctx, &CheckCardInput{
		GameID:    "g1",
		PlayerID:  testAlice,
		CardIndex: 1,
		Relation:  rules.RelationHigher,
	})
	s.ErrorIs(err, ErrNotBusfahrer)

	// The nine of spades beats the seven of hearts
	output, err := s.service.CheckCard(s.ctx, &CheckCardInput{
		GameID:    "g1",
		PlayerID:  testBob,
		CardIndex: 1,
		Relation:  rules.RelationHigher,
	})
	s.Require().NoError(err)

	s.True(output.Success)
	s.Equal(testBob, output.Game.TryOwner)
	s.Equal(models.Phase3StartRound-1, output.Game.Round)
	s.Equal(1, output.Game.LastCardIndex)
	s.True(output.Game.Cards[1].Flipped)
}

func (s *GameServiceTestSuite) TestCheckCardEveryoneSettingOpensRun() {
	game := s.phase3Game("g1")
	game.Settings.Everyone = true
	s.putGame(game)

	output, err := s.service.CheckCard(s.ctx, &CheckCardInput{
		GameID:    "g1",
		PlayerID:  testAlice,
		CardIndex: 1,
		Relation:  rules.RelationHigher,
	})
	s.Require().NoError(err)
	s.Equal(testAlice, output.Game.TryOwner)
}

func (s *GameServiceTestSuite) TestCheckCardRejectsSecondActor() {
	game := s.phase3Game("g1")
	game.Settings.Everyone = true
	game.TryOwner = testBob
	s.putGame(game)

	_, err := s.service.CheckCard(s.ctx, &CheckCardInput{
		GameID:    "g1",
		PlayerID:  testAlice,
		CardIndex: 1,
		Relation:  rules.RelationHigher,
	})
	s.ErrorIs(err, ErrNotTryOwner)
}

func (s *GameServiceTestSuite) TestCheckCardRejectsCardOutsideRow() {
	s.putGame(s.phase3Game("g1"))

	// Round nine allows only the first row, which is index 1
	_, err := s.service.CheckCard(s.ctx, &CheckCardInput{
		GameID:    "g1",
		PlayerID:  testBob,
		CardIndex: 2,
		Relation:  rules.RelationHigher,
	})
	s.ErrorIs(err, ErrInvalidCardIndex)
}

func (s *GameServiceTestSuite) TestCheckCardWrongGuessFailsRun() {
	s.putGame(s.phase3Game("g1"))

	// The nine of spades is not lower than the seven of hearts
	output, err := s.service.CheckCard(s.ctx, &CheckCardInput{
		GameID:    "g1",
		PlayerID:  testBob,
		CardIndex: 1,
		Relation:  rules.RelationLower,
	})
	s.Require().NoError(err)

	s.False(output.Success)
	s.Equal(models.RoundFailed, output.Game.Round)
	s.Empty(output.Game.TryOwner)
	s.Equal(1, output.Game.Statistics.For(testBob).Retries)
	s.Equal(1, s.lifetimeStats(testBob).Retries)

	// The run stays locked until the owner resets it
	_, err = s.service.CheckCard(s.ctx, &CheckCardInput{
		GameID:    "g1",
		PlayerID:  testBob,
		CardIndex: 2,
		Relation:  rules.RelationHigher,
	})
	s.ErrorIs(err, ErrRunFailed)
}

func (s *GameServiceTestSuite) TestRetryPhaseDealsFreshDiamond() {
	game := s.phase3Game("g1")
	game.Round = models.RoundFailed
	s.putGame(game)

	output, err := s.service.RetryPhase(s.ctx, &RetryPhaseInput{GameID: "g1", PlayerID: testAlice})
	s.Require().NoError(err)

	s.Equal(models.Phase3StartRound, output.Game.Round)
	s.Empty(output.Game.TryOwner)
	s.Require().Len(output.Game.Cards, models.DiamondSize)
	s.True(output.Game.Cards[models.DiamondFirstIndex].Flipped)
	s.True(output.Game.Cards[models.DiamondLastIndex].Flipped)
	s.False(output.Game.Cards[1].Flipped)
}

func (s *GameServiceTestSuite) TestRetryPhaseRequiresFailedRun() {
	s.putGame(s.phase3Game("g1"))

	_, err := s.service.RetryPhase(s.ctx, &RetryPhaseInput{GameID: "g1", PlayerID: testAlice})
	s.ErrorIs(err, ErrRunNotFailed)
}

func (s *GameServiceTestSuite) TestCheckLastCardWinEndsGame() {
	game := s.phase3Game("g1")
	game.Round = 0
	game.TryOwner = testBob
	game.LastCardIndex = 1
	game.Cards[1].Flipped = true
	s.putGame(game)

	// Final ten of spades: higher than the nine, different suit from the
	// first card's hearts
	output, err := s.service.CheckLastCard(s.ctx, &CheckLastCardInput{
		GameID:       "g1",
		PlayerID:     testBob,
		CardIndex:    models.DiamondLastIndex,
		Relation:     rules.RelationHigher,
		LastRelation: rules.RelationUnequal,
	})
	s.Require().NoError(err)

	s.True(output.Success)
	s.True(output.Game.EndGame)
	s.Equal(1, s.lifetimeStats(testBob).GamesWon)
}

func (s *GameServiceTestSuite) TestCheckLastCardFailureResetsRun() {
	game := s.phase3Game("g1")
	game.Round = 0
	game.TryOwner = testBob
	game.LastCardIndex = 1
	game.Cards[1].Flipped = true
	s.putGame(game)

	output, err := s.service.CheckLastCard(s.ctx, &CheckLastCardInput{
		GameID:       "g1",
		PlayerID:     testBob,
		CardIndex:    models.DiamondLastIndex,
		Relation:     rules.RelationLower,
		LastRelation: rules.RelationUnequal,
	})
	s.Require().NoError(err)

	s.False(output.Success)
	s.Equal(models.RoundFailed, output.Game.Round)
	s.Empty(output.Game.TryOwner)
	s.Equal(1, s.lifetimeStats(testBob).Retries)
}

func (s *GameServiceTestSuite) TestCheckLastCardRequiresClearedDiamond() {
	s.putGame(s.phase3Game("g1"))

	_, err := s.service.CheckLastCard(s.ctx, &CheckLastCardInput{
		GameID:       "g1",
		PlayerID:     testBob,
		CardIndex:    models.DiamondLastIndex,
		Relation:     rules.RelationHigher,
		LastRelation: rules.RelationUnequal,
	})
	s.ErrorIs(err, ErrRunNotFinished)
}

func (s *GameServiceTestSuite) TestCheckLastCardAfterWinRejected() {
	game := s.phase3Game("g1")
	game.Round = 0
	game.TryOwner = testBob
	game.EndGame = true
	s.putGame(game)

	_, err := s.service.CheckLastCard(s.ctx, &CheckLastCardInput{
		GameID:       "g1",
		PlayerID:     testBob,
		CardIndex:    models.DiamondLastIndex,
		Relation:     rules.RelationHigher,
		LastRelation: rules.RelationUnequal,
	})
	s.ErrorIs(err, ErrGameFinished)
}
