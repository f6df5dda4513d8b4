package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	gameRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/game"
)

// stubGameReader serves game documents from a map
type stubGameReader struct {
	games map[string]*models.Game
}

func (r *stubGameReader) GetGame(_ context.Context, input *gameRepo.GetGameInput) (*models.Game, error) {
	game, ok := r.games[input.GameID]
	if !ok {
		return nil, gameRepo.ErrGameNotFound
	}
	return game, nil
}

type DispatcherTestSuite struct {
	suite.Suite

	reader     *stubGameReader
	registry   *Registry
	dispatcher *Dispatcher
	subscriber *chanSubscriber
	game       *models.Game
}

func (s *DispatcherTestSuite) SetupTest() {
	s.game = &models.Game{
		ID:     "game-1",
		Status: models.GameStatusActive,
		Phase:  models.PhaseOne,
		Round:  1,
		Players: []*models.Player{
			{ID: "alice", Name: "Alice", Role: models.PlayerRoleOwner, Gender: models.GenderFemale},
			{ID: "bob", Name: "Bob", Role: models.PlayerRolePlayer, Gender: models.GenderMale},
		},
		ActivePlayer: "alice",
		TurnOrder:    []string{"alice", "bob"},
		Cards: []models.TableCard{
			{Card: models.Card{Number: 7, Type: models.SuitHearts}, Flipped: true},
			{Card: models.Card{Number: 9, Type: models.SuitSpades}},
		},
	}

	s.reader = &stubGameReader{games: map[string]*models.Game{"game-1": s.game}}
	s.registry = NewRegistry(&RegistryConfig{})

	var err error
	s.dispatcher, err = NewDispatcher(&DispatcherConfig{
		Games:    s.reader,
		Registry: s.registry,
	})
	s.Require().NoError(err)

	s.subscriber = newChanSubscriber(16)
	s.registry.Subscribe("game-1", s.subscriber)
}

// drain collects every event currently delivered to the subscriber
func (s *DispatcherTestSuite) drain() map[EventType]Event {
	events := make(map[EventType]Event)
	for {
		select {
		case ev := <-s.subscriber.events:
			events[ev.Type] = ev
		default:
			return events
		}
	}
}

func (s *DispatcherTestSuite) dispatch(change gameRepo.Change) {
	s.dispatcher.handle(context.Background(), change)
}

func (s *DispatcherTestSuite) TestFirstUpdateEmitsEveryFacet() {
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})

	events := s.drain()
	s.Len(events, 4)
	s.Contains(events, EventGameUpdate)
	s.Contains(events, EventPlayersUpdate)
	s.Contains(events, EventDrinkUpdate)
	s.Contains(events, EventCardsUpdate)

	payload, ok := events[EventGameUpdate].Payload.(*GameUpdatePayload)
	s.Require().True(ok)
	s.Equal("phase1", payload.Phase)
	s.Equal("alice", payload.ActivePlayer)
	s.Len(payload.Players, 2)
}

func (s *DispatcherTestSuite) TestUnchangedFacetsStaySilent() {
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})
	s.drain()

	// Only the pot moves
	s.game.DrinkCount = 5
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})

	events := s.drain()
	s.Len(events, 1)

	payload, ok := events[EventDrinkUpdate].Payload.(*DrinkUpdatePayload)
	s.Require().True(ok)
	s.Equal(5, payload.DrinkCount)
}

func (s *DispatcherTestSuite) TestCoalescedMutationsEmitLastValue() {
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})
	s.drain()

	// Two mutations landed before the dispatcher got to re-read; it only
	// ever sees, and broadcasts, the final state.
	s.game.DrinkCount = 3
	s.game.DrinkCount = 8
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})

	events := s.drain()
	payload, ok := events[EventDrinkUpdate].Payload.(*DrinkUpdatePayload)
	s.Require().True(ok)
	s.Equal(8, payload.DrinkCount)
}

func (s *DispatcherTestSuite) TestFaceDownCardsAreNotExposed() {
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})

	events := s.drain()
	payload, ok := events[EventCardsUpdate].Payload.(*CardsUpdatePayload)
	s.Require().True(ok)
	s.Require().Len(payload.Cards, 2)

	s.True(payload.Cards[0].Flipped)
	s.Equal(7, payload.Cards[0].Number)

	s.False(payload.Cards[1].Flipped)
	s.Zero(payload.Cards[1].Number)
	s.Empty(payload.Cards[1].Type)
}

func (s *DispatcherTestSuite) TestChatChangeEmitsPresencePing() {
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindChat})

	events := s.drain()
	s.Len(events, 1)
	s.Contains(events, EventGameChat)
	s.Nil(events[EventGameChat].Payload)
}

func (s *DispatcherTestSuite) TestDeleteEmitsFinalUpdateWithSuccessor() {
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})
	s.drain()

	s.dispatch(gameRepo.Change{
		GameID:      "game-1",
		Kind:        gameRepo.ChangeKindDelete,
		SuccessorID: "game-2",
	})

	events := s.drain()
	payload, ok := events[EventGameUpdate].Payload.(*GameUpdatePayload)
	s.Require().True(ok)
	s.True(payload.Deleted)
	s.Equal("game-2", payload.SuccessorID)

	// The cache entry is gone, so a recreated game re-emits everything
	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})
	s.Len(s.drain(), 4)
}

func (s *DispatcherTestSuite) TestVanishedGameIsIgnored() {
	delete(s.reader.games, "game-1")

	s.dispatch(gameRepo.Change{GameID: "game-1", Kind: gameRepo.ChangeKindUpdate})

	s.Empty(s.drain())
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}
