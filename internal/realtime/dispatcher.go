package realtime

import (
	"context"
	"errors"
	"reflect"

	"go.uber.org/zap"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
	gameRepo "github.com/Ogoter374s/BusfahrerV2-sub001/internal/repositories/game"
)

// GameReader is the slice of the game repository the dispatcher needs
type GameReader interface {
	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, input *gameRepo.GetGameInput) (*models.Game, error)
}

// DispatcherConfig holds configuration for the change dispatcher
type DispatcherConfig struct {
	// Games re-reads affected documents after a change notification
	Games GameReader

	// Registry receives the projected events
	Registry *Registry

	// Logger receives dispatcher logs; defaults to a no-op logger
	Logger *zap.Logger
}

// snapshot caches the last projection broadcast per game, one field per
// facet. A change notification only produces events for facets that moved.
type snapshot struct {
	game    *GameUpdatePayload
	players *PlayersUpdatePayload
	drinks  *DrinkUpdatePayload
	cards   *CardsUpdatePayload
}

// Dispatcher turns persisted-state change notifications into typed events.
// A single Run goroutine consumes the feed, so per-game event order follows
// commit order. Several mutations may coalesce into one notification; the
// dispatcher re-reads the document and diffs, so subscribers always see the
// last value per facet.
type Dispatcher struct {
	games    GameReader
	registry *Registry
	logger   *zap.Logger

	// cache is only touched from the Run goroutine
	cache map[string]*snapshot
}

// NewDispatcher creates a change dispatcher
func NewDispatcher(cfg *DispatcherConfig) (*Dispatcher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Games == nil {
		return nil, errors.New("game reader cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Dispatcher{
		games:    cfg.Games,
		registry: cfg.Registry,
		logger:   logger,
		cache:    make(map[string]*snapshot),
	}, nil
}

// Run consumes change notifications until the channel closes or the context
// is cancelled. It is meant to run as a single dedicated goroutine.
func (d *Dispatcher) Run(ctx context.Context, changes <-chan gameRepo.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			d.handle(ctx, change)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, change gameRepo.Change) {
	switch change.Kind {
	case gameRepo.ChangeKindChat:
		d.registry.Broadcast(Event{
			Type:   EventGameChat,
			GameID: change.GameID,
		})

	case gameRepo.ChangeKindDelete:
		d.handleDelete(change.GameID, change.SuccessorID)

	case gameRepo.ChangeKindUpdate:
		d.handleUpdate(ctx, change.GameID)

	default:
		d.logger.Warn("unknown change kind on feed",
			zap.String("game_id", change.GameID),
			zap.String("kind", string(change.Kind)))
	}
}

func (d *Dispatcher) handleDelete(gameID, successorID string) {
	delete(d.cache, gameID)
	d.registry.Broadcast(Event{
		Type:   EventGameUpdate,
		GameID: gameID,
		Payload: &GameUpdatePayload{
			Deleted:     true,
			SuccessorID: successorID,
		},
	})
}

func (d *Dispatcher) handleUpdate(ctx context.Context, gameID string) {
	game, err := d.games.GetGame(ctx, &gameRepo.GetGameInput{GameID: gameID})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			// The document vanished between commit and re-read; the
			// delete notification handles subscriber cleanup.
			delete(d.cache, gameID)
			return
		}
		d.logger.Error("failed to re-read changed game",
			zap.String("game_id", gameID),
			zap.Error(err))
		return
	}

	next := &snapshot{
		game:    ProjectGame(game),
		players: ProjectPlayers(game),
		drinks:  &DrinkUpdatePayload{DrinkCount: game.DrinkCount},
		cards:   ProjectCards(game),
	}

	prev := d.cache[gameID]
	d.cache[gameID] = next

	if prev == nil || !reflect.DeepEqual(prev.game, next.game) {
		d.registry.Broadcast(Event{Type: EventGameUpdate, GameID: gameID, Payload: next.game})
	}
	if prev == nil || !reflect.DeepEqual(prev.players, next.players) {
		d.registry.Broadcast(Event{Type: EventPlayersUpdate, GameID: gameID, Payload: next.players})
	}
	if prev == nil || !reflect.DeepEqual(prev.drinks, next.drinks) {
		d.registry.Broadcast(Event{Type: EventDrinkUpdate, GameID: gameID, Payload: next.drinks})
	}
	if prev == nil || !reflect.DeepEqual(prev.cards, next.cards) {
		d.registry.Broadcast(Event{Type: EventCardsUpdate, GameID: gameID, Payload: next.cards})
	}
}
