package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix   = "game:"
	waitingGamesKey = "waiting_games"

	// changeChannel carries change notifications for the game collection
	changeChannel = "game:changes"

	// maxUpdateAttempts bounds optimistic retries of a conflicted update
	maxUpdateAttempts = 5
)

// ErrGameNotFound is returned when a game is not found
var ErrGameNotFound = errors.New("game not found")

// ErrGameAlreadyExists is returned when creating a game whose ID is taken
var ErrGameAlreadyExists = errors.New("game already exists")

// ErrUpdateConflict is returned when an update keeps losing against
// concurrent writers
var ErrUpdateConflict = errors.New("too many concurrent game updates")

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateGame persists a freshly built game document
func (r *redisRepository) CreateGame(ctx context.Context, input *CreateGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}

	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	// Marshal the game to JSON
	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	// Create the document only if the ID is free
	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.Game.ID)
	created, err := r.client.SetNX(ctx, gameKey, gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	if !created {
		return ErrGameAlreadyExists
	}

	// Index waiting games for the lobby browser
	if input.Game.Status == models.GameStatusWaiting {
		if err := r.client.SAdd(ctx, waitingGamesKey, input.Game.ID).Err(); err != nil {
			return fmt.Errorf("failed to index waiting game: %w", err)
		}
	}

	r.publishChange(ctx, Change{GameID: input.Game.ID, Kind: ChangeKindUpdate})
	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	// Get the game from Redis
	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.GameID)
	gameJSON, err := r.client.Get(ctx, gameKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	// Unmarshal the game from JSON
	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// UpdateGame applies a mutation to a game document under optimistic locking.
// The mutate callback runs against the freshly read document; returning an
// error aborts the update without writing. Conflicting concurrent writers
// cause the whole read-validate-write cycle to rerun against fresh state.
func (r *redisRepository) UpdateGame(ctx context.Context, input *UpdateGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	if input.Mutate == nil {
		return nil, errors.New("mutate callback cannot be nil")
	}

	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.GameID)

	var updated *models.Game
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			gameJSON, err := tx.Get(ctx, gameKey).Result()
			if err != nil {
				if err == redis.Nil {
					return ErrGameNotFound
				}
				return fmt.Errorf("failed to get game: %w", err)
			}

			var game models.Game
			if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
				return fmt.Errorf("failed to unmarshal game: %w", err)
			}

			// Mutation errors pass through untouched so callers can
			// return their own typed rule errors.
			if err := input.Mutate(&game); err != nil {
				return err
			}

			game.UpdatedAt = time.Now()

			out, err := json.Marshal(&game)
			if err != nil {
				return fmt.Errorf("failed to marshal game: %w", err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, gameKey, out, 0)
				if game.Status == models.GameStatusWaiting {
					pipe.SAdd(ctx, waitingGamesKey, game.ID)
				} else {
					pipe.SRem(ctx, waitingGamesKey, game.ID)
				}
				return nil
			})
			if err != nil {
				return err
			}

			updated = &game
			return nil
		}, gameKey)

		if err == nil {
			r.publishChange(ctx, Change{GameID: input.GameID, Kind: ChangeKindUpdate})
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Lost the race, reread and revalidate
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: game %s", ErrUpdateConflict, input.GameID)
}

// DeleteGame removes a game from Redis
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	// Make sure the game exists so callers can tell deletes from typos
	if _, err := r.GetGame(ctx, &GetGameInput{GameID: input.GameID}); err != nil {
		return err
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Delete the game
	gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, input.GameID)
	pipe.Del(ctx, gameKey)

	// Remove the game from the waiting games set
	pipe.SRem(ctx, waitingGamesKey, input.GameID)

	// Execute the transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	r.publishChange(ctx, Change{
		GameID:      input.GameID,
		Kind:        ChangeKindDelete,
		SuccessorID: input.SuccessorID,
	})
	return nil
}

// ListWaitingGames retrieves every game waiting for players
func (r *redisRepository) ListWaitingGames(ctx context.Context, input *ListWaitingGamesInput) (*ListWaitingGamesOutput, error) {
	// Get all waiting game IDs from the set
	gameIDs, err := r.client.SMembers(ctx, waitingGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get waiting game IDs: %w", err)
	}

	// If there are no waiting games, return an empty slice
	if len(gameIDs) == 0 {
		return &ListWaitingGamesOutput{
			Games: []*models.Game{},
		}, nil
	}

	// Get all games in parallel using a pipeline
	pipe := r.client.Pipeline()
	gameCommands := make(map[string]*redis.StringCmd)

	for _, gameID := range gameIDs {
		gameKey := fmt.Sprintf("%s%s", gameKeyPrefix, gameID)
		gameCommands[gameID] = pipe.Get(ctx, gameKey)
	}

	// Execute the pipeline
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get waiting games: %w", err)
	}

	// Process the results
	games := make([]*models.Game, 0, len(gameIDs))
	for gameID, cmd := range gameCommands {
		gameJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Game was deleted between getting the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
		}

		var game models.Game
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameID, err)
		}

		games = append(games, &game)
	}

	// Oldest lobby first
	sort.Slice(games, func(i, j int) bool {
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})

	return &ListWaitingGamesOutput{
		Games: games,
	}, nil
}

// PublishChatPing emits a chat-kind change so subscribers refetch messages
func (r *redisRepository) PublishChatPing(ctx context.Context, input *PublishChatPingInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	r.publishChange(ctx, Change{GameID: input.GameID, Kind: ChangeKindChat})
	return nil
}

// SubscribeChanges opens a feed of change notifications for the game
// collection. The caller owns the feed and must close it.
func (r *redisRepository) SubscribeChanges(ctx context.Context) (*ChangeFeed, error) {
	pubsub := r.client.Subscribe(ctx, changeChannel)

	// Force the subscription onto the wire before anyone writes
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to game changes: %w", err)
	}

	return newChangeFeed(pubsub), nil
}

// publishChange is best-effort: pushes are at-most-once, and a missed
// notification only delays subscribers until the next mutation.
func (r *redisRepository) publishChange(ctx context.Context, change Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		return
	}
	r.client.Publish(ctx, changeChannel, payload)
}
