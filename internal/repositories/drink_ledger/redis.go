package drink_ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

const (
	// Key prefixes for Redis
	drinkKeyPrefix        = "drink:"
	gameDrinksKeyPrefix   = "game_drinks:"
	playerDrinksKeyPrefix = "player_drinks:"
)

// ErrDrinkNotFound is returned when a drink record is not found
var ErrDrinkNotFound = errors.New("drink record not found")

// Config holds configuration for the Redis drink ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed drink ledger repository
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

// AddDrinkRecord adds a drink record to the ledger
func (r *redisRepository) AddDrinkRecord(ctx context.Context, input *AddDrinkRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record

	if record.ID == "" {
		return errors.New("drink record ID cannot be empty")
	}

	if record.GameID == "" {
		return errors.New("drink record game ID cannot be empty")
	}

	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	// Marshal the record to JSON
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal drink record: %w", err)
	}

	// Create a Redis transaction
	pipe := r.client.Pipeline()

	// Store the drink record
	drinkKey := fmt.Sprintf("%s%s", drinkKeyPrefix, record.ID)
	pipe.Set(ctx, drinkKey, recordJSON, 0)

	// Add to the game's drink records sorted set
	gameKey := fmt.Sprintf("%s%s", gameDrinksKeyPrefix, record.GameID)
	pipe.ZAdd(ctx, gameKey, redis.Z{
		Score:  float64(record.Timestamp.UnixNano()),
		Member: record.ID,
	})

	// Index per player; pot entries leave one side empty
	if record.FromPlayerID != "" {
		fromPlayerKey := fmt.Sprintf("%s%s:from", playerDrinksKeyPrefix, record.FromPlayerID)
		pipe.ZAdd(ctx, fromPlayerKey, redis.Z{
			Score:  float64(record.Timestamp.UnixNano()),
			Member: record.ID,
		})
	}

	if record.ToPlayerID != "" {
		toPlayerKey := fmt.Sprintf("%s%s:to", playerDrinksKeyPrefix, record.ToPlayerID)
		pipe.ZAdd(ctx, toPlayerKey, redis.Z{
			Score:  float64(record.Timestamp.UnixNano()),
			Member: record.ID,
		})
	}

	// Execute the transaction
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add drink record: %w", err)
	}

	return nil
}

// CreateDrinkRecord builds a drink record with a generated UUID and stores it
func (r *redisRepository) CreateDrinkRecord(ctx context.Context, input *CreateDrinkRecordInput) (*CreateDrinkRecordOutput, error) {
	// Validate input
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}

	if input.FromPlayerID == "" && input.ToPlayerID == "" {
		return nil, errors.New("drink record needs a player on at least one side")
	}

	if input.Count <= 0 {
		return nil, errors.New("drink count must be positive")
	}

	// Create the drink record
	record := &models.DrinkRecord{
		ID:           uuid.New().String(),
		GameID:       input.GameID,
		FromPlayerID: input.FromPlayerID,
		ToPlayerID:   input.ToPlayerID,
		Count:        input.Count,
		Reason:       input.Reason,
		Timestamp:    input.Timestamp,
	}

	// Save the drink record
	if err := r.AddDrinkRecord(ctx, &AddDrinkRecordInput{Record: record}); err != nil {
		return nil, fmt.Errorf("failed to save drink record: %w", err)
	}

	return &CreateDrinkRecordOutput{Record: record}, nil
}

// GetDrinkRecordsForGame retrieves all drink records for a game in
// chronological order
func (r *redisRepository) GetDrinkRecordsForGame(ctx context.Context, input *GetDrinkRecordsForGameInput) (*GetDrinkRecordsForGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	// Get all drink IDs for the game
	gameKey := fmt.Sprintf("%s%s", gameDrinksKeyPrefix, input.GameID)
	drinkIDs, err := r.client.ZRange(ctx, gameKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get drink IDs for game: %w", err)
	}

	records, err := r.fetchRecords(ctx, drinkIDs)
	if err != nil {
		return nil, err
	}

	return &GetDrinkRecordsForGameOutput{
		Records: records,
	}, nil
}

// GetDrinkRecordsForPlayer retrieves all drink records a player assigned
// or received, in chronological order
func (r *redisRepository) GetDrinkRecordsForPlayer(ctx context.Context, input *GetDrinkRecordsForPlayerInput) (*GetDrinkRecordsForPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	// Get both sides of the player's records
	fromPlayerKey := fmt.Sprintf("%s%s:from", playerDrinksKeyPrefix, input.PlayerID)
	toPlayerKey := fmt.Sprintf("%s%s:to", playerDrinksKeyPrefix, input.PlayerID)

	pipe := r.client.Pipeline()
	fromCmd := pipe.ZRange(ctx, fromPlayerKey, 0, -1)
	toCmd := pipe.ZRange(ctx, toPlayerKey, 0, -1)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get drink IDs for player: %w", err)
	}

	// Combine and deduplicate drink IDs, keeping order
	seen := make(map[string]struct{})
	var drinkIDs []string
	for _, id := range append(fromCmd.Val(), toCmd.Val()...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		drinkIDs = append(drinkIDs, id)
	}

	records, err := r.fetchRecords(ctx, drinkIDs)
	if err != nil {
		return nil, err
	}

	// The two indexes interleave, so restore chronological order
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	return &GetDrinkRecordsForPlayerOutput{
		Records: records,
	}, nil
}

// fetchRecords loads the given record IDs, preserving their order and
// skipping any deleted in the meantime.
func (r *redisRepository) fetchRecords(ctx context.Context, drinkIDs []string) ([]*models.DrinkRecord, error) {
	if len(drinkIDs) == 0 {
		return []*models.DrinkRecord{}, nil
	}

	pipe := r.client.Pipeline()
	drinkCommands := make([]*redis.StringCmd, 0, len(drinkIDs))
	for _, drinkID := range drinkIDs {
		drinkKey := fmt.Sprintf("%s%s", drinkKeyPrefix, drinkID)
		drinkCommands = append(drinkCommands, pipe.Get(ctx, drinkKey))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get drink records: %w", err)
	}

	records := make([]*models.DrinkRecord, 0, len(drinkIDs))
	for i, cmd := range drinkCommands {
		recordJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get drink record %s: %w", drinkIDs[i], err)
		}

		var record models.DrinkRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal drink record %s: %w", drinkIDs[i], err)
		}

		records = append(records, &record)
	}

	return records, nil
}
