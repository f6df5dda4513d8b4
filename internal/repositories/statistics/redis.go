package statistics

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for the per-player stats hash
	playerStatsKeyPrefix = "player_stats:"

	// Hash fields
	fieldDrinksGiven = "drinks_given"
	fieldDrinksSelf  = "drinks_self"
	fieldRetries     = "retries"
	fieldGamesPlayed = "games_played"
	fieldGamesWon    = "games_won"
)

// Config holds configuration for the Redis statistics repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed statistics repository
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

// AddDrinks increments a player's cumulative drink counters
func (r *redisRepository) AddDrinks(ctx context.Context, input *AddDrinksInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	if input.Given == 0 && input.Self == 0 {
		return nil
	}

	statsKey := fmt.Sprintf("%s%s", playerStatsKeyPrefix, input.PlayerID)

	pipe := r.client.Pipeline()
	if input.Given != 0 {
		pipe.HIncrBy(ctx, statsKey, fieldDrinksGiven, int64(input.Given))
	}
	if input.Self != 0 {
		pipe.HIncrBy(ctx, statsKey, fieldDrinksSelf, int64(input.Self))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add drinks for player %s: %w", input.PlayerID, err)
	}

	return nil
}

// AddRetry increments a player's failed phase 3 run counter
func (r *redisRepository) AddRetry(ctx context.Context, input *AddRetryInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	statsKey := fmt.Sprintf("%s%s", playerStatsKeyPrefix, input.PlayerID)
	if err := r.client.HIncrBy(ctx, statsKey, fieldRetries, 1).Err(); err != nil {
		return fmt.Errorf("failed to add retry for player %s: %w", input.PlayerID, err)
	}

	return nil
}

// AddGamePlayed increments a player's started games counter
func (r *redisRepository) AddGamePlayed(ctx context.Context, input *AddGamePlayedInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	statsKey := fmt.Sprintf("%s%s", playerStatsKeyPrefix, input.PlayerID)
	if err := r.client.HIncrBy(ctx, statsKey, fieldGamesPlayed, 1).Err(); err != nil {
		return fmt.Errorf("failed to add played game for player %s: %w", input.PlayerID, err)
	}

	return nil
}

// AddGameWon increments a player's completed runs counter
func (r *redisRepository) AddGameWon(ctx context.Context, input *AddGameWonInput) error {
	if input == nil || input.PlayerID == "" {
		return errors.New("input and player ID cannot be empty")
	}

	statsKey := fmt.Sprintf("%s%s", playerStatsKeyPrefix, input.PlayerID)
	if err := r.client.HIncrBy(ctx, statsKey, fieldGamesWon, 1).Err(); err != nil {
		return fmt.Errorf("failed to add won game for player %s: %w", input.PlayerID, err)
	}

	return nil
}

// GetPlayerStatistics retrieves a player's cumulative counters. Unknown
// players read as all zeros.
func (r *redisRepository) GetPlayerStatistics(ctx context.Context, input *GetPlayerStatisticsInput) (*GetPlayerStatisticsOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	statsKey := fmt.Sprintf("%s%s", playerStatsKeyPrefix, input.PlayerID)
	fields, err := r.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics for player %s: %w", input.PlayerID, err)
	}

	stats := &Statistics{PlayerID: input.PlayerID}
	for field, raw := range fields {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse statistics field %s: %w", field, err)
		}

		switch field {
		case fieldDrinksGiven:
			stats.DrinksGiven = value
		case fieldDrinksSelf:
			stats.DrinksSelf = value
		case fieldRetries:
			stats.Retries = value
		case fieldGamesPlayed:
			stats.GamesPlayed = value
		case fieldGamesWon:
			stats.GamesWon = value
		}
	}

	return &GetPlayerStatisticsOutput{Statistics: stats}, nil
}
