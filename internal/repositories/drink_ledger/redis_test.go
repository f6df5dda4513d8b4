package drink_ledger

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetDrinkRecordsForGame() {
	// Record a pot contribution and a targeted face card drink
	first, err := s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID:       "test-game-id",
		FromPlayerID: "player-1",
		Count:        3,
		Reason:       models.DrinkReasonRowMatch,
		Timestamp:    s.testNow,
	})
	s.Require().NoError(err)
	s.Require().NotNil(first.Record)
	s.NotEmpty(first.Record.ID)

	second, err := s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID:       "test-game-id",
		FromPlayerID: "player-1",
		ToPlayerID:   "player-2",
		Count:        1,
		Reason:       models.DrinkReasonFaceCard,
		Timestamp:    s.testNow.Add(time.Second),
	})
	s.Require().NoError(err)

	// Unrelated game records stay invisible
	_, err = s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID:     "other-game-id",
		ToPlayerID: "player-2",
		Count:      2,
		Reason:     models.DrinkReasonTurnPot,
		Timestamp:  s.testNow.Add(2 * time.Second),
	})
	s.Require().NoError(err)

	result, err := s.repo.GetDrinkRecordsForGame(context.Background(), &GetDrinkRecordsForGameInput{
		GameID: "test-game-id",
	})
	s.Require().NoError(err)
	s.Require().Len(result.Records, 2)

	s.Equal(first.Record.ID, result.Records[0].ID)
	s.Equal(3, result.Records[0].Count)
	s.Equal(models.DrinkReasonRowMatch, result.Records[0].Reason)
	s.Equal("", result.Records[0].ToPlayerID)

	s.Equal(second.Record.ID, result.Records[1].ID)
	s.Equal("player-2", result.Records[1].ToPlayerID)
}

func (s *RedisRepositoryTestSuite) TestGetDrinkRecordsForGameEmpty() {
	result, err := s.repo.GetDrinkRecordsForGame(context.Background(), &GetDrinkRecordsForGameInput{
		GameID: "empty-game-id",
	})
	s.Require().NoError(err)
	s.Len(result.Records, 0)
}

func (s *RedisRepositoryTestSuite) TestGetDrinkRecordsForPlayer() {
	// player-1 assigns one drink and receives another
	_, err := s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID:       "test-game-id",
		FromPlayerID: "player-1",
		ToPlayerID:   "player-2",
		Count:        1,
		Reason:       models.DrinkReasonFaceCard,
		Timestamp:    s.testNow,
	})
	s.Require().NoError(err)

	_, err = s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID:     "test-game-id",
		ToPlayerID: "player-1",
		Count:      4,
		Reason:     models.DrinkReasonTurnPot,
		Timestamp:  s.testNow.Add(time.Second),
	})
	s.Require().NoError(err)

	_, err = s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID:       "test-game-id",
		FromPlayerID: "player-3",
		ToPlayerID:   "player-2",
		Count:        1,
		Reason:       models.DrinkReasonFaceCard,
		Timestamp:    s.testNow.Add(2 * time.Second),
	})
	s.Require().NoError(err)

	result, err := s.repo.GetDrinkRecordsForPlayer(context.Background(), &GetDrinkRecordsForPlayerInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Require().Len(result.Records, 2)
	s.Equal("player-2", result.Records[0].ToPlayerID)
	s.Equal(models.DrinkReasonTurnPot, result.Records[1].Reason)
}

func (s *RedisRepositoryTestSuite) TestCreateDrinkRecordValidation() {
	_, err := s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID: "test-game-id",
		Count:  1,
		Reason: models.DrinkReasonTurnPot,
	})
	s.Require().Error(err)

	_, err = s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		GameID:       "test-game-id",
		FromPlayerID: "player-1",
		Count:        0,
		Reason:       models.DrinkReasonRowMatch,
	})
	s.Require().Error(err)

	_, err = s.repo.CreateDrinkRecord(context.Background(), &CreateDrinkRecordInput{
		FromPlayerID: "player-1",
		Count:        1,
		Reason:       models.DrinkReasonRowMatch,
	})
	s.Require().Error(err)
}
