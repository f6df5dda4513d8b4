package statistics

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite

	miniRedis  *miniredis.Miniredis
	client     *redis.Client
	repository *redisRepository
	ctx        context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	var err error

	s.miniRedis, err = miniredis.Run()
	s.Require().NoError(err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repository, err = NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	if s.client != nil {
		s.client.Close()
	}

	if s.miniRedis != nil {
		s.miniRedis.Close()
	}
}

func (s *RedisRepositoryTestSuite) TestAddDrinksAccumulates() {
	err := s.repository.AddDrinks(s.ctx, &AddDrinksInput{
		PlayerID: "player-1",
		Given:    4,
		Self:     1,
	})
	s.Require().NoError(err)

	err = s.repository.AddDrinks(s.ctx, &AddDrinksInput{
		PlayerID: "player-1",
		Given:    2,
	})
	s.Require().NoError(err)

	output, err := s.repository.GetPlayerStatistics(s.ctx, &GetPlayerStatisticsInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Equal(6, output.Statistics.DrinksGiven)
	s.Equal(1, output.Statistics.DrinksSelf)
	s.Equal(0, output.Statistics.Retries)
}

func (s *RedisRepositoryTestSuite) TestCountersAreIndependentPerPlayer() {
	err := s.repository.AddGamePlayed(s.ctx, &AddGamePlayedInput{PlayerID: "player-1"})
	s.Require().NoError(err)

	err = s.repository.AddGamePlayed(s.ctx, &AddGamePlayedInput{PlayerID: "player-2"})
	s.Require().NoError(err)

	err = s.repository.AddGameWon(s.ctx, &AddGameWonInput{PlayerID: "player-2"})
	s.Require().NoError(err)

	err = s.repository.AddRetry(s.ctx, &AddRetryInput{PlayerID: "player-2"})
	s.Require().NoError(err)

	first, err := s.repository.GetPlayerStatistics(s.ctx, &GetPlayerStatisticsInput{PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Equal(1, first.Statistics.GamesPlayed)
	s.Equal(0, first.Statistics.GamesWon)
	s.Equal(0, first.Statistics.Retries)

	second, err := s.repository.GetPlayerStatistics(s.ctx, &GetPlayerStatisticsInput{PlayerID: "player-2"})
	s.Require().NoError(err)
	s.Equal(1, second.Statistics.GamesPlayed)
	s.Equal(1, second.Statistics.GamesWon)
	s.Equal(1, second.Statistics.Retries)
}

func (s *RedisRepositoryTestSuite) TestGetPlayerStatisticsUnknownPlayer() {
	output, err := s.repository.GetPlayerStatistics(s.ctx, &GetPlayerStatisticsInput{
		PlayerID: "nobody",
	})
	s.Require().NoError(err)
	s.Equal("nobody", output.Statistics.PlayerID)
	s.Equal(0, output.Statistics.DrinksGiven)
	s.Equal(0, output.Statistics.DrinksSelf)
	s.Equal(0, output.Statistics.GamesPlayed)
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	s.Error(s.repository.AddDrinks(s.ctx, nil))
	s.Error(s.repository.AddDrinks(s.ctx, &AddDrinksInput{Given: 1}))
	s.Error(s.repository.AddRetry(s.ctx, &AddRetryInput{}))
	s.Error(s.repository.AddGamePlayed(s.ctx, nil))
	s.Error(s.repository.AddGameWon(s.ctx, &AddGameWonInput{}))

	_, err := s.repository.GetPlayerStatistics(s.ctx, &GetPlayerStatisticsInput{})
	s.Error(err)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
