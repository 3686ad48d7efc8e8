//go:build integration

package oracle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"attestor/internal/oracle"
	platformredis "attestor/internal/platform/redis"
	"attestor/pkg/platform/sentinel"
	"attestor/pkg/testutil/containers"
)

type CacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *oracle.ValidationCache
}

func TestCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	client := &platformredis.Client{Client: s.redis.Client}
	s.cache = oracle.NewValidationCache(client, time.Minute)
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *CacheSuite) TestSaveAndFindRoundTrip() {
	ctx := context.Background()
	stored := oracle.Validation{
		Valid:       true,
		Event:       &oracle.Event{ID: 1, Name: "Programming Contest 2024", Organizer: "Tech University"},
		Participant: &oracle.Participant{EventID: 1, Name: "John Doe", Rank: 1},
	}

	s.Require().NoError(s.cache.Save(ctx, "Programming Contest 2024", "John Doe", stored))

	found, err := s.cache.Find(ctx, "Programming Contest 2024", "John Doe")
	s.Require().NoError(err)
	s.Equal(stored, found)
}

func (s *CacheSuite) TestMissReturnsNotFound() {
	_, err := s.cache.Find(context.Background(), "Hackathon 2024", "Nobody")
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *CacheSuite) TestKeySeparatorKeepsPairsDistinct() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Save(ctx, "a|b", "c", oracle.Validation{Valid: true}))

	_, err := s.cache.Find(ctx, "a", "b|c")
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *CacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	client := &platformredis.Client{Client: s.redis.Client}
	shortCache := oracle.NewValidationCache(client, 50*time.Millisecond)

	s.Require().NoError(shortCache.Save(ctx, "Hackathon 2024", "Bob Johnson", oracle.Validation{Valid: true}))
	time.Sleep(100 * time.Millisecond)

	_, err := shortCache.Find(ctx, "Hackathon 2024", "Bob Johnson")
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}
