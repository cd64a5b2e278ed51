package players_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/avaskin/glitchbet/internal/dependencies/mocks"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/players"
	"github.com/avaskin/glitchbet/internal/storage/memory"
	"github.com/avaskin/glitchbet/internal/testutil"
)

type ServiceTestSuite struct {
	suite.Suite

	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	ledger  *ledger.Service
	service *players.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()

	s.ledger = ledger.New(s.storage, s.clock, logger)
	s.service = players.New(s.storage, s.ledger, s.clock, s.random,
		players.DefaultConfig(), logger)
}

func (s *ServiceTestSuite) TestEnsureCreatesWithStartingBalance() {
	ctx := context.Background()

	player, err := s.service.Ensure(ctx, "alice", "Alice")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("alice"), player.ID)
	s.Equal("Alice", player.DisplayName)
	s.Equal(int64(100), player.Balance)
	s.Equal(s.clock.Now(), player.JoinedAt)
}

func (s *ServiceTestSuite) TestEnsureIsIdempotent() {
	ctx := context.Background()

	first, err := s.service.Ensure(ctx, "alice", "Alice")
	s.Require().NoError(err)

	_, err = s.ledger.Deduct(ctx, "alice", 30)
	s.Require().NoError(err)

	again, err := s.service.Ensure(ctx, "alice", "Alice Renamed")
	s.Require().NoError(err)

	s.Equal(first.ID, again.ID)
	s.Equal("Alice", again.DisplayName) // existing account untouched
	s.Equal(int64(70), again.Balance)
}

func (s *ServiceTestSuite) TestGetUnknownPlayer() {
	_, err := s.service.Get(context.Background(), "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceTestSuite) TestRename() {
	ctx := context.Background()

	_, err := s.service.Ensure(ctx, "alice", "Alice")
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)

	player, err := s.service.Rename(ctx, "alice", "Queen Alice")
	s.Require().NoError(err)
	s.Equal("Queen Alice", player.DisplayName)
	s.Equal(s.clock.Now(), player.UpdatedAt)
}

func (s *ServiceTestSuite) TestRenameKeepsConcurrentCredits() {
	ctx := context.Background()

	_, err := s.service.Ensure(ctx, "alice", "Alice")
	s.Require().NoError(err)

	const rounds = 100
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.ledger.Credit(ctx, "alice", 1)
			s.NoError(err)
		}()
		go func() {
			defer wg.Done()
			_, err := s.service.Rename(ctx, "alice", "Alice Again")
			s.NoError(err)
		}()
	}
	wg.Wait()

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(100+rounds), balance) // no credit lost to a rename overwrite
}

func (s *ServiceTestSuite) TestRenameUnknownPlayer() {
	_, err := s.service.Rename(context.Background(), "ghost", "Ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceTestSuite) TestBonusWithinBounds() {
	ctx := context.Background()

	_, err := s.service.Ensure(ctx, "alice", "Alice")
	s.Require().NoError(err)

	// Intn(13) pinned to 0 and 12: the bonus edges 5 and 17
	s.random.QueueIntn(0, 12)

	amount, balance, err := s.service.Bonus(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(5), amount)
	s.Equal(int64(105), balance)

	amount, balance, err = s.service.Bonus(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(17), amount)
	s.Equal(int64(122), balance)
}

func (s *ServiceTestSuite) TestBonusCountsClicks() {
	ctx := context.Background()

	_, err := s.service.Ensure(ctx, "alice", "Alice")
	s.Require().NoError(err)

	s.random.QueueIntn(3, 7)

	_, _, err = s.service.Bonus(ctx, "alice")
	s.Require().NoError(err)
	_, _, err = s.service.Bonus(ctx, "alice")
	s.Require().NoError(err)

	player, err := s.service.Get(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(2), player.Clicks)
}

func (s *ServiceTestSuite) TestBonusUnknownPlayer() {
	s.random.QueueIntn(3)
	_, _, err := s.service.Bonus(context.Background(), "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceTestSuite) TestTopBalances() {
	ctx := context.Background()

	for _, p := range []struct {
		id      model.PlayerID
		balance int64
	}{
		{"alice", 100},
		{"bob", 250},
		{"carol", 50},
		{"dave", 250},
	} {
		s.Require().NoError(s.storage.SavePlayer(ctx, &model.Player{
			ID:      p.id,
			Balance: p.balance,
		}))
	}

	top, err := s.service.TopBalances(ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(top, 3)

	s.Equal(model.PlayerID("bob"), top[0].ID) // ties break on ID
	s.Equal(model.PlayerID("dave"), top[1].ID)
	s.Equal(model.PlayerID("alice"), top[2].ID)
}

func (s *ServiceTestSuite) TestTopClicks() {
	ctx := context.Background()

	for _, p := range []struct {
		id     model.PlayerID
		clicks int64
	}{
		{"alice", 4},
		{"bob", 9},
		{"carol", 9},
		{"dave", 1},
	} {
		s.Require().NoError(s.storage.SavePlayer(ctx, &model.Player{
			ID:     p.id,
			Clicks: p.clicks,
		}))
	}

	top, err := s.service.TopClicks(ctx, 3)
	s.Require().NoError(err)
	s.Require().Len(top, 3)

	s.Equal(model.PlayerID("bob"), top[0].ID) // ties break on ID
	s.Equal(model.PlayerID("carol"), top[1].ID)
	s.Equal(model.PlayerID("alice"), top[2].ID)
}

func (s *ServiceTestSuite) TestTopBalancesFewerThanLimit() {
	ctx := context.Background()

	s.Require().NoError(s.storage.SavePlayer(ctx, &model.Player{ID: "alice", Balance: 10}))

	top, err := s.service.TopBalances(ctx, 5)
	s.Require().NoError(err)
	s.Len(top, 1)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
