package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/avaskin/glitchbet/internal/dependencies/mocks"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/session"
	"github.com/avaskin/glitchbet/internal/storage/memory"
	"github.com/avaskin/glitchbet/internal/testutil"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[model.PlayerID][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[model.PlayerID][]string)}
}

func (n *recordingNotifier) Notify(_ context.Context, playerID model.PlayerID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[playerID] = append(n.messages[playerID], message)
}

type ManagerTestSuite struct {
	suite.Suite

	storage  *memory.Storage
	clock    *mocks.MockClock
	ledger   *ledger.Service
	notifier *recordingNotifier
	manager  *session.Manager
}

func (s *ManagerTestSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	s.ledger = ledger.New(s.storage, s.clock, logger)
	s.notifier = newRecordingNotifier()
	s.manager = session.NewManager(s.storage, s.ledger, s.clock, s.notifier, session.Config{
		IdleTimeout:   15 * time.Minute,
		SweepInterval: time.Minute,
	}, logger)
}

func (s *ManagerTestSuite) seedPlayer(id model.PlayerID, balance int64) {
	s.Require().NoError(s.storage.SavePlayer(context.Background(), &model.Player{
		ID:       id,
		Balance:  balance,
		JoinedAt: s.clock.Now(),
	}))
}

func (s *ManagerTestSuite) TestCoinflipRoundTrip() {
	ctx := context.Background()

	sess := &model.CoinflipSession{
		PlayerID:   "alice",
		Stake:      40,
		Outcome:    model.SideHeads,
		CommitHash: "abc",
		RevealSalt: "salt",
		CreatedAt:  s.clock.Now(),
	}
	s.Require().NoError(s.manager.PutCoinflip(ctx, sess))

	got, err := s.manager.Coinflip(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(40), got.Stake)
	s.Equal(s.clock.Now(), got.UpdatedAt)

	s.Require().NoError(s.manager.DeleteCoinflip(ctx, "alice"))
	_, err = s.manager.Coinflip(ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *ManagerTestSuite) TestPendingBetTakeConsumes() {
	ctx := context.Background()

	s.Require().NoError(s.manager.SetPendingBet(ctx, "alice", model.GameMines))

	gameType, err := s.manager.TakePendingBet(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.GameMines, gameType)

	_, err = s.manager.TakePendingBet(ctx, "alice")
	s.ErrorIs(err, model.ErrNoPendingBet)
}

func (s *ManagerTestSuite) TestSetPendingBetOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.manager.SetPendingBet(ctx, "alice", model.GameCoinflip))
	s.Require().NoError(s.manager.SetPendingBet(ctx, "alice", model.GameMines))

	gameType, err := s.manager.TakePendingBet(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.GameMines, gameType)
}

func (s *ManagerTestSuite) TestClearPendingBet() {
	ctx := context.Background()

	s.Require().NoError(s.manager.SetPendingBet(ctx, "alice", model.GameCoinflip))
	s.Require().NoError(s.manager.ClearPendingBet(ctx, "alice"))

	_, err := s.manager.TakePendingBet(ctx, "alice")
	s.ErrorIs(err, model.ErrNoPendingBet)
}

func (s *ManagerTestSuite) TestCancelCoinflipDiscardsWithoutRefund() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)

	s.Require().NoError(s.manager.PutCoinflip(ctx, &model.CoinflipSession{
		PlayerID: "alice",
		Stake:    40,
		Outcome:  model.SideTails,
	}))

	s.Require().NoError(s.manager.Cancel(ctx, "alice", model.GameCoinflip))

	_, err := s.manager.Coinflip(ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveSession)

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(100), balance)
}

func (s *ManagerTestSuite) TestCancelMinesDiscardsWithoutRefund() {
	ctx := context.Background()
	s.seedPlayer("alice", 60) // stake of 40 already deducted

	s.Require().NoError(s.manager.PutMines(ctx, &model.MinesSession{
		PlayerID: "alice",
		Stake:    40,
		State:    model.MinesStateChooseField,
	}))

	s.Require().NoError(s.manager.Cancel(ctx, "alice", model.GameMines))

	_, err := s.manager.Mines(ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveSession)

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(60), balance)
}

func (s *ManagerTestSuite) TestCancelWithoutSession() {
	err := s.manager.Cancel(context.Background(), "alice", model.GameCoinflip)
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *ManagerTestSuite) TestCancelInvalidGameType() {
	err := s.manager.Cancel(context.Background(), "alice", model.GameType("slots"))
	s.ErrorIs(err, model.ErrInvalidGameType)
}

func (s *ManagerTestSuite) TestSweepSkipsFreshSessions() {
	ctx := context.Background()

	s.Require().NoError(s.manager.PutCoinflip(ctx, &model.CoinflipSession{
		PlayerID: "alice",
		Stake:    10,
		Outcome:  model.SideHeads,
	}))

	s.clock.Advance(5 * time.Minute)

	swept, err := s.manager.Sweep(ctx)
	s.Require().NoError(err)
	s.Equal(0, swept)

	_, err = s.manager.Coinflip(ctx, "alice")
	s.NoError(err)
}

func (s *ManagerTestSuite) TestSweepClearsIdleCoinflipWithoutRefund() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)

	s.Require().NoError(s.manager.PutCoinflip(ctx, &model.CoinflipSession{
		PlayerID: "alice",
		Stake:    40,
		Outcome:  model.SideHeads,
	}))

	s.clock.Advance(16 * time.Minute)

	swept, err := s.manager.Sweep(ctx)
	s.Require().NoError(err)
	s.Equal(1, swept)

	_, err = s.manager.Coinflip(ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveSession)

	// coinflip stakes are not held, so nothing to refund
	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(100), balance)

	s.Len(s.notifier.messages["alice"], 1)
}

func (s *ManagerTestSuite) TestSweepRefundsIdleMinesStake() {
	ctx := context.Background()
	s.seedPlayer("alice", 60) // 40 staked up front out of a 100 start

	s.Require().NoError(s.manager.PutMines(ctx, &model.MinesSession{
		PlayerID: "alice",
		Stake:    40,
		State:    model.MinesStateChooseOption,
	}))

	s.clock.Advance(16 * time.Minute)

	swept, err := s.manager.Sweep(ctx)
	s.Require().NoError(err)
	s.Equal(1, swept)

	_, err = s.manager.Mines(ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveSession)

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(100), balance)

	s.Require().Len(s.notifier.messages["alice"], 1)
	s.Contains(s.notifier.messages["alice"][0], "refunded")
}

func (s *ManagerTestSuite) TestSweepOnlyExpiresIdleSessions() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)
	s.seedPlayer("bob", 100)

	s.Require().NoError(s.manager.PutCoinflip(ctx, &model.CoinflipSession{
		PlayerID: "alice",
		Stake:    10,
		Outcome:  model.SideHeads,
	}))

	s.clock.Advance(10 * time.Minute)

	s.Require().NoError(s.manager.PutCoinflip(ctx, &model.CoinflipSession{
		PlayerID: "bob",
		Stake:    10,
		Outcome:  model.SideTails,
	}))

	s.clock.Advance(10 * time.Minute)

	swept, err := s.manager.Sweep(ctx)
	s.Require().NoError(err)
	s.Equal(1, swept)

	_, err = s.manager.Coinflip(ctx, "alice")
	s.ErrorIs(err, model.ErrNoActiveSession)
	_, err = s.manager.Coinflip(ctx, "bob")
	s.NoError(err)
}

func (s *ManagerTestSuite) TestWithPlayerLockSerializes() {
	const workers = 25

	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = s.manager.WithPlayerLock("alice", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	s.Equal(workers, counter)
}

func TestManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}
