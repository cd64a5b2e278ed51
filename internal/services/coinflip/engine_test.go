package coinflip_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/avaskin/glitchbet/internal/dependencies/mocks"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/coinflip"
	"github.com/avaskin/glitchbet/internal/services/fairness"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/session"
	"github.com/avaskin/glitchbet/internal/storage/memory"
	"github.com/avaskin/glitchbet/internal/testutil"
)

type EngineTestSuite struct {
	suite.Suite

	storage  *memory.Storage
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	ledger   *ledger.Service
	sessions *session.Manager
	engine   *coinflip.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()

	s.ledger = ledger.New(s.storage, s.clock, logger)
	s.sessions = session.NewManager(s.storage, s.ledger, s.clock,
		&session.LogNotifier{Logger: logger}, session.DefaultConfig(), logger)
	fair := fairness.New(fairness.SHA256Digest{}, s.random)
	s.engine = coinflip.New(s.sessions, s.ledger, fair, logger)
}

func (s *EngineTestSuite) seedPlayer(id model.PlayerID, balance int64) {
	s.Require().NoError(s.storage.SavePlayer(context.Background(), &model.Player{
		ID:       id,
		Balance:  balance,
		JoinedAt: s.clock.Now(),
	}))
}

// queueOutcome pins the next flip: 0 for heads, 1 for tails, plus a salt
func (s *EngineTestSuite) queueOutcome(flip int) {
	s.random.QueueIntn(flip)
	s.random.QueueString("testsalt00000000")
}

func (s *EngineTestSuite) TestStartBetPublishesCommitHash() {
	s.seedPlayer("alice", 100)
	s.queueOutcome(0)

	start, err := s.engine.StartBet(context.Background(), "alice", 40)
	s.Require().NoError(err)
	s.Equal(int64(40), start.Stake)

	digest := fairness.SHA256Digest{}
	s.Equal(digest.Sum(string(model.SideHeads)), start.CommitHash)
}

func (s *EngineTestSuite) TestStartBetRejectsNonPositiveStake() {
	for _, stake := range []int64{0, -1, -40} {
		_, err := s.engine.StartBet(context.Background(), "alice", stake)
		s.ErrorIs(err, model.ErrInvalidStake)
	}
}

func (s *EngineTestSuite) TestStartBetDoesNotTouchBalance() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)
	s.queueOutcome(0)

	// stake may even exceed the balance at this point
	_, err := s.engine.StartBet(ctx, "alice", 500)
	s.Require().NoError(err)

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(100), balance)
}

func (s *EngineTestSuite) TestStartBetReplacesUnresolvedBet() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)

	s.queueOutcome(0)
	_, err := s.engine.StartBet(ctx, "alice", 40)
	s.Require().NoError(err)

	s.queueOutcome(1)
	_, err = s.engine.StartBet(ctx, "alice", 25)
	s.Require().NoError(err)

	result, err := s.engine.ResolveChoice(ctx, "alice", model.SideTails)
	s.Require().NoError(err)
	s.True(result.Win)
	s.Equal(int64(25), result.Stake)
}

// Loss: stake 40 against balance 100 leaves 60
func (s *EngineTestSuite) TestResolveLoss() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)
	s.queueOutcome(1) // tails

	_, err := s.engine.StartBet(ctx, "alice", 40)
	s.Require().NoError(err)

	result, err := s.engine.ResolveChoice(ctx, "alice", model.SideHeads)
	s.Require().NoError(err)

	s.False(result.Win)
	s.Equal(model.SideHeads, result.Choice)
	s.Equal(model.SideTails, result.Outcome)
	s.Equal(int64(40), result.Stake)
	s.Equal(int64(0), result.Payout)
	s.Equal(int64(60), result.Balance)
}

// Win: stake 40 against balance 100 pays 80 back, leaving 140
func (s *EngineTestSuite) TestResolveWin() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)
	s.queueOutcome(1) // tails

	start, err := s.engine.StartBet(ctx, "alice", 40)
	s.Require().NoError(err)

	result, err := s.engine.ResolveChoice(ctx, "alice", model.SideTails)
	s.Require().NoError(err)

	s.True(result.Win)
	s.Equal(int64(80), result.Payout)
	s.Equal(int64(140), result.Balance)
	s.Equal(start.CommitHash, result.CommitHash)
}

func (s *EngineTestSuite) TestResolveProofMatchesCommitment() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)
	s.queueOutcome(0) // heads

	_, err := s.engine.StartBet(ctx, "alice", 10)
	s.Require().NoError(err)

	result, err := s.engine.ResolveChoice(ctx, "alice", model.SideHeads)
	s.Require().NoError(err)

	digest := fairness.SHA256Digest{}
	s.Equal("heads|testsalt00000000", result.Proof)
	s.Equal(digest.Sum(result.Proof), result.GameHash)
	s.Equal(digest.Sum(string(result.Outcome)), result.CommitHash)
}

func (s *EngineTestSuite) TestResolveWithoutSession() {
	_, err := s.engine.ResolveChoice(context.Background(), "alice", model.SideHeads)
	s.ErrorIs(err, model.ErrNoActiveSession)
}

// Deferred debit: the funds check happens at resolution. The session is
// still consumed, so the player must place a fresh bet afterwards.
func (s *EngineTestSuite) TestResolveInsufficientFunds() {
	ctx := context.Background()
	s.seedPlayer("alice", 30)
	s.queueOutcome(0)

	_, err := s.engine.StartBet(ctx, "alice", 40)
	s.Require().NoError(err)

	_, err = s.engine.ResolveChoice(ctx, "alice", model.SideHeads)
	s.ErrorIs(err, model.ErrInsufficientFunds)

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(30), balance)

	_, err = s.engine.ResolveChoice(ctx, "alice", model.SideHeads)
	s.ErrorIs(err, model.ErrNoActiveSession)
}

// At-most-once settlement: a second choice for the same bet finds nothing
func (s *EngineTestSuite) TestResolveConsumesSession() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)
	s.queueOutcome(1)

	_, err := s.engine.StartBet(ctx, "alice", 40)
	s.Require().NoError(err)

	_, err = s.engine.ResolveChoice(ctx, "alice", model.SideTails)
	s.Require().NoError(err)

	_, err = s.engine.ResolveChoice(ctx, "alice", model.SideTails)
	s.ErrorIs(err, model.ErrNoActiveSession)

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(140), balance)
}

func (s *EngineTestSuite) TestTamperedCommitmentVoidsWithoutCharge() {
	ctx := context.Background()
	s.seedPlayer("alice", 100)
	s.queueOutcome(0)

	_, err := s.engine.StartBet(ctx, "alice", 40)
	s.Require().NoError(err)

	// corrupt the stored commitment behind the engine's back
	sess, err := s.storage.GetCoinflipSession(ctx, "alice")
	s.Require().NoError(err)
	sess.CommitHash = "tampered"
	s.Require().NoError(s.storage.SaveCoinflipSession(ctx, sess))

	_, err = s.engine.ResolveChoice(ctx, "alice", model.SideHeads)
	s.ErrorIs(err, model.ErrFairnessMismatch)

	balance, err := s.ledger.BalanceOf(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(int64(100), balance)
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
