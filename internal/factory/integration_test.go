package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avaskin/glitchbet/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: a player joins, plays a coinflip, and wins
func (s *IntegrationSuite) TestCoinflipFlow() {
	player, err := s.app.PlayerService.Ensure(s.ctx, "alice", "Alice")
	s.Require().NoError(err)
	s.Equal(int64(100), player.Balance)

	// pin the flip to tails
	s.app.MockRandom.QueueIntn(1)
	s.app.MockRandom.QueueString("saltsaltsaltsalt")

	start, err := s.app.CoinflipEngine.StartBet(s.ctx, player.ID, 40)
	s.Require().NoError(err)
	s.NotEmpty(start.CommitHash)

	// no funds move until the choice
	balance, err := s.app.LedgerService.BalanceOf(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(int64(100), balance)

	result, err := s.app.CoinflipEngine.ResolveChoice(s.ctx, player.ID, model.SideTails)
	s.Require().NoError(err)
	s.True(result.Win)
	s.Equal(int64(140), result.Balance)
	s.Equal(start.CommitHash, result.CommitHash)
}

// Test: a player walks the whole mines flow through a custom count and loses
func (s *IntegrationSuite) TestMinesFlow() {
	player, err := s.app.PlayerService.Ensure(s.ctx, "bob", "Bob")
	s.Require().NoError(err)

	start, err := s.app.MinesEngine.StartBet(s.ctx, player.ID, 25)
	s.Require().NoError(err)
	s.Equal(int64(75), start.Balance)
	s.Equal(model.MinesStateChooseField, start.State)

	state, err := s.app.MinesEngine.ChooseField(s.ctx, player.ID, 4)
	s.Require().NoError(err)
	s.Equal(model.MinesStateChooseOption, state)

	commit, err := s.app.MinesEngine.ChooseOption(s.ctx, player.ID, model.OptionCustom)
	s.Require().NoError(err)
	s.Equal(model.MinesStateChooseMineCount, commit.State)

	// one mine at (0,0): cell 1
	s.app.MockRandom.QueueIntn(0, 0)
	commit, err = s.app.MinesEngine.ChooseMineCount(s.ctx, player.ID, 1)
	s.Require().NoError(err)
	s.Equal(model.MinesStateChooseCell, commit.State)
	s.NotEmpty(commit.GridHash)

	result, err := s.app.MinesEngine.ChooseCell(s.ctx, player.ID, 1)
	s.Require().NoError(err)
	s.False(result.Win)
	s.Equal(int64(75), result.Balance)
	s.Equal(commit.GridHash, result.GridHash)
}

// Test: the two engines keep separate sessions for the same player
func (s *IntegrationSuite) TestConcurrentGameTypes() {
	player, err := s.app.PlayerService.Ensure(s.ctx, "carol", "Carol")
	s.Require().NoError(err)

	s.app.MockRandom.QueueIntn(0)
	s.app.MockRandom.QueueString("saltsaltsaltsalt")
	_, err = s.app.CoinflipEngine.StartBet(s.ctx, player.ID, 10)
	s.Require().NoError(err)

	_, err = s.app.MinesEngine.StartBet(s.ctx, player.ID, 20)
	s.Require().NoError(err)

	// resolving the coinflip leaves the mines session alone
	result, err := s.app.CoinflipEngine.ResolveChoice(s.ctx, player.ID, model.SideHeads)
	s.Require().NoError(err)
	s.True(result.Win)

	sess, err := s.app.SessionManager.Mines(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(int64(20), sess.Stake)
}
