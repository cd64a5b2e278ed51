package fairness

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/avaskin/glitchbet/internal/dependencies/mocks"
	"github.com/avaskin/glitchbet/internal/dependencies/random"
	"github.com/avaskin/glitchbet/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(SHA256Digest{}, s.random)
}

func (s *ServiceSuite) TestCommitCoinflipHeads() {
	s.random.QueueIntn(0)
	s.random.QueueString("salt1234salt1234")

	side, commitHash, salt := s.service.CommitCoinflip()

	s.Equal(model.SideHeads, side)
	s.Equal(SHA256Digest{}.Sum("heads"), commitHash)
	s.Equal("salt1234salt1234", salt)
}

func (s *ServiceSuite) TestCommitCoinflipTails() {
	s.random.QueueIntn(1)
	s.random.QueueString("salt1234salt1234")

	side, commitHash, _ := s.service.CommitCoinflip()

	s.Equal(model.SideTails, side)
	s.True(s.service.Verify(string(side), commitHash))
}

func (s *ServiceSuite) TestVerifySucceedsBeforeTampering() {
	s.random.QueueIntn(1)
	s.random.QueueString("abc")

	side, commitHash, _ := s.service.CommitCoinflip()
	s.True(s.service.Verify(string(side), commitHash))
}

func (s *ServiceSuite) TestVerifyFailsOnAlteredOutcome() {
	s.random.QueueIntn(0)
	s.random.QueueString("abc")

	_, commitHash, _ := s.service.CommitCoinflip()
	s.False(s.service.Verify("tails", commitHash))
}

func (s *ServiceSuite) TestVerifyFailsOnAlteredHash() {
	s.random.QueueIntn(0)
	s.random.QueueString("abc")

	side, commitHash, _ := s.service.CommitCoinflip()
	s.False(s.service.Verify(string(side), commitHash+"00"))
}

func (s *ServiceSuite) TestCommitGridPlacesExactMineCount() {
	rnd := random.New()
	service := New(SHA256Digest{}, rnd)

	for _, size := range model.ValidBoardSizes {
		mineCount := size*size - 1 // worst case for rejection sampling
		grid, gridHash := service.CommitGrid(size, mineCount)

		s.Len(grid, size)
		s.Equal(mineCount, grid.MineCount())
		s.Len(grid.Serialize(), size*size)
		s.True(service.Verify(grid.Serialize(), gridHash))
	}
}

func (s *ServiceSuite) TestCommitGridSkipsDuplicatePositions() {
	// First placement lands on (0,0); the duplicate draw is rejected and the
	// second mine ends up at (1,1)
	s.random.QueueIntn(0, 0, 0, 0, 1, 1)

	grid, _ := s.service.CommitGrid(4, 2)

	s.Equal(model.CellMine, grid[0][0])
	s.Equal(model.CellMine, grid[1][1])
	s.Equal(2, grid.MineCount())
}

func (s *ServiceSuite) TestGridHashMatchesReDigest() {
	s.random.QueueIntn(0, 1, 2, 3)

	grid, gridHash := s.service.CommitGrid(4, 2)

	s.Equal(SHA256Digest{}.Sum(grid.Serialize()), gridHash)
}

func (s *ServiceSuite) TestProofFormat() {
	proof, gameHash := s.service.Proof("tails", "xyz")

	s.Equal("tails|xyz", proof)
	s.Equal(SHA256Digest{}.Sum("tails|xyz"), gameHash)
}

func (s *ServiceSuite) TestBlake2bDigest() {
	service := New(Blake2bDigest{}, s.random)

	hash := Blake2bDigest{}.Sum("heads")
	s.Len(hash, 64) // 256-bit hex
	s.True(service.Verify("heads", hash))
	s.NotEqual(SHA256Digest{}.Sum("heads"), hash)
	s.Equal("blake2b-256", service.DigestName())
}
