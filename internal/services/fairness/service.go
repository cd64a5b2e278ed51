package fairness

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/avaskin/glitchbet/internal/dependencies/random"
	"github.com/avaskin/glitchbet/internal/model"
)

// Digest is the one-way hash behind fairness commitments. Implementations
// must be collision-resistant: a player holding a commit hash must not be
// able to find a second outcome that digests to it.
type Digest interface {
	Sum(data string) string
	Name() string
}

// SHA256Digest is the default commitment digest
type SHA256Digest struct{}

// Sum returns the hex-encoded SHA-256 digest of data
func (SHA256Digest) Sum(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}

// Name identifies the digest in proofs and logs
func (SHA256Digest) Name() string { return "sha256" }

// Blake2bDigest is an alternative 256-bit commitment digest
type Blake2bDigest struct{}

// Sum returns the hex-encoded BLAKE2b-256 digest of data
func (Blake2bDigest) Sum(data string) string {
	h := blake2b.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}

// Name identifies the digest in proofs and logs
func (Blake2bDigest) Name() string { return "blake2b-256" }

// saltLength is the length of reveal salts mixed into game-hash proofs
const saltLength = 16

// Service draws secret game outcomes and binds them to hash commitments.
// The commit hash is published to the player before any input that could
// reveal the outcome is accepted; after resolution the player can digest
// the revealed proof themselves and compare.
type Service struct {
	digest Digest
	random random.Random
}

// New creates a fairness service with the given digest
func New(digest Digest, random random.Random) *Service {
	return &Service{
		digest: digest,
		random: random,
	}
}

// CommitCoinflip draws a secret coin side and returns it with its commit
// hash and the reveal salt for the eventual proof
func (s *Service) CommitCoinflip() (side model.CoinSide, commitHash, salt string) {
	side = model.SideHeads
	if s.random.Intn(2) == 1 {
		side = model.SideTails
	}
	return side, s.digest.Sum(string(side)), s.random.String(saltLength, random.SaltAlphabet)
}

// CommitGrid generates a boardSize x boardSize grid with exactly mineCount
// mines placed uniformly (rejection-sampling duplicate positions) and
// returns it with the commit hash of its serialized form
func (s *Service) CommitGrid(boardSize, mineCount int) (model.Grid, string) {
	grid := make(model.Grid, boardSize)
	for i := range grid {
		row := make([]model.Cell, boardSize)
		for j := range row {
			row[j] = model.CellSafe
		}
		grid[i] = row
	}

	placed := 0
	for placed < mineCount {
		r := s.random.Intn(boardSize)
		c := s.random.Intn(boardSize)
		if grid[r][c] != model.CellMine {
			grid[r][c] = model.CellMine
			placed++
		}
	}

	return grid, s.digest.Sum(grid.Serialize())
}

// Verify recomputes the digest of outcome and compares it to commitHash.
// A mismatch means the commitment was tampered with or the engine has a
// logic fault; callers must abort the game without charging or crediting.
func (s *Service) Verify(outcome, commitHash string) bool {
	return s.digest.Sum(outcome) == commitHash
}

// Proof builds the revealed "outcome|salt" string and its game hash. The
// player can digest the proof themselves and compare against the game hash.
func (s *Service) Proof(outcome, salt string) (proof, gameHash string) {
	proof = outcome + "|" + salt
	return proof, s.digest.Sum(proof)
}

// DigestName reports which digest backs commitments, for result metadata
func (s *Service) DigestName() string {
	return s.digest.Name()
}
