package response

import (
	"time"

	"github.com/avaskin/glitchbet/internal/model"
)

// Player represents a player account in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Balance     int64     `json:"balance"`
	Clicks      int64     `json:"clicks"`
	JoinedAt    time.Time `json:"joined_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Balance:     p.Balance,
		Clicks:      p.Clicks,
		JoinedAt:    p.JoinedAt,
	}
}

// Balance is the response for balance queries and bonus grants
type Balance struct {
	PlayerID string `json:"player_id"`
	Balance  int64  `json:"balance"`
	Bonus    int64  `json:"bonus,omitempty"`
}

// Leaderboard lists the top player balances
type Leaderboard struct {
	Players []Player `json:"players"`
}

// PendingBet acknowledges a declared bet awaiting its stake
type PendingBet struct {
	PlayerID string `json:"player_id"`
	GameType string `json:"game_type"`
}

// CoinflipStart is the response for a committed coinflip bet
type CoinflipStart struct {
	GameType   string `json:"game_type"`
	Stake      int64  `json:"stake"`
	CommitHash string `json:"commit_hash"`
}

// CoinflipStartFromModel converts a model.CoinflipStart
func CoinflipStartFromModel(s *model.CoinflipStart) CoinflipStart {
	return CoinflipStart{
		GameType:   string(model.GameCoinflip),
		Stake:      s.Stake,
		CommitHash: s.CommitHash,
	}
}

// CoinflipResult is the response for a resolved coinflip
type CoinflipResult struct {
	Win        bool   `json:"win"`
	Choice     string `json:"choice"`
	Outcome    string `json:"outcome"`
	Stake      int64  `json:"stake"`
	Payout     int64  `json:"payout"`
	Balance    int64  `json:"balance"`
	CommitHash string `json:"commit_hash"`
	Proof      string `json:"proof"`
	GameHash   string `json:"game_hash"`
}

// CoinflipResultFromModel converts a model.CoinflipResult
func CoinflipResultFromModel(r *model.CoinflipResult) CoinflipResult {
	return CoinflipResult{
		Win:        r.Win,
		Choice:     string(r.Choice),
		Outcome:    string(r.Outcome),
		Stake:      r.Stake,
		Payout:     r.Payout,
		Balance:    r.Balance,
		CommitHash: r.CommitHash,
		Proof:      r.Proof,
		GameHash:   r.GameHash,
	}
}

// MinesStart is the response for an accepted mines bet
type MinesStart struct {
	GameType string `json:"game_type"`
	Stake    int64  `json:"stake"`
	State    string `json:"state"`
	Balance  int64  `json:"balance"`
}

// MinesStartFromModel converts a model.MinesStart
func MinesStartFromModel(s *model.MinesStart) MinesStart {
	return MinesStart{
		GameType: string(model.GameMines),
		Stake:    s.Stake,
		State:    string(s.State),
		Balance:  s.Balance,
	}
}

// MinesState reports the session phase after a setup step
type MinesState struct {
	State string `json:"state"`
}

// MinesCommit is the response once the grid hash is published
type MinesCommit struct {
	BoardSize int    `json:"board_size,omitempty"`
	MineCount int    `json:"mine_count,omitempty"`
	GridHash  string `json:"grid_hash,omitempty"`
	State     string `json:"state"`
}

// MinesCommitFromModel converts a model.MinesCommit
func MinesCommitFromModel(c *model.MinesCommit) MinesCommit {
	return MinesCommit{
		BoardSize: c.BoardSize,
		MineCount: c.MineCount,
		GridHash:  c.GridHash,
		State:     string(c.State),
	}
}

// MinesResult is the response for a resolved mines game
type MinesResult struct {
	Win      bool   `json:"win"`
	Cell     int    `json:"cell"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Stake    int64  `json:"stake"`
	Payout   int64  `json:"payout"`
	Balance  int64  `json:"balance"`
	GridHash string `json:"grid_hash"`
	Grid     string `json:"grid"`
}

// MinesResultFromModel converts a model.MinesResult
func MinesResultFromModel(r *model.MinesResult) MinesResult {
	return MinesResult{
		Win:      r.Win,
		Cell:     r.Cell,
		Row:      r.Row,
		Col:      r.Col,
		Stake:    r.Stake,
		Payout:   r.Payout,
		Balance:  r.Balance,
		GridHash: r.GridHash,
		Grid:     r.Grid,
	}
}
