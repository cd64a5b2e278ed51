package model

// CoinflipStart is returned when a coinflip bet is committed. The commit
// hash must reach the player before their side choice is accepted.
type CoinflipStart struct {
	Stake      int64
	CommitHash string
}

// CoinflipResult is the resolution of a coinflip session
type CoinflipResult struct {
	Win        bool
	Choice     CoinSide
	Outcome    CoinSide
	Stake      int64
	Payout     int64 // 0 on loss, 2*stake on win
	Balance    int64 // balance after resolution
	CommitHash string
	Proof      string // "outcome|salt", digestible by the player
	GameHash   string // digest of Proof
}

// MinesStart is returned when a mines bet is accepted and the stake debited
type MinesStart struct {
	Stake   int64
	State   MinesState
	Balance int64 // balance after the up-front debit
}

// MinesCommit is returned once the grid is generated and its hash published
type MinesCommit struct {
	BoardSize int
	MineCount int
	GridHash  string
	State     MinesState
}

// MinesResult is the resolution of a mines session after the cell pick
type MinesResult struct {
	Win      bool
	Cell     int // 1-based cell number picked
	Row, Col int
	Stake    int64
	Payout   int64 // 0 on loss, 2*stake on win
	Balance  int64
	GridHash string
	Grid     string // full serialized grid, digestible by the player
}
