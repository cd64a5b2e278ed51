package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case BalanceResult:
		o.printBalance(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case PendingBet:
		o.printPendingBet(v)
	case CoinflipStart:
		o.printCoinflipStart(v)
	case CoinflipResult:
		o.printCoinflipResult(v)
	case MinesStart:
		o.printMinesStart(v)
	case MinesStateResult:
		o.printMinesState(v)
	case MinesCommit:
		o.printMinesCommit(v)
	case MinesResult:
		o.printMinesResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Balance     int64  `json:"balance"`
	Clicks      int64  `json:"clicks"`
	JoinedAt    string `json:"joined_at"`
}

// BalanceResult response type
type BalanceResult struct {
	PlayerID string `json:"player_id"`
	Balance  int64  `json:"balance"`
	Bonus    int64  `json:"bonus,omitempty"`
}

// Leaderboard response type
type Leaderboard struct {
	Players []Player `json:"players"`
}

// PendingBet response type
type PendingBet struct {
	PlayerID string `json:"player_id"`
	GameType string `json:"game_type"`
}

// CoinflipStart response type
type CoinflipStart struct {
	GameType   string `json:"game_type"`
	Stake      int64  `json:"stake"`
	CommitHash string `json:"commit_hash"`
}

// CoinflipResult response type
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

// MinesStart response type
type MinesStart struct {
	GameType string `json:"game_type"`
	Stake    int64  `json:"stake"`
	State    string `json:"state"`
	Balance  int64  `json:"balance"`
}

// MinesStateResult response type
type MinesStateResult struct {
	State string `json:"state"`
}

// MinesCommit response type
type MinesCommit struct {
	BoardSize int    `json:"board_size,omitempty"`
	MineCount int    `json:"mine_count,omitempty"`
	GridHash  string `json:"grid_hash,omitempty"`
	State     string `json:"state"`
}

// MinesResult response type
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

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Balance: %d\n", p.Balance)
}

func (o *Output) printBalance(b BalanceResult) {
	if b.Bonus > 0 {
		fmt.Printf("Bonus: +%d\n", b.Bonus)
	}
	fmt.Printf("Balance: %d\n", b.Balance)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Top players (%d):\n", len(l.Players))
	for i, p := range l.Players {
		fmt.Printf("  %d. %s - %d\n", i+1, p.DisplayName, p.Balance)
	}
}

func (o *Output) printPendingBet(b PendingBet) {
	fmt.Printf("Bet declared: %s\n", b.GameType)
	fmt.Println("Send your stake to begin.")
}

func (o *Output) printCoinflipStart(c CoinflipStart) {
	fmt.Printf("Coinflip staked: %d\n", c.Stake)
	fmt.Printf("Commit hash: %s\n", c.CommitHash)
	fmt.Println("Pick a side: heads or tails.")
}

func (o *Output) printCoinflipResult(r CoinflipResult) {
	if r.Win {
		fmt.Printf("You won! The coin landed %s. Payout: %d\n", r.Outcome, r.Payout)
	} else {
		fmt.Printf("You lost. The coin landed %s.\n", r.Outcome)
	}
	fmt.Printf("Balance: %d\n", r.Balance)
	fmt.Printf("Proof: %s\n", r.Proof)
	fmt.Printf("Game hash: %s\n", r.GameHash)
}

func (o *Output) printMinesStart(m MinesStart) {
	fmt.Printf("Mines staked: %d (balance: %d)\n", m.Stake, m.Balance)
	fmt.Println("Choose a board size: 4, 5, or 6.")
}

func (o *Output) printMinesState(m MinesStateResult) {
	fmt.Printf("State: %s\n", m.State)
}

func (o *Output) printMinesCommit(m MinesCommit) {
	if m.GridHash != "" {
		fmt.Printf("Board: %dx%d with %d mines\n", m.BoardSize, m.BoardSize, m.MineCount)
		fmt.Printf("Grid hash: %s\n", m.GridHash)
		fmt.Println("Pick a cell.")
	} else {
		fmt.Printf("State: %s\n", m.State)
	}
}

func (o *Output) printMinesResult(r MinesResult) {
	if r.Win {
		fmt.Printf("Safe! Cell %d (row %d, col %d). Payout: %d\n", r.Cell, r.Row, r.Col, r.Payout)
	} else {
		fmt.Printf("Boom! Cell %d (row %d, col %d) was a mine.\n", r.Cell, r.Row, r.Col)
	}
	fmt.Printf("Balance: %d\n", r.Balance)
	fmt.Printf("Grid: %s\n", r.Grid)
	fmt.Printf("Grid hash: %s\n", r.GridHash)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
