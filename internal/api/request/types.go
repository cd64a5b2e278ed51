package request

// EnsurePlayerRequest registers or refreshes a player account
type EnsurePlayerRequest struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
}

// RenameRequest updates a player's display name
type RenameRequest struct {
	DisplayName string `json:"display_name"`
}

// PendingBetRequest declares which game the next stake is for
type PendingBetRequest struct {
	GameType string `json:"game_type"`
}

// StakeRequest supplies the stake amount for the pending bet
type StakeRequest struct {
	Amount int64 `json:"amount"`
}

// CoinflipChoiceRequest picks the player's side for a committed flip
type CoinflipChoiceRequest struct {
	Side string `json:"side"`
}

// MinesFieldRequest picks the board size
type MinesFieldRequest struct {
	BoardSize int `json:"board_size"`
}

// MinesOptionRequest picks how the mine count is chosen
type MinesOptionRequest struct {
	Option string `json:"option"`
}

// MinesCountRequest supplies a custom mine count
type MinesCountRequest struct {
	MineCount int `json:"mine_count"`
}

// MinesCellRequest picks the cell that resolves the game
type MinesCellRequest struct {
	Cell int `json:"cell"`
}
