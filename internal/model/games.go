package model

import "time"

// GameType identifies one of the supported wagering games
type GameType string

const (
	GameCoinflip GameType = "coinflip"
	GameMines    GameType = "mines"
)

// ParseGameType validates a game type string
func ParseGameType(s string) (GameType, error) {
	switch GameType(s) {
	case GameCoinflip:
		return GameCoinflip, nil
	case GameMines:
		return GameMines, nil
	default:
		return "", ErrInvalidGameType
	}
}

// DebitPolicy describes when an engine takes the stake from the balance.
// Coinflip defers the debit to resolution; mines debits up front. The two
// games behave differently on purpose and the policy is part of each
// engine's contract.
type DebitPolicy string

const (
	// DebitDeferred takes the stake only when the game resolves
	DebitDeferred DebitPolicy = "deferred"
	// DebitImmediate takes the stake when the bet is placed
	DebitImmediate DebitPolicy = "immediate"
)

// PendingBet records that the engine is waiting for a stake amount before a
// session can be created. It is transient: consumed by the next valid stake,
// cleared by anything else.
type PendingBet struct {
	PlayerID  PlayerID
	GameType  GameType
	CreatedAt time.Time
}
