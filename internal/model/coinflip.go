package model

import "time"

// CoinSide is one of the two coinflip outcomes
type CoinSide string

const (
	SideHeads CoinSide = "heads"
	SideTails CoinSide = "tails"
)

// ParseCoinSide validates a coin side string
func ParseCoinSide(s string) (CoinSide, error) {
	switch CoinSide(s) {
	case SideHeads:
		return SideHeads, nil
	case SideTails:
		return SideTails, nil
	default:
		return "", ErrInvalidCoinSide
	}
}

// CoinflipSession is a committed coinflip bet awaiting the player's choice.
// The outcome is drawn and its hash published before the player picks a
// side; the stake is not debited until resolution.
type CoinflipSession struct {
	PlayerID   PlayerID
	Stake      int64
	Outcome    CoinSide
	CommitHash string
	RevealSalt string // mixed into the game-hash proof on reveal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
