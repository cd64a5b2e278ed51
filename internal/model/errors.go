package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Stake and balance errors
	ErrInvalidStake      = errors.New("stake must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Session errors
	ErrNoActiveSession   = errors.New("no active session")
	ErrSessionInProgress = errors.New("session already in progress")
	ErrNoPendingBet      = errors.New("no pending bet")

	// Input errors
	ErrInvalidGameType  = errors.New("invalid game type")
	ErrInvalidCoinSide  = errors.New("invalid coin side")
	ErrInvalidOption    = errors.New("invalid mines option")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidMineCount = errors.New("invalid mine count")
	ErrInvalidCell      = errors.New("invalid cell number")

	// ErrFairnessMismatch means a published commitment no longer matches its
	// outcome. It is an integrity fault, never user error: the game aborts
	// without charging or crediting the player.
	ErrFairnessMismatch = errors.New("fairness commitment mismatch")
)
