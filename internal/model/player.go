package model

import "time"

// PlayerID uniquely identifies a player across the system.
// Identity is assigned by the messaging shell; the engine treats it as opaque.
type PlayerID string

// Player represents an account that can stake currency on games
type Player struct {
	ID          PlayerID
	DisplayName string
	Balance     int64 // never negative; mutated only by the ledger
	Clicks      int64 // lifetime bonus claims
	JoinedAt    time.Time
	UpdatedAt   time.Time
}
