package storage

import (
	"context"

	"github.com/avaskin/glitchbet/internal/model"
)

// Storage defines the interface for data persistence. Sessions and pending
// bets are keyed by player: at most one of each per player exists.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Coinflip session operations
	SaveCoinflipSession(ctx context.Context, session *model.CoinflipSession) error
	GetCoinflipSession(ctx context.Context, playerID model.PlayerID) (*model.CoinflipSession, error)
	DeleteCoinflipSession(ctx context.Context, playerID model.PlayerID) error
	ListCoinflipSessions(ctx context.Context) ([]*model.CoinflipSession, error)

	// Mines session operations
	SaveMinesSession(ctx context.Context, session *model.MinesSession) error
	GetMinesSession(ctx context.Context, playerID model.PlayerID) (*model.MinesSession, error)
	DeleteMinesSession(ctx context.Context, playerID model.PlayerID) error
	ListMinesSessions(ctx context.Context) ([]*model.MinesSession, error)

	// Pending bet operations
	SavePendingBet(ctx context.Context, bet *model.PendingBet) error
	GetPendingBet(ctx context.Context, playerID model.PlayerID) (*model.PendingBet, error)
	DeletePendingBet(ctx context.Context, playerID model.PlayerID) error
}
