package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avaskin/glitchbet/internal/dependencies/clock"
	"github.com/avaskin/glitchbet/internal/dependencies/keylock"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/storage"
)

// Notifier delivers out-of-band messages to a player through the messaging
// shell (expiry refunds, cancellations). The engine formats the text; the
// shell owns the transport.
type Notifier interface {
	Notify(ctx context.Context, playerID model.PlayerID, message string)
}

// LogNotifier is the default Notifier: it only logs. The shell replaces it
// with a real transport-backed implementation.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs the message instead of delivering it
func (n *LogNotifier) Notify(_ context.Context, playerID model.PlayerID, message string) {
	n.Logger.Info("player notification",
		slog.String("player_id", string(playerID)),
		slog.String("message", message),
	)
}

// Config holds session manager settings
type Config struct {
	// IdleTimeout is how long a session may sit in a non-terminal state
	// before the sweep cancels it (refunding immediate-debit stakes)
	IdleTimeout time.Duration
	// SweepInterval is how often the background sweep runs
	SweepInterval time.Duration
}

// DefaultConfig returns default session manager configuration
func DefaultConfig() Config {
	return Config{
		IdleTimeout:   15 * time.Minute,
		SweepInterval: time.Minute,
	}
}

// Manager owns all session records and pending bets. It is the single
// mutation point for session creation, transition, and deletion, and it
// hands out the per-player lock the engines hold across a whole state
// transition. Unrelated players never contend on the same lock.
type Manager struct {
	storage  storage.Storage
	ledger   *ledger.Service
	clock    clock.Clock
	locks    *keylock.KeyLock
	notifier Notifier
	logger   *slog.Logger
	cfg      Config
}

// NewManager creates a new session manager
func NewManager(
	storage storage.Storage,
	ledger *ledger.Service,
	clock clock.Clock,
	notifier Notifier,
	cfg Config,
	logger *slog.Logger,
) *Manager {
	if cfg.IdleTimeout == 0 {
		cfg = DefaultConfig()
	}
	return &Manager{
		storage:  storage,
		ledger:   ledger,
		clock:    clock,
		locks:    keylock.New(),
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
	}
}

// WithPlayerLock runs fn while holding playerID's exclusive lock. Engines
// wrap every session transition in this so duplicate or rapid-fire input
// for one player is serialized while other players proceed unaffected.
func (m *Manager) WithPlayerLock(playerID model.PlayerID, fn func() error) error {
	unlock := m.locks.Lock(string(playerID))
	defer unlock()
	return fn()
}

// Coinflip session accessors. Callers must hold the player's lock.

func (m *Manager) Coinflip(ctx context.Context, playerID model.PlayerID) (*model.CoinflipSession, error) {
	return m.storage.GetCoinflipSession(ctx, playerID)
}

func (m *Manager) PutCoinflip(ctx context.Context, session *model.CoinflipSession) error {
	session.UpdatedAt = m.clock.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}
	return m.storage.SaveCoinflipSession(ctx, session)
}

func (m *Manager) DeleteCoinflip(ctx context.Context, playerID model.PlayerID) error {
	return m.storage.DeleteCoinflipSession(ctx, playerID)
}

// Mines session accessors. Callers must hold the player's lock.

func (m *Manager) Mines(ctx context.Context, playerID model.PlayerID) (*model.MinesSession, error) {
	return m.storage.GetMinesSession(ctx, playerID)
}

func (m *Manager) PutMines(ctx context.Context, session *model.MinesSession) error {
	session.UpdatedAt = m.clock.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}
	return m.storage.SaveMinesSession(ctx, session)
}

func (m *Manager) DeleteMines(ctx context.Context, playerID model.PlayerID) error {
	return m.storage.DeleteMinesSession(ctx, playerID)
}

// Pending bet operations

// SetPendingBet records that the next stake amount from the player belongs
// to the given game type
func (m *Manager) SetPendingBet(ctx context.Context, playerID model.PlayerID, gameType model.GameType) error {
	return m.storage.SavePendingBet(ctx, &model.PendingBet{
		PlayerID:  playerID,
		GameType:  gameType,
		CreatedAt: m.clock.Now(),
	})
}

// TakePendingBet consumes the player's pending bet, returning its game type.
// The record is cleared whether or not the caller goes on to create a
// session: a pending bet is good for exactly one stake attempt.
func (m *Manager) TakePendingBet(ctx context.Context, playerID model.PlayerID) (model.GameType, error) {
	bet, err := m.storage.GetPendingBet(ctx, playerID)
	if err != nil {
		return "", err
	}
	if err := m.storage.DeletePendingBet(ctx, playerID); err != nil {
		return "", err
	}
	return bet.GameType, nil
}

// ClearPendingBet discards the player's pending bet, if any
func (m *Manager) ClearPendingBet(ctx context.Context, playerID model.PlayerID) error {
	return m.storage.DeletePendingBet(ctx, playerID)
}

// Cancel explicitly abandons the player's session for the given game type.
// The session is discarded without crediting or further charging: distinct
// from a resolution and from a loss. Expiry-driven cancellation (which does
// refund) goes through the sweep instead.
func (m *Manager) Cancel(ctx context.Context, playerID model.PlayerID, gameType model.GameType) error {
	return m.WithPlayerLock(playerID, func() error {
		switch gameType {
		case model.GameCoinflip:
			if _, err := m.storage.GetCoinflipSession(ctx, playerID); err != nil {
				return err
			}
			if err := m.storage.DeleteCoinflipSession(ctx, playerID); err != nil {
				return err
			}
		case model.GameMines:
			if _, err := m.storage.GetMinesSession(ctx, playerID); err != nil {
				return err
			}
			if err := m.storage.DeleteMinesSession(ctx, playerID); err != nil {
				return err
			}
		default:
			return model.ErrInvalidGameType
		}

		m.logger.Info("session cancelled",
			slog.String("player_id", string(playerID)),
			slog.String("game_type", string(gameType)),
		)
		return nil
	})
}

// Sweep force-cancels sessions idle beyond the configured timeout and
// returns how many it cleared. Mines stakes were debited up front, so an
// expired mines session refunds its stake; an expired coinflip commitment
// never held any funds. Each player's cleanup runs under that player's
// lock so a concurrent move either beats the sweep or finds no session.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	cutoff := m.clock.Now().Add(-m.cfg.IdleTimeout)
	swept := 0

	coinflips, err := m.storage.ListCoinflipSessions(ctx)
	if err != nil {
		return 0, err
	}
	for _, session := range coinflips {
		if !session.UpdatedAt.Before(cutoff) {
			continue
		}
		playerID := session.PlayerID
		deleted := false
		err := m.WithPlayerLock(playerID, func() error {
			current, err := m.storage.GetCoinflipSession(ctx, playerID)
			if err != nil || !current.UpdatedAt.Before(cutoff) {
				return nil // resolved or refreshed since listing
			}
			if err := m.storage.DeleteCoinflipSession(ctx, playerID); err != nil {
				return err
			}
			deleted = true
			return nil
		})
		if err != nil {
			return swept, err
		}
		if !deleted {
			continue
		}
		swept++
		m.logger.Info("expired coinflip session cleared",
			slog.String("player_id", string(playerID)),
		)
		m.notifier.Notify(ctx, playerID, "Your coinflip bet expired and was cancelled.")
	}

	mines, err := m.storage.ListMinesSessions(ctx)
	if err != nil {
		return swept, err
	}
	for _, session := range mines {
		if !session.UpdatedAt.Before(cutoff) {
			continue
		}
		playerID := session.PlayerID
		var refund int64
		err := m.WithPlayerLock(playerID, func() error {
			current, err := m.storage.GetMinesSession(ctx, playerID)
			if err != nil || !current.UpdatedAt.Before(cutoff) {
				return nil
			}
			if err := m.storage.DeleteMinesSession(ctx, playerID); err != nil {
				return err
			}
			refund = current.Stake
			return nil
		})
		if err != nil {
			return swept, err
		}
		if refund == 0 {
			continue
		}
		if _, err := m.ledger.Credit(ctx, playerID, refund); err != nil {
			m.logger.Error("failed to refund expired mines stake",
				slog.String("player_id", string(playerID)),
				slog.Int64("stake", refund),
				slog.String("error", err.Error()),
			)
			continue
		}
		swept++
		m.logger.Info("expired mines session refunded",
			slog.String("player_id", string(playerID)),
			slog.Int64("stake", refund),
		)
		m.notifier.Notify(ctx, playerID,
			fmt.Sprintf("Your mines game expired; your stake of %d was refunded.", refund))
	}

	return swept, nil
}

// Run executes the sweep on the configured interval until ctx is done
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := m.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
				m.logger.Error("session sweep failed", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			return
		}
	}
}
