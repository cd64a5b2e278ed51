package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avaskin/glitchbet/internal/dependencies/clock"
	"github.com/avaskin/glitchbet/internal/dependencies/keylock"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/storage"
)

// ErrNonPositiveAmount is returned when a mutation amount is zero or negative
var ErrNonPositiveAmount = errors.New("amount must be positive")

// ChangeHook is invoked after every balance mutation so the shell can
// persist the new balance. It runs outside the player's lock and must not
// call back into the ledger for the same player synchronously.
type ChangeHook func(playerID model.PlayerID, newBalance int64)

// Service is the single mutation point for player balances. Every deduct
// and credit for a given player is serialized behind that player's lock,
// and a balance can never go negative.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	locks   *keylock.KeyLock
	logger  *slog.Logger
	hook    ChangeHook
}

// New creates a new ledger service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		locks:   keylock.New(),
		logger:  logger,
	}
}

// SetChangeHook registers the persistence hook. Call before serving traffic;
// the hook is not guarded against concurrent replacement.
func (s *Service) SetChangeHook(hook ChangeHook) {
	s.hook = hook
}

// WithPlayerLock runs fn while holding the player's balance lock. Any code
// that saves a whole player record must run inside it, otherwise the save
// can overwrite a deduct or credit that landed in between. fn must not call
// back into the ledger for the same player.
func (s *Service) WithPlayerLock(playerID model.PlayerID, fn func() error) error {
	unlock := s.locks.Lock(string(playerID))
	defer unlock()
	return fn()
}

// BalanceOf returns the player's current balance
func (s *Service) BalanceOf(ctx context.Context, playerID model.PlayerID) (int64, error) {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return player.Balance, nil
}

// Deduct atomically subtracts amount from the player's balance. It fails
// with ErrInsufficientFunds if the balance would go negative, leaving the
// balance untouched.
func (s *Service) Deduct(ctx context.Context, playerID model.PlayerID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return s.mutate(ctx, playerID, -amount)
}

// Credit atomically adds amount to the player's balance
func (s *Service) Credit(ctx context.Context, playerID model.PlayerID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return s.mutate(ctx, playerID, amount)
}

// mutate applies a signed delta under the player's lock. The change hook
// fires after the lock is released; durable persistence is the shell's
// concern and never happens inside the transactional boundary.
func (s *Service) mutate(ctx context.Context, playerID model.PlayerID, delta int64) (int64, error) {
	newBalance, err := s.applyDelta(ctx, playerID, delta)
	if err != nil {
		return 0, err
	}

	s.logger.Info("balance changed",
		slog.String("player_id", string(playerID)),
		slog.Int64("delta", delta),
		slog.Int64("balance", newBalance),
	)

	if s.hook != nil {
		s.hook(playerID, newBalance)
	}

	return newBalance, nil
}

func (s *Service) applyDelta(ctx context.Context, playerID model.PlayerID, delta int64) (int64, error) {
	unlock := s.locks.Lock(string(playerID))
	defer unlock()

	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return 0, err
	}

	if player.Balance+delta < 0 {
		return 0, model.ErrInsufficientFunds
	}

	player.Balance += delta
	player.UpdatedAt = s.clock.Now()

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return 0, err
	}

	return player.Balance, nil
}
