package players

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/avaskin/glitchbet/internal/dependencies/clock"
	"github.com/avaskin/glitchbet/internal/dependencies/random"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/storage"
)

// Config holds player account settings
type Config struct {
	// StartingBalance is granted when a player is first seen
	StartingBalance int64
	// BonusMin and BonusMax bound the random bonus credit (inclusive)
	BonusMin int64
	BonusMax int64
}

// DefaultConfig returns default player account configuration
func DefaultConfig() Config {
	return Config{
		StartingBalance: 100,
		BonusMin:        5,
		BonusMax:        17,
	}
}

// Service manages player accounts: creation on first contact, profile
// details, and the bonus grant. Balance movement beyond the bonus goes
// through the ledger.
type Service struct {
	storage storage.Storage
	ledger  *ledger.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	cfg     Config
}

// New creates a players service
func New(
	storage storage.Storage,
	ledger *ledger.Service,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.StartingBalance == 0 && cfg.BonusMax == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		storage: storage,
		ledger:  ledger,
		clock:   clock,
		random:  random,
		logger:  logger,
		cfg:     cfg,
	}
}

// Ensure returns the player's account, creating it with the starting
// balance on first contact. The check-and-create runs under the player's
// balance lock so the save cannot clobber a concurrent ledger mutation.
func (s *Service) Ensure(ctx context.Context, playerID model.PlayerID, displayName string) (*model.Player, error) {
	var player *model.Player
	var created bool

	err := s.ledger.WithPlayerLock(playerID, func() error {
		existing, err := s.storage.GetPlayer(ctx, playerID)
		if err == nil {
			player = existing
			return nil
		}
		if !errors.Is(err, model.ErrPlayerNotFound) {
			return err
		}

		now := s.clock.Now()
		player = &model.Player{
			ID:          playerID,
			DisplayName: displayName,
			Balance:     s.cfg.StartingBalance,
			JoinedAt:    now,
			UpdatedAt:   now,
		}
		created = true
		return s.storage.SavePlayer(ctx, player)
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("player registered",
			slog.String("player_id", string(playerID)),
			slog.Int64("starting_balance", s.cfg.StartingBalance),
		)
	}
	return player, nil
}

// Get returns the player's account
func (s *Service) Get(ctx context.Context, playerID model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, playerID)
}

// Rename updates the player's display name. The get-mutate-save runs under
// the player's balance lock: it writes the whole record back, and without
// the lock a rename racing a credit would resurrect the stale balance.
func (s *Service) Rename(ctx context.Context, playerID model.PlayerID, displayName string) (*model.Player, error) {
	var player *model.Player
	err := s.ledger.WithPlayerLock(playerID, func() error {
		var err error
		player, err = s.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		player.DisplayName = displayName
		player.UpdatedAt = s.clock.Now()
		return s.storage.SavePlayer(ctx, player)
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// Bonus credits the player a random amount within the configured bounds
// and returns the amount and resulting balance. Each claim also bumps the
// player's click counter.
func (s *Service) Bonus(ctx context.Context, playerID model.PlayerID) (amount, balance int64, err error) {
	span := int(s.cfg.BonusMax - s.cfg.BonusMin + 1)
	amount = s.cfg.BonusMin + int64(s.random.Intn(span))

	balance, err = s.ledger.Credit(ctx, playerID, amount)
	if err != nil {
		return 0, 0, err
	}

	err = s.ledger.WithPlayerLock(playerID, func() error {
		player, err := s.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		player.Clicks++
		player.UpdatedAt = s.clock.Now()
		return s.storage.SavePlayer(ctx, player)
	})
	if err != nil {
		return 0, 0, err
	}

	s.logger.Info("bonus granted",
		slog.String("player_id", string(playerID)),
		slog.Int64("amount", amount),
	)
	return amount, balance, nil
}

// TopBalances returns up to n players ordered by balance, highest first.
// Ties break on player ID so the ordering is stable.
func (s *Service) TopBalances(ctx context.Context, n int) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Balance != players[j].Balance {
			return players[i].Balance > players[j].Balance
		}
		return players[i].ID < players[j].ID
	})

	if n > 0 && len(players) > n {
		players = players[:n]
	}
	return players, nil
}

// TopClicks returns up to n players ordered by bonus claims, highest first.
// Ties break on player ID so the ordering is stable.
func (s *Service) TopClicks(ctx context.Context, n int) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(players, func(i, j int) bool {
		if players[i].Clicks != players[j].Clicks {
			return players[i].Clicks > players[j].Clicks
		}
		return players[i].ID < players[j].ID
	})

	if n > 0 && len(players) > n {
		players = players[:n]
	}
	return players, nil
}
