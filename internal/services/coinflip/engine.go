package coinflip

import (
	"context"
	"log/slog"

	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/fairness"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/session"
)

// Policy is coinflip's debit policy: the stake is not held when the bet is
// placed. Balance is checked and deducted only at resolution, so a player
// may commit a stake larger than their balance and still be rejected later.
const Policy = model.DebitDeferred

// Engine runs the coinflip game: a single committed flip resolved by one
// side choice
type Engine struct {
	sessions *session.Manager
	ledger   *ledger.Service
	fairness *fairness.Service
	logger   *slog.Logger
}

// New creates a coinflip engine
func New(
	sessions *session.Manager,
	ledger *ledger.Service,
	fairness *fairness.Service,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		sessions: sessions,
		ledger:   ledger,
		fairness: fairness,
		logger:   logger,
	}
}

// StartBet draws the secret outcome, stores the session, and returns the
// commit hash for publication. No funds move yet. A fresh bet replaces any
// unresolved one: the old commitment held nothing at risk.
func (e *Engine) StartBet(ctx context.Context, playerID model.PlayerID, stake int64) (*model.CoinflipStart, error) {
	if stake <= 0 {
		return nil, model.ErrInvalidStake
	}

	var start *model.CoinflipStart
	err := e.sessions.WithPlayerLock(playerID, func() error {
		if prev, err := e.sessions.Coinflip(ctx, playerID); err == nil {
			e.logger.Info("replacing unresolved coinflip bet",
				slog.String("player_id", string(playerID)),
				slog.Int64("previous_stake", prev.Stake),
				slog.Int64("stake", stake),
			)
		}

		outcome, commitHash, salt := e.fairness.CommitCoinflip()
		sess := &model.CoinflipSession{
			PlayerID:   playerID,
			Stake:      stake,
			Outcome:    outcome,
			CommitHash: commitHash,
			RevealSalt: salt,
		}
		if err := e.sessions.PutCoinflip(ctx, sess); err != nil {
			return err
		}

		start = &model.CoinflipStart{
			Stake:      stake,
			CommitHash: commitHash,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return start, nil
}

// ResolveChoice settles the player's session against their side choice.
// The session is consumed first so a duplicate choice cannot settle twice.
// The commitment is re-verified before any funds move: a mismatch voids
// the game without charging the player.
func (e *Engine) ResolveChoice(ctx context.Context, playerID model.PlayerID, choice model.CoinSide) (*model.CoinflipResult, error) {
	var result *model.CoinflipResult
	err := e.sessions.WithPlayerLock(playerID, func() error {
		sess, err := e.sessions.Coinflip(ctx, playerID)
		if err != nil {
			return err
		}
		if err := e.sessions.DeleteCoinflip(ctx, playerID); err != nil {
			return err
		}

		balance, err := e.ledger.BalanceOf(ctx, playerID)
		if err != nil {
			return err
		}
		if balance < sess.Stake {
			return model.ErrInsufficientFunds
		}

		if !e.fairness.Verify(string(sess.Outcome), sess.CommitHash) {
			e.logger.Error("coinflip commitment mismatch",
				slog.String("player_id", string(playerID)),
				slog.String("commit_hash", sess.CommitHash),
			)
			return model.ErrFairnessMismatch
		}

		balance, err = e.ledger.Deduct(ctx, playerID, sess.Stake)
		if err != nil {
			return err
		}

		win := choice == sess.Outcome
		var payout int64
		if win {
			payout = 2 * sess.Stake
			balance, err = e.ledger.Credit(ctx, playerID, payout)
			if err != nil {
				return err
			}
		}

		proof, gameHash := e.fairness.Proof(string(sess.Outcome), sess.RevealSalt)

		e.logger.Info("coinflip resolved",
			slog.String("player_id", string(playerID)),
			slog.Bool("win", win),
			slog.Int64("stake", sess.Stake),
			slog.Int64("payout", payout),
		)

		result = &model.CoinflipResult{
			Win:        win,
			Choice:     choice,
			Outcome:    sess.Outcome,
			Stake:      sess.Stake,
			Payout:     payout,
			Balance:    balance,
			CommitHash: sess.CommitHash,
			Proof:      proof,
			GameHash:   gameHash,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
