package mines

import (
	"context"
	"log/slog"

	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/fairness"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/session"
)

// Policy is mines' debit policy: the stake is taken from the balance the
// moment the bet is accepted, before any board setup. A refund happens
// only on idle expiry or a voided commitment, never on an explicit cancel.
const Policy = model.DebitImmediate

// Engine runs the mines game: a staged setup (board size, mine count
// option) ending in a grid commitment and a single cell pick
type Engine struct {
	sessions *session.Manager
	ledger   *ledger.Service
	fairness *fairness.Service
	logger   *slog.Logger
}

// New creates a mines engine
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

// StartBet debits the stake up front and opens a session waiting for the
// board size. A player with an unresolved mines session cannot start
// another: their stake is already committed to the live board.
func (e *Engine) StartBet(ctx context.Context, playerID model.PlayerID, stake int64) (*model.MinesStart, error) {
	if stake <= 0 {
		return nil, model.ErrInvalidStake
	}

	var start *model.MinesStart
	err := e.sessions.WithPlayerLock(playerID, func() error {
		if _, err := e.sessions.Mines(ctx, playerID); err == nil {
			return model.ErrSessionInProgress
		}

		balance, err := e.ledger.Deduct(ctx, playerID, stake)
		if err != nil {
			return err
		}

		sess := &model.MinesSession{
			PlayerID: playerID,
			Stake:    stake,
			State:    model.MinesStateChooseField,
		}
		if err := e.sessions.PutMines(ctx, sess); err != nil {
			// stake is already gone; put it back rather than strand it
			if _, refundErr := e.ledger.Credit(ctx, playerID, stake); refundErr != nil {
				e.logger.Error("failed to refund stake after session save failure",
					slog.String("player_id", string(playerID)),
					slog.Int64("stake", stake),
					slog.String("error", refundErr.Error()),
				)
			}
			return err
		}

		start = &model.MinesStart{
			Stake:   stake,
			State:   sess.State,
			Balance: balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return start, nil
}

// ChooseField sets the board size and advances to the mine count option.
// An out-of-range size leaves the session where it is so the player can
// try again.
func (e *Engine) ChooseField(ctx context.Context, playerID model.PlayerID, boardSize int) (model.MinesState, error) {
	var state model.MinesState
	err := e.sessions.WithPlayerLock(playerID, func() error {
		sess, err := e.sessions.Mines(ctx, playerID)
		if err != nil {
			return err
		}
		if sess.State != model.MinesStateChooseField {
			return model.ErrNoActiveSession
		}
		if !model.ValidBoardSize(boardSize) {
			return model.ErrInvalidBoardSize
		}

		sess.BoardSize = boardSize
		sess.State = model.MinesStateChooseOption
		if err := e.sessions.PutMines(ctx, sess); err != nil {
			return err
		}
		state = sess.State
		return nil
	})
	if err != nil {
		return "", err
	}
	return state, nil
}

// ChooseOption picks how the mine count is decided. The default option
// commits the grid immediately with DefaultMineCount mines; custom defers
// to a ChooseMineCount call.
func (e *Engine) ChooseOption(ctx context.Context, playerID model.PlayerID, option model.MinesOption) (*model.MinesCommit, error) {
	var commit *model.MinesCommit
	err := e.sessions.WithPlayerLock(playerID, func() error {
		sess, err := e.sessions.Mines(ctx, playerID)
		if err != nil {
			return err
		}
		if sess.State != model.MinesStateChooseOption {
			return model.ErrNoActiveSession
		}

		switch option {
		case model.OptionDefault:
			// the default count must leave at least one safe cell
			if sess.TotalCells()-model.DefaultMineCount < 1 {
				return model.ErrInvalidMineCount
			}
			return e.commitGrid(ctx, sess, model.DefaultMineCount, &commit)
		case model.OptionCustom:
			sess.State = model.MinesStateChooseMineCount
			if err := e.sessions.PutMines(ctx, sess); err != nil {
				return err
			}
			commit = &model.MinesCommit{State: sess.State}
			return nil
		default:
			return model.ErrInvalidOption
		}
	})
	if err != nil {
		return nil, err
	}
	return commit, nil
}

// ChooseMineCount sets a custom mine count and commits the grid. The count
// must leave at least one safe cell; a bad count keeps the session waiting.
func (e *Engine) ChooseMineCount(ctx context.Context, playerID model.PlayerID, mineCount int) (*model.MinesCommit, error) {
	var commit *model.MinesCommit
	err := e.sessions.WithPlayerLock(playerID, func() error {
		sess, err := e.sessions.Mines(ctx, playerID)
		if err != nil {
			return err
		}
		if sess.State != model.MinesStateChooseMineCount {
			return model.ErrNoActiveSession
		}
		if mineCount < 1 || mineCount >= sess.TotalCells() {
			return model.ErrInvalidMineCount
		}
		return e.commitGrid(ctx, sess, mineCount, &commit)
	})
	if err != nil {
		return nil, err
	}
	return commit, nil
}

// commitGrid generates the board, stores its hash on the session, and
// advances to the cell pick. Caller holds the player lock.
func (e *Engine) commitGrid(ctx context.Context, sess *model.MinesSession, mineCount int, out **model.MinesCommit) error {
	grid, gridHash := e.fairness.CommitGrid(sess.BoardSize, mineCount)

	sess.MineCount = mineCount
	sess.Grid = grid
	sess.GridHash = gridHash
	sess.State = model.MinesStateChooseCell
	if err := e.sessions.PutMines(ctx, sess); err != nil {
		return err
	}

	e.logger.Info("mines grid committed",
		slog.String("player_id", string(sess.PlayerID)),
		slog.Int("board_size", sess.BoardSize),
		slog.Int("mine_count", mineCount),
		slog.String("grid_hash", gridHash),
	)

	*out = &model.MinesCommit{
		BoardSize: sess.BoardSize,
		MineCount: mineCount,
		GridHash:  gridHash,
		State:     sess.State,
	}
	return nil
}

// ChooseCell resolves the game against the picked cell. The session is
// consumed first so a duplicate pick cannot settle twice, and the grid is
// re-verified against its commitment before any payout: a mismatch voids
// the game and refunds the up-front stake.
func (e *Engine) ChooseCell(ctx context.Context, playerID model.PlayerID, cellNumber int) (*model.MinesResult, error) {
	var result *model.MinesResult
	err := e.sessions.WithPlayerLock(playerID, func() error {
		sess, err := e.sessions.Mines(ctx, playerID)
		if err != nil {
			return err
		}
		if sess.State != model.MinesStateChooseCell {
			return model.ErrNoActiveSession
		}
		if cellNumber < 1 || cellNumber > sess.TotalCells() {
			return model.ErrInvalidCell
		}
		if err := e.sessions.DeleteMines(ctx, playerID); err != nil {
			return err
		}

		serialized := sess.Grid.Serialize()
		if !e.fairness.Verify(serialized, sess.GridHash) {
			e.logger.Error("mines grid commitment mismatch",
				slog.String("player_id", string(playerID)),
				slog.String("grid_hash", sess.GridHash),
			)
			if _, refundErr := e.ledger.Credit(ctx, playerID, sess.Stake); refundErr != nil {
				e.logger.Error("failed to refund stake after commitment mismatch",
					slog.String("player_id", string(playerID)),
					slog.Int64("stake", sess.Stake),
					slog.String("error", refundErr.Error()),
				)
			}
			return model.ErrFairnessMismatch
		}

		row, col := model.CellPosition(cellNumber, sess.BoardSize)
		win := sess.Grid[row][col] != model.CellMine

		var payout int64
		balance, err := e.ledger.BalanceOf(ctx, playerID)
		if err != nil {
			return err
		}
		if win {
			payout = 2 * sess.Stake
			balance, err = e.ledger.Credit(ctx, playerID, payout)
			if err != nil {
				return err
			}
		}

		e.logger.Info("mines resolved",
			slog.String("player_id", string(playerID)),
			slog.Bool("win", win),
			slog.Int("cell", cellNumber),
			slog.Int64("stake", sess.Stake),
			slog.Int64("payout", payout),
		)

		result = &model.MinesResult{
			Win:      win,
			Cell:     cellNumber,
			Row:      row,
			Col:      col,
			Stake:    sess.Stake,
			Payout:   payout,
			Balance:  balance,
			GridHash: sess.GridHash,
			Grid:     serialized,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
