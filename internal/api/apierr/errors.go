package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avaskin/glitchbet/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeInvalidStake      = "INVALID_STAKE"
	CodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	CodeNoActiveSession   = "NO_ACTIVE_SESSION"
	CodeSessionInProgress = "SESSION_IN_PROGRESS"
	CodeNoPendingBet      = "NO_PENDING_BET"
	CodeInvalidGameType   = "INVALID_GAME_TYPE"
	CodeInvalidCoinSide   = "INVALID_COIN_SIDE"
	CodeInvalidOption     = "INVALID_OPTION"
	CodeInvalidBoardSize  = "INVALID_BOARD_SIZE"
	CodeInvalidMineCount  = "INVALID_MINE_COUNT"
	CodeInvalidCell       = "INVALID_CELL"
	CodeFairnessMismatch  = "FAIRNESS_MISMATCH"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidStake):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidStake, "Stake must be a positive amount"}}
	case errors.Is(err, model.ErrInsufficientFunds):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientFunds, "Balance does not cover the stake"}}
	case errors.Is(err, model.ErrNoActiveSession):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveSession, "No session awaiting this input"}}
	case errors.Is(err, model.ErrSessionInProgress):
		return &httpError{http.StatusConflict, APIError{CodeSessionInProgress, "A game is already in progress"}}
	case errors.Is(err, model.ErrNoPendingBet):
		return &httpError{http.StatusNotFound, APIError{CodeNoPendingBet, "No pending bet to stake"}}
	case errors.Is(err, model.ErrInvalidGameType):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameType, "Unknown game type"}}
	case errors.Is(err, model.ErrInvalidCoinSide):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoinSide, "Side must be heads or tails"}}
	case errors.Is(err, model.ErrInvalidOption):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidOption, "Option must be default or custom"}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoardSize, "Board size must be 4, 5, or 6"}}
	case errors.Is(err, model.ErrInvalidMineCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidMineCount, "Mine count must leave at least one safe cell"}}
	case errors.Is(err, model.ErrInvalidCell):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCell, "Cell number is off the board"}}

	// A commitment mismatch is an engine fault, never player error
	case errors.Is(err, model.ErrFairnessMismatch):
		return &httpError{http.StatusInternalServerError, APIError{CodeFairnessMismatch, "Game voided: commitment verification failed"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
