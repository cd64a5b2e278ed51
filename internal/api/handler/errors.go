package handler

import (
	"net/http"

	"github.com/avaskin/glitchbet/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest    = apierr.CodeInvalidRequest
	CodePlayerNotFound    = apierr.CodePlayerNotFound
	CodeInvalidStake      = apierr.CodeInvalidStake
	CodeInsufficientFunds = apierr.CodeInsufficientFunds
	CodeNoActiveSession   = apierr.CodeNoActiveSession
	CodeSessionInProgress = apierr.CodeSessionInProgress
	CodeNoPendingBet      = apierr.CodeNoPendingBet
	CodeInvalidGameType   = apierr.CodeInvalidGameType
	CodeInvalidCoinSide   = apierr.CodeInvalidCoinSide
	CodeInvalidOption     = apierr.CodeInvalidOption
	CodeInvalidBoardSize  = apierr.CodeInvalidBoardSize
	CodeInvalidMineCount  = apierr.CodeInvalidMineCount
	CodeInvalidCell       = apierr.CodeInvalidCell
	CodeFairnessMismatch  = apierr.CodeFairnessMismatch
	CodeInternalError     = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
