package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avaskin/glitchbet/internal/api/request"
	"github.com/avaskin/glitchbet/internal/api/response"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/coinflip"
	"github.com/avaskin/glitchbet/internal/services/mines"
	"github.com/avaskin/glitchbet/internal/services/session"
)

// BetHandler handles the two-step bet flow: declare a game, then stake it.
// The stake endpoint dispatches to whichever engine the pending bet named.
type BetHandler struct {
	sessions *session.Manager
	coinflip *coinflip.Engine
	mines    *mines.Engine
}

// NewBetHandler creates a new bet handler
func NewBetHandler(sessions *session.Manager, coinflip *coinflip.Engine, mines *mines.Engine) *BetHandler {
	return &BetHandler{
		sessions: sessions,
		coinflip: coinflip,
		mines:    mines,
	}
}

// Declare handles POST /api/v1/players/{player_id}/bets
func (h *BetHandler) Declare(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.PendingBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	gameType, err := model.ParseGameType(req.GameType)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.sessions.SetPendingBet(r.Context(), playerID, gameType); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PendingBet{
		PlayerID: string(playerID),
		GameType: string(gameType),
	})
}

// Stake handles POST /api/v1/players/{player_id}/stake
func (h *BetHandler) Stake(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.StakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	gameType, err := h.sessions.TakePendingBet(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	switch gameType {
	case model.GameCoinflip:
		start, err := h.coinflip.StartBet(r.Context(), playerID, req.Amount)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusCreated, response.CoinflipStartFromModel(start))
	case model.GameMines:
		start, err := h.mines.StartBet(r.Context(), playerID, req.Amount)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusCreated, response.MinesStartFromModel(start))
	default:
		WriteError(w, model.ErrInvalidGameType)
	}
}

// Cancel handles DELETE /api/v1/players/{player_id}/sessions/{game_type}
func (h *BetHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID := model.PlayerID(vars["player_id"])

	gameType, err := model.ParseGameType(vars["game_type"])
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.sessions.Cancel(r.Context(), playerID, gameType); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
