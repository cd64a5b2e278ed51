package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avaskin/glitchbet/internal/api/request"
	"github.com/avaskin/glitchbet/internal/api/response"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/players"
)

// defaultLeaderboardLimit bounds the leaderboard when no limit is given
const defaultLeaderboardLimit = 10

// PlayerHandler handles player account endpoints
type PlayerHandler struct {
	players *players.Service
	ledger  *ledger.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *players.Service, ledger *ledger.Service) *PlayerHandler {
	return &PlayerHandler{
		players: players,
		ledger:  ledger,
	}
}

// Ensure handles POST /api/v1/players
func (h *PlayerHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var req request.EnsurePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = req.PlayerID
	}

	player, err := h.players.Ensure(r.Context(), model.PlayerID(req.PlayerID), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{player_id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	player, err := h.players.Get(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Balance handles GET /api/v1/players/{player_id}/balance
func (h *PlayerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	balance, err := h.ledger.BalanceOf(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Balance{
		PlayerID: string(playerID),
		Balance:  balance,
	})
}

// Rename handles PATCH /api/v1/players/{player_id}/name
func (h *PlayerHandler) Rename(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	player, err := h.players.Rename(r.Context(), playerID, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Bonus handles POST /api/v1/players/{player_id}/bonus
func (h *PlayerHandler) Bonus(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	amount, balance, err := h.players.Bonus(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Balance{
		PlayerID: string(playerID),
		Balance:  balance,
		Bonus:    amount,
	})
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	h.writeLeaderboard(w, r, h.players.TopBalances)
}

// ClicksLeaderboard handles GET /api/v1/leaderboard/clicks
func (h *PlayerHandler) ClicksLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.writeLeaderboard(w, r, h.players.TopClicks)
}

func (h *PlayerHandler) writeLeaderboard(
	w http.ResponseWriter,
	r *http.Request,
	top func(ctx context.Context, n int) ([]*model.Player, error),
) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	players, err := top(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := response.Leaderboard{Players: make([]response.Player, len(players))}
	for i, p := range players {
		out.Players[i] = response.PlayerFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}
