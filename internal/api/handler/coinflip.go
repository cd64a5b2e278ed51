package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avaskin/glitchbet/internal/api/request"
	"github.com/avaskin/glitchbet/internal/api/response"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/coinflip"
)

// CoinflipHandler handles coinflip resolution endpoints
type CoinflipHandler struct {
	engine *coinflip.Engine
}

// NewCoinflipHandler creates a new coinflip handler
func NewCoinflipHandler(engine *coinflip.Engine) *CoinflipHandler {
	return &CoinflipHandler{engine: engine}
}

// Choice handles POST /api/v1/players/{player_id}/coinflip/choice
func (h *CoinflipHandler) Choice(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.CoinflipChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	side, err := model.ParseCoinSide(req.Side)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.engine.ResolveChoice(r.Context(), playerID, side)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CoinflipResultFromModel(result))
}
