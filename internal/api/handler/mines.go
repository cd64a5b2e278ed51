package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avaskin/glitchbet/internal/api/request"
	"github.com/avaskin/glitchbet/internal/api/response"
	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/services/mines"
)

// MinesHandler handles the mines setup and resolution endpoints
type MinesHandler struct {
	engine *mines.Engine
}

// NewMinesHandler creates a new mines handler
func NewMinesHandler(engine *mines.Engine) *MinesHandler {
	return &MinesHandler{engine: engine}
}

// Field handles POST /api/v1/players/{player_id}/mines/field
func (h *MinesHandler) Field(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.MinesFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	state, err := h.engine.ChooseField(r.Context(), playerID, req.BoardSize)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MinesState{State: string(state)})
}

// Option handles POST /api/v1/players/{player_id}/mines/option
func (h *MinesHandler) Option(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.MinesOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	option, err := model.ParseMinesOption(req.Option)
	if err != nil {
		WriteError(w, err)
		return
	}

	commit, err := h.engine.ChooseOption(r.Context(), playerID, option)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MinesCommitFromModel(commit))
}

// Count handles POST /api/v1/players/{player_id}/mines/count
func (h *MinesHandler) Count(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.MinesCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	commit, err := h.engine.ChooseMineCount(r.Context(), playerID, req.MineCount)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MinesCommitFromModel(commit))
}

// Cell handles POST /api/v1/players/{player_id}/mines/cell
func (h *MinesHandler) Cell(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.MinesCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.engine.ChooseCell(r.Context(), playerID, req.Cell)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MinesResultFromModel(result))
}
