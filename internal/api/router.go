package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avaskin/glitchbet/internal/api/handler"
	apimiddleware "github.com/avaskin/glitchbet/internal/api/middleware"
	"github.com/avaskin/glitchbet/internal/middleware"
	"github.com/avaskin/glitchbet/internal/services/coinflip"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/mines"
	"github.com/avaskin/glitchbet/internal/services/players"
	"github.com/avaskin/glitchbet/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	PlayerService  *players.Service
	LedgerService  *ledger.Service
	SessionManager *session.Manager
	CoinflipEngine *coinflip.Engine
	MinesEngine    *mines.Engine
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService, cfg.LedgerService)
	betHandler := handler.NewBetHandler(cfg.SessionManager, cfg.CoinflipEngine, cfg.MinesEngine)
	coinflipHandler := handler.NewCoinflipHandler(cfg.CoinflipEngine)
	minesHandler := handler.NewMinesHandler(cfg.MinesEngine)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player accounts
	api.HandleFunc("/players", playerHandler.Ensure).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}/balance", playerHandler.Balance).Methods(http.MethodGet)
	api.HandleFunc("/players/{player_id}/name", playerHandler.Rename).Methods(http.MethodPatch)
	api.HandleFunc("/players/{player_id}/bonus", playerHandler.Bonus).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", playerHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard/clicks", playerHandler.ClicksLeaderboard).Methods(http.MethodGet)

	// Bet flow: declare a game, then stake it
	api.HandleFunc("/players/{player_id}/bets", betHandler.Declare).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/stake", betHandler.Stake).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/sessions/{game_type}", betHandler.Cancel).Methods(http.MethodDelete)

	// Coinflip resolution
	api.HandleFunc("/players/{player_id}/coinflip/choice", coinflipHandler.Choice).Methods(http.MethodPost)

	// Mines setup and resolution
	api.HandleFunc("/players/{player_id}/mines/field", minesHandler.Field).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/mines/option", minesHandler.Option).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/mines/count", minesHandler.Count).Methods(http.MethodPost)
	api.HandleFunc("/players/{player_id}/mines/cell", minesHandler.Cell).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
