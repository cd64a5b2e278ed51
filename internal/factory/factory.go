package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/avaskin/glitchbet/internal/dependencies/clock"
	"github.com/avaskin/glitchbet/internal/dependencies/random"
	"github.com/avaskin/glitchbet/internal/services/coinflip"
	"github.com/avaskin/glitchbet/internal/services/fairness"
	"github.com/avaskin/glitchbet/internal/services/ledger"
	"github.com/avaskin/glitchbet/internal/services/mines"
	"github.com/avaskin/glitchbet/internal/services/players"
	"github.com/avaskin/glitchbet/internal/services/session"
	"github.com/avaskin/glitchbet/internal/storage"
	"github.com/avaskin/glitchbet/internal/storage/memory"
	redisstorage "github.com/avaskin/glitchbet/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Digest type constants
const (
	DigestSHA256  = "sha256"
	DigestBlake2b = "blake2b"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	FairnessService *fairness.Service
	LedgerService   *ledger.Service
	SessionManager  *session.Manager
	CoinflipEngine  *coinflip.Engine
	MinesEngine     *mines.Engine
	PlayerService   *players.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Digest selects the commitment digest ("sha256" or "blake2b")
	// If empty, defaults to "sha256"
	Digest string
	// SessionConfig holds session expiry settings (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// PlayersConfig holds player account settings (optional)
	// If zero value, defaults to players.DefaultConfig()
	PlayersConfig players.Config
	// Notifier receives out-of-band player messages (optional)
	// If nil, notifications are logged only
	Notifier session.Notifier
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var digest fairness.Digest
	switch cfg.Digest {
	case "", DigestSHA256:
		digest = fairness.SHA256Digest{}
	case DigestBlake2b:
		digest = fairness.Blake2bDigest{}
	default:
		return nil, errors.New("invalid Digest: must be 'sha256' or 'blake2b'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, digest, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	digest fairness.Digest,
	cfg Config,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	sessionCfg := cfg.SessionConfig
	if sessionCfg.IdleTimeout == 0 {
		sessionCfg = session.DefaultConfig()
	}
	playersCfg := cfg.PlayersConfig
	if playersCfg.StartingBalance == 0 && playersCfg.BonusMax == 0 {
		playersCfg = players.DefaultConfig()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = &session.LogNotifier{Logger: logger}
	}

	fairnessService := fairness.New(digest, rnd)
	ledgerService := ledger.New(store, clk, logger)
	sessionManager := session.NewManager(store, ledgerService, clk, notifier, sessionCfg, logger)
	coinflipEngine := coinflip.New(sessionManager, ledgerService, fairnessService, logger)
	minesEngine := mines.New(sessionManager, ledgerService, fairnessService, logger)
	playerService := players.New(store, ledgerService, clk, rnd, playersCfg, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		FairnessService: fairnessService,
		LedgerService:   ledgerService,
		SessionManager:  sessionManager,
		CoinflipEngine:  coinflipEngine,
		MinesEngine:     minesEngine,
		PlayerService:   playerService,
	}
}
