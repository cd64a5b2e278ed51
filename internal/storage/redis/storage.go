package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Pipeline the save with the index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0) // accounts never expire
	pipe.SAdd(ctx, playerIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.client.SMembers(ctx, playerIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

// Coinflip session operations

func (s *Storage) SaveCoinflipSession(ctx context.Context, session *model.CoinflipSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := coinflipKey(session.PlayerID)
	indexKey := coinflipIndexKey()

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, indexKey, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCoinflipSession(ctx context.Context, playerID model.PlayerID) (*model.CoinflipSession, error) {
	data, err := s.client.Get(ctx, coinflipKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoActiveSession
		}
		return nil, err
	}

	var session model.CoinflipSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteCoinflipSession(ctx context.Context, playerID model.PlayerID) error {
	key := coinflipKey(playerID)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, coinflipIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListCoinflipSessions(ctx context.Context) ([]*model.CoinflipSession, error) {
	keys, err := s.client.SMembers(ctx, coinflipIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.CoinflipSession{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.CoinflipSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Session may have expired; index entry is stale
		}
		var session model.CoinflipSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

// Mines session operations

func (s *Storage) SaveMinesSession(ctx context.Context, session *model.MinesSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := minesKey(session.PlayerID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, minesIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMinesSession(ctx context.Context, playerID model.PlayerID) (*model.MinesSession, error) {
	data, err := s.client.Get(ctx, minesKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoActiveSession
		}
		return nil, err
	}

	var session model.MinesSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteMinesSession(ctx context.Context, playerID model.PlayerID) error {
	key := minesKey(playerID)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, minesIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListMinesSessions(ctx context.Context) ([]*model.MinesSession, error) {
	keys, err := s.client.SMembers(ctx, minesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.MinesSession{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.MinesSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var session model.MinesSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

// Pending bet operations

func (s *Storage) SavePendingBet(ctx context.Context, bet *model.PendingBet) error {
	data, err := json.Marshal(bet)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, pendingBetKey(bet.PlayerID), data, s.cfg.PendingBetTTL).Err()
}

func (s *Storage) GetPendingBet(ctx context.Context, playerID model.PlayerID) (*model.PendingBet, error) {
	data, err := s.client.Get(ctx, pendingBetKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoPendingBet
		}
		return nil, err
	}

	var bet model.PendingBet
	if err := json.Unmarshal(data, &bet); err != nil {
		return nil, err
	}
	return &bet, nil
}

func (s *Storage) DeletePendingBet(ctx context.Context, playerID model.PlayerID) error {
	return s.client.Del(ctx, pendingBetKey(playerID)).Err()
}
