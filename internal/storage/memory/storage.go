package memory

import (
	"context"
	"sync"

	"github.com/avaskin/glitchbet/internal/model"
	"github.com/avaskin/glitchbet/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players          map[model.PlayerID]*model.Player
	coinflipSessions map[model.PlayerID]*model.CoinflipSession
	minesSessions    map[model.PlayerID]*model.MinesSession
	pendingBets      map[model.PlayerID]*model.PendingBet
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:          make(map[model.PlayerID]*model.Player),
		coinflipSessions: make(map[model.PlayerID]*model.CoinflipSession),
		minesSessions:    make(map[model.PlayerID]*model.MinesSession),
		pendingBets:      make(map[model.PlayerID]*model.PendingBet),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Records are copied on the way in and out so callers never share memory
// with the store. The Redis backend gets the same isolation for free from
// marshaling; without these copies a caller's field read could race a
// later mutation of the stored record.

func copyPlayer(p *model.Player) *model.Player {
	c := *p
	return &c
}

func copyCoinflipSession(sess *model.CoinflipSession) *model.CoinflipSession {
	c := *sess
	return &c
}

func copyMinesSession(sess *model.MinesSession) *model.MinesSession {
	c := *sess
	if sess.Grid != nil {
		c.Grid = make(model.Grid, len(sess.Grid))
		for i, row := range sess.Grid {
			c.Grid[i] = append([]model.Cell(nil), row...)
		}
	}
	return &c
}

func copyPendingBet(bet *model.PendingBet) *model.PendingBet {
	c := *bet
	return &c
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, copyPlayer(p))
	}
	return players, nil
}

// Coinflip session operations

func (s *Storage) SaveCoinflipSession(ctx context.Context, session *model.CoinflipSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coinflipSessions[session.PlayerID] = copyCoinflipSession(session)
	return nil
}

func (s *Storage) GetCoinflipSession(ctx context.Context, playerID model.PlayerID) (*model.CoinflipSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.coinflipSessions[playerID]
	if !ok {
		return nil, model.ErrNoActiveSession
	}
	return copyCoinflipSession(session), nil
}

func (s *Storage) DeleteCoinflipSession(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.coinflipSessions, playerID)
	return nil
}

func (s *Storage) ListCoinflipSessions(ctx context.Context) ([]*model.CoinflipSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.CoinflipSession, 0, len(s.coinflipSessions))
	for _, session := range s.coinflipSessions {
		sessions = append(sessions, copyCoinflipSession(session))
	}
	return sessions, nil
}

// Mines session operations

func (s *Storage) SaveMinesSession(ctx context.Context, session *model.MinesSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minesSessions[session.PlayerID] = copyMinesSession(session)
	return nil
}

func (s *Storage) GetMinesSession(ctx context.Context, playerID model.PlayerID) (*model.MinesSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.minesSessions[playerID]
	if !ok {
		return nil, model.ErrNoActiveSession
	}
	return copyMinesSession(session), nil
}

func (s *Storage) DeleteMinesSession(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.minesSessions, playerID)
	return nil
}

func (s *Storage) ListMinesSessions(ctx context.Context) ([]*model.MinesSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.MinesSession, 0, len(s.minesSessions))
	for _, session := range s.minesSessions {
		sessions = append(sessions, copyMinesSession(session))
	}
	return sessions, nil
}

// Pending bet operations

func (s *Storage) SavePendingBet(ctx context.Context, bet *model.PendingBet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingBets[bet.PlayerID] = copyPendingBet(bet)
	return nil
}

func (s *Storage) GetPendingBet(ctx context.Context, playerID model.PlayerID) (*model.PendingBet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bet, ok := s.pendingBets[playerID]
	if !ok {
		return nil, model.ErrNoPendingBet
	}
	return copyPendingBet(bet), nil
}

func (s *Storage) DeletePendingBet(ctx context.Context, playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingBets, playerID)
	return nil
}
