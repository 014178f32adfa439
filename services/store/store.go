package store

import (
	game_constants "Scrawl/constants/game"
	game_models "Scrawl/models/game"
	"errors"
	"sync"
)

// Rand is the random source injected into the store so session assignment
// and id generation stay deterministic in tests.
type Rand interface {
	Intn(n int) int
}

var (
	ErrNameTaken       = errors.New("name is taken")
	ErrSessionNotFound = errors.New("session not found")
	ErrPlayerNotFound  = errors.New("player not found")
)

// GameStore is the authoritative registry of sessions and players. Every
// operation is atomic with respect to the records it touches and returns
// value copies, never pointers into the internal maps.
type GameStore struct {
	mu       sync.RWMutex
	sessions map[string]*game_models.GameSession
	players  map[string]*game_models.Player
	rng      Rand
}

func NewGameStore(rng Rand) *GameStore {
	return &GameStore{
		sessions: make(map[string]*game_models.GameSession),
		players:  make(map[string]*game_models.Player),
		rng:      rng,
	}
}

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const sessionIDLength = 6

// newSessionID generates an id that is not already in use. Must be called
// with the store lock held.
func (s *GameStore) newSessionID() string {
	for {
		buf := make([]byte, sessionIDLength)
		for i := range buf {
			buf[i] = sessionIDAlphabet[s.rng.Intn(len(sessionIDAlphabet))]
		}
		id := string(buf)
		if _, exists := s.sessions[id]; !exists {
			return id
		}
	}
}

// newSession must be called with the store lock held.
func (s *GameStore) newSession(id string) *game_models.GameSession {
	sess := &game_models.GameSession{
		Id:               id,
		Phase:            game_models.PhaseLobby,
		Round:            1,
		SecondsRemaining: game_constants.TurnDuration,
	}
	s.sessions[id] = sess
	return sess
}

// ResolveSession returns the id of the session a join should land in. When
// targetSessionID is empty a lobby-phase session is chosen uniformly at
// random; if none exists a fresh one is created. An unknown non-empty target
// creates a session with that id, so parties can share a code out of band
// before the first member connects. Resolution never touches any roster, so
// callers can take the session lock on the returned id before inserting.
func (s *GameStore) ResolveSession(targetSessionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if targetSessionID != "" {
		if _, exists := s.sessions[targetSessionID]; !exists {
			s.newSession(targetSessionID)
		}
		return targetSessionID
	}
	var lobbies []*game_models.GameSession
	for _, candidate := range s.sessions {
		if candidate.Phase == game_models.PhaseLobby {
			lobbies = append(lobbies, candidate)
		}
	}
	if len(lobbies) > 0 {
		return lobbies[s.rng.Intn(len(lobbies))].Id
	}
	return s.newSession(s.newSessionID()).Id
}

// AddPlayer registers a new player in an already-resolved session. A session
// whose last member left between resolution and insertion is re-created as a
// fresh lobby under the same id.
func (s *GameStore) AddPlayer(connID, name, sessionID string) (game_models.Player, game_models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions[sessionID]
	if sess == nil {
		sess = s.newSession(sessionID)
	}

	// Case-sensitive exact match within the session only
	for _, memberID := range sess.Members {
		if member := s.players[memberID]; member != nil && member.Name == name {
			return game_models.Player{}, game_models.GameSession{}, ErrNameTaken
		}
	}

	player := &game_models.Player{
		Id:        connID,
		Name:      name,
		SessionId: sess.Id,
	}
	s.players[connID] = player
	sess.Members = append(sess.Members, connID)

	return *player, sess.Clone(), nil
}

// GetSession returns a snapshot of the session record.
func (s *GameStore) GetSession(id string) (game_models.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sessions[id]
	if sess == nil {
		return game_models.GameSession{}, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// UpdateSession applies fn to the session record atomically and returns the
// resulting snapshot.
func (s *GameStore) UpdateSession(id string, fn func(*game_models.GameSession)) (game_models.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[id]
	if sess == nil {
		return game_models.GameSession{}, ErrSessionNotFound
	}
	fn(sess)
	return sess.Clone(), nil
}

// GetPlayer returns a snapshot of the player record.
func (s *GameStore) GetPlayer(id string) (game_models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player := s.players[id]
	if player == nil {
		return game_models.Player{}, ErrPlayerNotFound
	}
	return *player, nil
}

// UpdatePlayer applies fn to one player atomically and returns the session
// roster in join order, mirroring the update-then-list shape the event
// handlers broadcast after every mutation.
func (s *GameStore) UpdatePlayer(sessionID, playerID string, fn func(*game_models.Player)) ([]game_models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player := s.players[playerID]
	if player == nil || player.SessionId != sessionID {
		return nil, ErrPlayerNotFound
	}
	fn(player)
	return s.listPlayersLocked(sessionID), nil
}

// UpdatePlayers applies fn to every member of the session in one atomic
// step, used for turn and round boundary flag resets.
func (s *GameStore) UpdatePlayers(sessionID string, fn func(*game_models.Player)) ([]game_models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessions[sessionID]
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	for _, memberID := range sess.Members {
		if member := s.players[memberID]; member != nil {
			fn(member)
		}
	}
	return s.listPlayersLocked(sessionID), nil
}

// ListPlayers returns the session roster in join order.
func (s *GameStore) ListPlayers(sessionID string) []game_models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listPlayersLocked(sessionID)
}

func (s *GameStore) listPlayersLocked(sessionID string) []game_models.Player {
	sess := s.sessions[sessionID]
	if sess == nil {
		return nil
	}
	out := make([]game_models.Player, 0, len(sess.Members))
	for _, memberID := range sess.Members {
		if member := s.players[memberID]; member != nil {
			out = append(out, *member)
		}
	}
	return out
}

// RemovePlayer deletes the player and cascades: the player leaves its
// session's member list, and a session left with no members is released.
func (s *GameStore) RemovePlayer(playerID string) (game_models.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player := s.players[playerID]
	if player == nil {
		return game_models.Player{}, false
	}
	delete(s.players, playerID)

	if sess := s.sessions[player.SessionId]; sess != nil {
		members := sess.Members[:0]
		for _, memberID := range sess.Members {
			if memberID != playerID {
				members = append(members, memberID)
			}
		}
		sess.Members = members
		if len(sess.Members) == 0 {
			delete(s.sessions, sess.Id)
		}
	}
	return *player, true
}

// SessionCount reports the number of live sessions.
func (s *GameStore) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
