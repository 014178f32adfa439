package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of
// socket connections keyed by connection id. It doubles as the game
// transport: sessions map to socket.io rooms, players to individual sockets.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track connection id -> socket
	Connections map[string]*socket.Socket
	mutex       sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(connID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[connID] = client
}

func (s *SocketServer) RemoveConnection(connID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, connID)
}

func (s *SocketServer) GetConnection(connID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.Connections[connID]
	return client, exists
}

// ---------------------------------------------------------------
// game.Transport implementation
// ---------------------------------------------------------------

func (s *SocketServer) JoinSession(playerID, sessionID string) {
	if client, exists := s.GetConnection(playerID); exists {
		client.Join(socket.Room(sessionID))
	}
}

func (s *SocketServer) LeaveSession(playerID, sessionID string) {
	if client, exists := s.GetConnection(playerID); exists {
		client.Leave(socket.Room(sessionID))
	}
}

func (s *SocketServer) ToSession(sessionID, event string, payload interface{}) {
	s.Sio_server.To(socket.Room(sessionID)).Emit(event, payload)
}

// ToSessionExcept emits through the excluded player's socket when it is
// still connected, which skips the sender the same way socket.broadcast
// does; once the socket is gone the whole room gets the event.
func (s *SocketServer) ToSessionExcept(sessionID, exceptPlayerID, event string, payload interface{}) {
	if client, exists := s.GetConnection(exceptPlayerID); exists {
		client.To(socket.Room(sessionID)).Emit(event, payload)
		return
	}
	s.Sio_server.To(socket.Room(sessionID)).Emit(event, payload)
}

func (s *SocketServer) ToPlayer(playerID, event string, payload interface{}) {
	if client, exists := s.GetConnection(playerID); exists {
		client.Emit(event, payload)
	}
}
