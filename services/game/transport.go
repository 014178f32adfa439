package game

// Transport is the publish/subscribe capability the scheduler broadcasts
// through, keyed by session id and by individual player (connection) id.
// Implemented over socket.io rooms in production and by a recorder in tests.
type Transport interface {
	// JoinSession subscribes the player's connection to the session channel.
	JoinSession(playerID, sessionID string)
	// LeaveSession unsubscribes the connection; tolerant of connections that
	// are already gone.
	LeaveSession(playerID, sessionID string)
	ToSession(sessionID, event string, payload interface{})
	ToSessionExcept(sessionID, exceptPlayerID, event string, payload interface{})
	ToPlayer(playerID, event string, payload interface{})
}
