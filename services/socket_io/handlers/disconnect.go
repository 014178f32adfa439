package handlers

import (
	"Scrawl/services/game"
	socketio_types "Scrawl/services/socket_io/types"
	"log"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleDisconnecting cleans up the leaving connection. The scheduler
// cascades the removal (roster, timers, session release) before the socket
// is dropped from the connection map.
func HandleDisconnecting(scheduler *game.TurnScheduler, client *socket.Socket,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		log.Printf("[DISCONNECT] connection %s closing", connID)

		scheduler.HandleDisconnect(connID)
		sio.RemoveConnection(connID)
	}
}
