package handlers

import (
	"Scrawl/services/game"

	"github.com/zishang520/socket.io/v2/socket"
)

// HandleDraw relays an opaque canvas payload to the rest of the session
// while the sender is drawing. The server never interprets the lines.
func HandleDraw(scheduler *game.TurnScheduler, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		scheduler.HandleDraw(string(client.Id()), args[0])
	}
}
