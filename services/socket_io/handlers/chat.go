package handlers

import (
	"Scrawl/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleChat forwards a chat line; a message matching the secret word counts
// as a guess inside the scheduler.
func HandleChat(scheduler *game.TurnScheduler, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		message, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid chat message"})
			return
		}
		scheduler.HandleChat(string(client.Id()), message)

		if ack := extractAck(args); ack != nil {
			ack([]interface{}{gin.H{"delivered": true}}, nil)
		}
	}
}
