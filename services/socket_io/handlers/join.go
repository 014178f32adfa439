package handlers

import (
	"Scrawl/services/game"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoin adds the connection to a game session. Payload: {name, game?}.
// The acknowledgment carries either the created player or the name-taken
// rejection; it is also emitted as game_joined / join_error for clients that
// do not request an ack.
func HandleJoin(scheduler *game.TurnScheduler, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		ack := extractAck(args)
		if len(args) < 1 {
			log.Printf("[JOIN-ERROR] Missing join payload from %s", connID)
			client.Emit("error", gin.H{"error": "Missing join payload"})
			return
		}
		payload, ok := args[0].(map[string]interface{})
		if !ok {
			log.Printf("[JOIN-ERROR] Invalid join payload from %s", connID)
			client.Emit("error", gin.H{"error": "Invalid join payload"})
			return
		}

		name, _ := payload["name"].(string)
		target, _ := payload["game"].(string)
		if name == "" {
			client.Emit("error", gin.H{"error": "Missing player name"})
			return
		}

		player, sess, err := scheduler.HandleJoin(connID, name, target)
		if err != nil {
			response := gin.H{"error": err.Error()}
			client.Emit("join_error", response)
			if ack != nil {
				ack([]interface{}{response}, nil)
			}
			return
		}

		response := gin.H{"player": player, "session_id": sess.Id}
		client.Emit("game_joined", response)
		if ack != nil {
			ack([]interface{}{response}, nil)
		}
	}
}

// extractAck returns the trailing acknowledgment callback when the client
// sent one.
func extractAck(args []interface{}) func([]interface{}, error) {
	if len(args) == 0 {
		return nil
	}
	ack, _ := args[len(args)-1].(func([]interface{}, error))
	return ack
}
