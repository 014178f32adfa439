package handlers

import (
	"Scrawl/services/game"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandlePickWord lets the designated drawer choose one of the offered words
// and start the countdown.
func HandlePickWord(scheduler *game.TurnScheduler, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing word"})
			return
		}
		word, ok := args[0].(string)
		if !ok || word == "" {
			client.Emit("error", gin.H{"error": "Invalid word"})
			return
		}

		if err := scheduler.HandlePickWord(connID, word); err != nil {
			// Out-of-phase or unoffered picks are dropped without touching
			// the session; the drawer just gets told why
			log.Printf("[PICK] rejected pick from %s: %v", connID, err)
			client.Emit("error", gin.H{"error": err.Error()})
		}
	}
}
