package controllers

import (
	"Scrawl/services/leaderboard"
	"Scrawl/services/store"
	"Scrawl/sync"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GameController serves the read-only REST surface: live session info from
// the in-memory registry, archived matches from PostgreSQL and the global
// leaderboard from Redis. SyncManager and Leaderboard may be nil when the
// corresponding backend is not configured.
type GameController struct {
	Store       *store.GameStore
	SyncManager *sync.SyncManager
	Leaderboard *leaderboard.Leaderboard
}

// GetSessionInfo returns the public state of one live session.
func (gc *GameController) GetSessionInfo(c *gin.Context) {
	sessionID := c.Param("id")
	sess, err := gc.Store.GetSession(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	players := gc.Store.ListPlayers(sessionID)

	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           sess.Id,
		"phase":        sess.Phase,
		"active":       sess.Active(),
		"round":        sess.Round,
		"player_count": len(players),
		"players":      names,
	})
}

// GetRecentMatches returns the latest archived matches, newest first.
func (gc *GameController) GetRecentMatches(c *gin.Context) {
	if gc.SyncManager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "match archive not configured"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	matches, err := gc.SyncManager.RecentMatches(limit)
	if err != nil {
		log.Printf("[API-ERROR] recent matches: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading matches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// GetLeaderboard returns the highest lifetime scores across all sessions.
func (gc *GameController) GetLeaderboard(c *gin.Context) {
	if gc.Leaderboard == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "leaderboard not configured"})
		return
	}

	top, err := gc.Leaderboard.Top(10)
	if err != nil {
		log.Printf("[API-ERROR] leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading leaderboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": top})
}
