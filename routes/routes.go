package routes

import (
	"Scrawl/controllers"
	"Scrawl/services/leaderboard"
	"Scrawl/services/store"
	"Scrawl/sync"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, st *store.GameStore, syncManager *sync.SyncManager, lb *leaderboard.Leaderboard) {
	gameController := &controllers.GameController{
		Store:       st,
		SyncManager: syncManager,
		Leaderboard: lb,
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": st.SessionCount()})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/sessions/:id", gameController.GetSessionInfo)
		api.GET("/matches/recent", gameController.GetRecentMatches)
		api.GET("/leaderboard", gameController.GetLeaderboard)
	}
}
