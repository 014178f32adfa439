package main

import (
	"Scrawl/config"
	"Scrawl/middleware"
	"Scrawl/routes"
	"Scrawl/services/game"
	"Scrawl/services/leaderboard"
	"Scrawl/services/redis"
	"Scrawl/services/socket_io"
	socketio_types "Scrawl/services/socket_io/types"
	"Scrawl/services/store"
	"Scrawl/sync"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	wordsPath := os.Getenv("WORDS_FILE")
	if wordsPath == "" {
		wordsPath = "words.txt"
	}
	words, err := game.LoadWordList(wordsPath)
	if err != nil {
		log.Fatalf("Error loading word list: %v", err)
	}
	log.Printf("Word list loaded from %s", wordsPath)

	rng := game.NewRng(time.Now().UnixNano())
	gameStore := store.NewGameStore(rng)

	sio := &socket_io.MySocketServer{}
	scheduler := game.NewTurnScheduler(gameStore, (*socketio_types.SocketServer)(sio), words, rng)

	// Match archive is optional: without a configured PostgreSQL the game
	// runs fully in memory
	var syncManager *sync.SyncManager
	if os.Getenv("POSTGRES_HOST") != "" {
		gormDB, err := config.ConnectGORM()
		if err != nil {
			log.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		if os.Getenv("MIGRATE_POSTGRES") == "true" {
			log.Println("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(gormDB); err != nil {
				log.Printf("Warning: Database migration failed: %v", err)
			}
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()

		syncManager = sync.NewSyncManager(sqlDB)
		scheduler.AddResultSink(syncManager)
	} else {
		log.Println("POSTGRES_HOST not set, match archive disabled")
	}

	// Same for the global leaderboard
	var lb *leaderboard.Leaderboard
	if os.Getenv("REDIS_URL") != "" {
		redisClient, err := config.ConnectRedis()
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer redis.CloseRedis(redisClient)

		lb = leaderboard.NewLeaderboard(redisClient)
		scheduler.AddResultSink(lb)
	} else {
		log.Println("REDIS_URL not set, leaderboard disabled")
	}

	r := gin.Default()
	middleware.SetUpMiddleware(r)
	routes.SetupRoutes(r, gameStore, syncManager, lb)

	sio.Start(r, scheduler)

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-signalC
		sio.Close()
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
