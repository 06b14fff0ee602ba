package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/configs"
	v1 "github.com/shaik1234567/TaskFlow-AI/internal/api/v1"
	"github.com/shaik1234567/TaskFlow-AI/internal/api/v1/handlers"
	"github.com/shaik1234567/TaskFlow-AI/internal/auth"
	"github.com/shaik1234567/TaskFlow-AI/internal/middleware"
	"github.com/shaik1234567/TaskFlow-AI/internal/repository"
	"github.com/shaik1234567/TaskFlow-AI/internal/store"
	"github.com/shaik1234567/TaskFlow-AI/internal/suggest"
	"github.com/shaik1234567/TaskFlow-AI/internal/task"
	"github.com/shaik1234567/TaskFlow-AI/internal/ws"
	"github.com/shaik1234567/TaskFlow-AI/pkg/database"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()

	// Storage backends: postgres+redis in server deployments, a local
	// JSON file store otherwise.
	var (
		users auth.UserStore
		tasks task.Repository
	)
	switch cfg.StorageMode {
	case "postgres":
		db := database.ConnectDB(cfg)
		defer db.Close()
		repository.CreateTableIfNotExists(db)
		logger.SystemLogger.Info("Database connected")

		redisClient := database.ConnectRedis(context.Background(), cfg)
		defer redisClient.Close()

		users = auth.NewPostgresUsers(db)
		tasks = task.NewPostgresRepository(db, redisClient)
	default:
		kv, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open file store: %v", err)
		}
		logger.SystemLogger.Info("File store ready", zap.String("dir", cfg.DataDir))

		users = auth.NewStoreUsers(kv)
		tasks = task.NewStoreRepository(kv)
	}

	// No snapshot store here: over HTTP every client carries its own
	// session in the bearer token.
	sessions := auth.NewManager(users, nil, cfg.JWTSecret, cfg.TokenTTL)
	gateway := suggest.NewGateway(cfg.GeminiAPIKey, cfg.GeminiModel)

	hub := ws.NewHub()
	go hub.Run()

	h := handlers.New(sessions, tasks, gateway, hub)

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("TaskFlow AI API is running")
	})

	v1.RegisterRoutes(app, h, []byte(cfg.JWTSecret))

	// Task event feed. The credential comes in as a query parameter
	// since browsers cannot set headers on websocket upgrades.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/tasks", websocket.New(func(conn *websocket.Conn) {
		claims, err := auth.VerifyToken([]byte(cfg.JWTSecret), conn.Query("token"))
		if err != nil {
			logger.SecurityLogger.Warn("Rejected websocket credential", zap.Error(err))
			conn.Close()
			return
		}
		client := &ws.Client{OwnerID: claims.UserID, Conn: conn}
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		// The feed is one-way; reads only detect the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
