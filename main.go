package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"room-service/internal/config"
	"room-service/internal/db"
	"room-service/internal/handlers"
	"room-service/internal/middleware"
	"room-service/internal/observability"
	"room-service/internal/rabbitmq"
	"room-service/internal/repositories"
	"room-service/internal/sweeper"
	"room-service/internal/telemetry"
	"room-service/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	shutdownTracing, err := observability.SetupTracing(ctx, "room-service", cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	auditPublisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer auditPublisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(auditPublisher))
	audit := telemetry.NewAuditEmitter(auditPublisher, "audit_log.rooms", "room-service", cfg.Environment)

	if cfg.AMQPURL != "" {
		eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("ws event publisher disabled: %v", err)
		} else {
			defer eventPublisher.Close()
			observability.SetPublisher(eventPublisher)
		}
	}

	roomRepo := repositories.NewRoomRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	hub := ws.NewHub()

	roomHandler := handlers.NewRoomHandler(roomRepo, messageRepo, audit, cfg.BaseURL)
	messageHandler := handlers.NewMessageHandler(messageRepo, roomRepo, hub)

	roomSweeper := sweeper.New(roomRepo, audit)
	cleanupHandler := handlers.NewCleanupHandler(roomSweeper)
	go roomSweeper.Run(ctx, cfg.SweepInterval)

	roomWS := ws.NewRoomWebSocketHandler(hub, roomRepo)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("room-service"))
	router.Use(observability.HTTPMetricsMiddleware())

	router.POST("/rooms", roomHandler.CreateRoom)
	router.GET("/rooms/:code", roomHandler.GetRoom)
	router.POST("/messages", messageHandler.PostMessage)
	router.POST("/cleanup", middleware.CleanupAuth(cfg.CleanupSecret), cleanupHandler.Trigger)
	router.GET("/ws/rooms/:code", roomWS.Handle)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := database.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Browser client: create/join page and per-room chat page.
	router.StaticFile("/", "./web/index.html")
	router.StaticFile("/chat", "./web/chat.html")
	router.GET("/chat/:code", func(c *gin.Context) {
		c.File("./web/chat.html")
	})

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
