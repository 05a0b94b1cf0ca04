package main

import (
	"log"

	"pollsnip/config"
	"pollsnip/handlers"
	"pollsnip/middleware"
	"pollsnip/models"
	"pollsnip/routes"
	"pollsnip/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Field-level encryption key must be in place before any row is
	// read or written.
	if err := models.SetEncryptionKey(cfg.EncryptionKey); err != nil {
		log.Fatal("Failed to configure field encryption:", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Choice{},
		&models.Answer{},
		&models.Snippet{},
		&models.AuditLogEntry{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Journal every entity write
	if err := models.RegisterAuditLog(db); err != nil {
		log.Fatal("Failed to register audit log callbacks:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	pollService := services.NewPollService(db)
	snippetService := services.NewSnippetService(db, redisClient)

	// Initialize WebSocket hub for live vote results
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret)
	questionHandler := handlers.NewQuestionHandler(pollService)
	choiceHandler := handlers.NewChoiceHandler(pollService, hub)
	answerHandler := handlers.NewAnswerHandler(pollService)
	snippetHandler := handlers.NewSnippetHandler(snippetService)
	userHandler := handlers.NewUserHandler(userService)

	// Setup Gin router
	router := gin.Default()

	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, questionHandler, choiceHandler, answerHandler, snippetHandler, userHandler, hub, pollService, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
