package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pollsnip/handlers"
	"pollsnip/middleware"
	"pollsnip/models"
	"pollsnip/routes"
	"pollsnip/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// 32-byte key, hex encoded, for EncryptedString columns in tests.
const testEncryptionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

var setEncryptionKeyOnce sync.Once

// SetupTestEnvironment builds the full router backed by an in-memory
// SQLite database.
func SetupTestEnvironment(t *testing.T) (*gin.Engine, *gorm.DB) {
	testing.Init()
	gin.SetMode(gin.TestMode)

	setEncryptionKeyOnce.Do(func() {
		if err := models.SetEncryptionKey(testEncryptionKey); err != nil {
			log.Fatalf("Failed to set test encryption key: %v", err)
		}
	})

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Choice{},
		&models.Answer{},
		&models.Snippet{},
		&models.AuditLogEntry{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.RegisterAuditLog(db); err != nil {
		log.Fatalf("Failed to register audit callbacks: %v", err)
	}

	ClearTables(db)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	})

	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	pollService := services.NewPollService(db)
	snippetService := services.NewSnippetService(db, nil)

	hub := services.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(authService, testJWTSecret)
	questionHandler := handlers.NewQuestionHandler(pollService)
	choiceHandler := handlers.NewChoiceHandler(pollService, hub)
	answerHandler := handlers.NewAnswerHandler(pollService)
	snippetHandler := handlers.NewSnippetHandler(snippetService)
	userHandler := handlers.NewUserHandler(userService)

	router := gin.New()
	routes.SetupRoutes(router, authHandler, questionHandler, choiceHandler, answerHandler, snippetHandler, userHandler, hub, pollService, testJWTSecret)

	return router, db
}

// ClearTables wipes every table; order matters for the FK chain.
func ClearTables(db *gorm.DB) {
	session := db.Session(&gorm.Session{AllowGlobalUpdate: true, SkipHooks: true})
	session.Delete(&models.AuditLogEntry{})
	session.Delete(&models.Answer{})
	session.Delete(&models.Choice{})
	session.Delete(&models.Question{})
	session.Delete(&models.Snippet{})
	session.Delete(&models.User{})
}

// CreateTestUser registers a user directly and returns a valid token.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()

	authService := services.NewAuthService(db)
	user, err := authService.Register(context.Background(), &services.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password1234",
	})
	require.NoError(t, err)

	token, err := middleware.SignToken(user.ID, user.Username, testJWTSecret, time.Hour)
	require.NoError(t, err)

	return user, token
}

// DoJSON performs a JSON request with an optional bearer token.
func DoJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
