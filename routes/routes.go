package routes

import (
	"log"
	"net/http"
	"strconv"

	"pollsnip/handlers"
	"pollsnip/middleware"
	"pollsnip/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	questionHandler *handlers.QuestionHandler,
	choiceHandler *handlers.ChoiceHandler,
	answerHandler *handlers.AnswerHandler,
	snippetHandler *handlers.SnippetHandler,
	userHandler *handlers.UserHandler,
	hub *services.Hub,
	pollService *services.PollService,
	jwtSecret string,
) {
	// Auth routes (public)
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Everything else requires an authenticated actor.
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		protected.GET("", handlers.APIRoot)
		protected.GET("/auth/profile", authHandler.GetProfile)

		questions := protected.Group("/question")
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.POST("", questionHandler.CreateQuestion)
			questions.GET("/:id", questionHandler.GetQuestion)
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.PATCH("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
		}

		choices := protected.Group("/choice")
		{
			choices.GET("", choiceHandler.ListChoices)
			choices.POST("", choiceHandler.CreateChoice)
			choices.GET("/:id", choiceHandler.GetChoice)
			choices.PUT("/:id", choiceHandler.UpdateChoice)
			choices.PATCH("/:id", choiceHandler.UpdateChoice)
			choices.DELETE("/:id", choiceHandler.DeleteChoice)
			choices.POST("/:id/vote", choiceHandler.Vote)
		}

		answers := protected.Group("/answers")
		{
			answers.GET("", answerHandler.ListAnswers)
			answers.POST("", answerHandler.CreateAnswer)
			answers.GET("/:id", answerHandler.GetAnswer)
			answers.PUT("/:id", answerHandler.UpdateAnswer)
			answers.PATCH("/:id", answerHandler.UpdateAnswer)
			answers.DELETE("/:id", answerHandler.DeleteAnswer)
		}

		snippets := protected.Group("/snippets")
		{
			snippets.GET("", snippetHandler.ListSnippets)
			snippets.POST("", snippetHandler.CreateSnippet)
			snippets.GET("/:id", snippetHandler.GetSnippet)
			snippets.PUT("/:id", snippetHandler.UpdateSnippet)
			snippets.PATCH("/:id", snippetHandler.UpdateSnippet)
			snippets.DELETE("/:id", snippetHandler.DeleteSnippet)
			snippets.GET("/:id/highlight", snippetHandler.Highlight)
		}

		users := protected.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
		}
	}

	// WebSocket endpoint pushing live vote totals for one question.
	router.GET("/ws/question/:id/results", func(c *gin.Context) {
		questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question ID"})
			return
		}

		if _, err := pollService.GetQuestion(c.Request.Context(), uint(questionID)); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed for question %d: %v", questionID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		hub.RegisterClient(conn, uint(questionID))
	})

	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)
}
