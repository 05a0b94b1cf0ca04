package handlers

import (
	"net/http"

	"pollsnip/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	pollService *services.PollService
}

func NewQuestionHandler(pollService *services.PollService) *QuestionHandler {
	return &QuestionHandler{
		pollService: pollService,
	}
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.pollService.CreateQuestion(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, pageSize := pageParams(c.Request.URL.Query())

	questions, err := h.pollService.ListQuestions(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	question, err := h.pollService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.pollService.UpdateQuestion(c.Request.Context(), questionID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.pollService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
