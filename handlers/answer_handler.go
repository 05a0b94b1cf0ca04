package handlers

import (
	"net/http"

	"pollsnip/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	pollService *services.PollService
}

func NewAnswerHandler(pollService *services.PollService) *AnswerHandler {
	return &AnswerHandler{
		pollService: pollService,
	}
}

func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	var req services.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.pollService.CreateAnswer(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

func (h *AnswerHandler) ListAnswers(c *gin.Context) {
	page, pageSize := pageParams(c.Request.URL.Query())

	answers, err := h.pollService.ListAnswers(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, answers)
}

func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	answerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	answer, err := h.pollService.GetAnswer(c.Request.Context(), answerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	answerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.pollService.UpdateAnswer(c.Request.Context(), answerID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	answerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.pollService.DeleteAnswer(c.Request.Context(), answerID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
