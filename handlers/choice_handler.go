package handlers

import (
	"log"
	"net/http"

	"pollsnip/services"

	"github.com/gin-gonic/gin"
)

type ChoiceHandler struct {
	pollService *services.PollService
	hub         *services.Hub
}

func NewChoiceHandler(pollService *services.PollService, hub *services.Hub) *ChoiceHandler {
	return &ChoiceHandler{
		pollService: pollService,
		hub:         hub,
	}
}

func (h *ChoiceHandler) CreateChoice(c *gin.Context) {
	var req services.CreateChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	choice, err := h.pollService.CreateChoice(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, choice)
}

func (h *ChoiceHandler) ListChoices(c *gin.Context) {
	page, pageSize := pageParams(c.Request.URL.Query())

	choices, err := h.pollService.ListChoices(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, choices)
}

func (h *ChoiceHandler) GetChoice(c *gin.Context) {
	choiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	choice, err := h.pollService.GetChoice(c.Request.Context(), choiceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, choice)
}

func (h *ChoiceHandler) UpdateChoice(c *gin.Context) {
	choiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	choice, err := h.pollService.UpdateChoice(c.Request.Context(), choiceID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, choice)
}

func (h *ChoiceHandler) DeleteChoice(c *gin.Context) {
	choiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.pollService.DeleteChoice(c.Request.Context(), choiceID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Vote increments the counter and pushes the new totals to websocket
// subscribers of the parent question.
func (h *ChoiceHandler) Vote(c *gin.Context) {
	choiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	choice, err := h.pollService.Vote(c.Request.Context(), choiceID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if h.hub != nil {
		results, err := h.pollService.Results(c.Request.Context(), choice.QuestionID)
		if err != nil {
			log.Printf("Failed to load results for question %d after vote: %v", choice.QuestionID, err)
		} else {
			h.hub.BroadcastResults(choice.QuestionID, results)
		}
	}

	c.JSON(http.StatusOK, choice)
}
