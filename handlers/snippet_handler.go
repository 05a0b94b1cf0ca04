package handlers

import (
	"log"
	"net/http"

	"pollsnip/services"

	"github.com/gin-gonic/gin"
)

type SnippetHandler struct {
	snippetService *services.SnippetService
}

func NewSnippetHandler(snippetService *services.SnippetService) *SnippetHandler {
	return &SnippetHandler{
		snippetService: snippetService,
	}
}

// knownSnippetFilters are the recognized list query parameters; anything
// else is accepted but ignored with a warning.
var knownSnippetFilters = map[string]bool{
	"title":              true,
	"title__contains":    true,
	"language":           true,
	"language__contains": true,
	"min_price":          true,
	"max_price":          true,
	"line_nos":           true,
	"page":               true,
	"page_size":          true,
}

func (h *SnippetHandler) CreateSnippet(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.CreateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snippet, err := h.snippetService.CreateSnippet(c.Request.Context(), userID.(uint), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snippet)
}

func (h *SnippetHandler) ListSnippets(c *gin.Context) {
	query := c.Request.URL.Query()
	for key := range query {
		if !knownSnippetFilters[key] {
			log.Printf("Ignoring unknown snippet filter %q", key)
		}
	}

	filter := services.SnippetFilter{
		Title:            firstQuery(query, "title"),
		TitleContains:    firstQuery(query, "title__contains"),
		Language:         firstQuery(query, "language"),
		LanguageContains: firstQuery(query, "language__contains"),
		MinPrice:         parseIntQuery(query, "min_price"),
		MaxPrice:         parseIntQuery(query, "max_price"),
		Linenos:          parseBoolQuery(query, "line_nos"),
	}
	filter.Page, filter.PageSize = pageParams(query)

	snippets, err := h.snippetService.ListSnippets(c.Request.Context(), &filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snippets)
}

func (h *SnippetHandler) GetSnippet(c *gin.Context) {
	snippetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	snippet, err := h.snippetService.GetSnippet(c.Request.Context(), snippetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, snippet)
}

func (h *SnippetHandler) UpdateSnippet(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	snippetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snippet, err := h.snippetService.GetSnippet(c.Request.Context(), snippetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if !services.Allow(c.Request.Method, snippet.OwnerID, userID.(uint)) {
		writeServiceError(c, services.ErrNotOwner)
		return
	}

	updated, err := h.snippetService.UpdateSnippet(c.Request.Context(), snippet, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *SnippetHandler) DeleteSnippet(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	snippetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	snippet, err := h.snippetService.GetSnippet(c.Request.Context(), snippetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if !services.Allow(c.Request.Method, snippet.OwnerID, userID.(uint)) {
		writeServiceError(c, services.ErrNotOwner)
		return
	}

	if err := h.snippetService.DeleteSnippet(c.Request.Context(), snippet); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Highlight serves the rendered document as HTML rather than JSON.
func (h *SnippetHandler) Highlight(c *gin.Context) {
	snippetID, ok := parseIDParam(c)
	if !ok {
		return
	}

	snippet, err := h.snippetService.GetSnippet(c.Request.Context(), snippetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	html := h.snippetService.Highlighted(c.Request.Context(), snippet)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
