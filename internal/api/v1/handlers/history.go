package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audio2text/internal/api/errors"
	"audio2text/internal/api/middleware"
	"audio2text/internal/api/v1/dto"
	"audio2text/internal/api/v1/services"
)

// HistoryHandler serves persisted transcription history.
type HistoryHandler struct {
	service services.TranscriptionService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service services.TranscriptionService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List handles GET /api/v1/history?limit=N
func (h *HistoryHandler) List(c *gin.Context) {
	var query dto.HistoryQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}
	limit := query.Limit
	if limit == 0 {
		limit = 100
	}

	rows, err := h.service.History(limit)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("Failed to load history"))
		return
	}

	entries := make([]dto.HistoryEntryResponse, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.FromTranscription(row))
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{Entries: entries})
}
