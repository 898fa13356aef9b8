package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audio2text/internal/api/v1/dto"
	"audio2text/internal/config"
)

// LanguagesHandler serves the transcription language table.
type LanguagesHandler struct{}

// NewLanguagesHandler creates a new languages handler
func NewLanguagesHandler() *LanguagesHandler {
	return &LanguagesHandler{}
}

// List handles GET /api/v1/languages
func (h *LanguagesHandler) List(c *gin.Context) {
	languages := config.Languages()
	out := make([]dto.LanguageResponse, 0, len(languages))
	for _, l := range languages {
		out = append(out, dto.LanguageResponse{Display: l.Display, Code: l.Code})
	}
	c.JSON(http.StatusOK, gin.H{"languages": out})
}
