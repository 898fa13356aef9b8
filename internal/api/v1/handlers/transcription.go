package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"audio2text/internal/api/errors"
	"audio2text/internal/api/middleware"
	"audio2text/internal/api/v1/dto"
	"audio2text/internal/api/v1/services"
	"audio2text/internal/app/model"
	"audio2text/internal/app/util/files"
	"audio2text/internal/config"
)

// MaxUploadBytes caps the total size of one upload request.
const MaxUploadBytes = 200 << 20

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{service: service}
}

// Upload handles POST /api/v1/transcriptions/upload
// Accepts one or more audio files as multipart form data and runs the
// whole batch before responding.
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			middleware.HandleError(c, errors.NewPayloadTooLargeError(
				fmt.Sprintf("Upload exceeds the %dMB limit", MaxUploadBytes>>20)))
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("Invalid multipart form"))
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		middleware.HandleError(c, errors.NewBadRequestError("No files uploaded"))
		return
	}

	language := c.PostForm("language")
	if language != "" && !config.IsKnownLanguage(language) {
		middleware.HandleError(c, errors.NewValidationError("Unknown language",
			map[string]string{"language": "is not a supported language"}))
		return
	}

	items := make([]model.UploadedItem, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError(
				fmt.Sprintf("Could not read %q", header.Filename)))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			middleware.HandleError(c, errors.NewBadRequestError(
				fmt.Sprintf("Could not read %q", header.Filename)))
			return
		}
		items = append(items, model.UploadedItem{
			Filename: filepath.Base(header.Filename),
			Data:     data,
		})
	}

	records, err := h.service.Transcribe(c.Request.Context(),
		middleware.SessionID(c), items, config.LanguageCode(language))
	if err != nil {
		if err == services.ErrBusy {
			middleware.HandleError(c, errors.NewBusyError(
				"A transcription run is already in progress, try again shortly"))
			return
		}
		middleware.HandleError(c, errors.NewInternalError("Transcription failed"))
		return
	}

	failed := 0
	for _, r := range records {
		if r.Failed() {
			failed++
		}
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Processed: len(records),
		Failed:    failed,
		Records:   dto.FromRecords(records),
	})
}

// List handles GET /api/v1/transcriptions
// Returns every record in the caller's session, oldest first.
func (h *TranscriptionHandler) List(c *gin.Context) {
	records := h.service.Records(middleware.SessionID(c))
	c.JSON(http.StatusOK, dto.ListResponse{Records: dto.FromRecords(records)})
}

// Download handles GET /api/v1/transcriptions/:key/download
// Streams the transcript as a text attachment. Downloading does not remove
// the record, so the same transcript can be fetched any number of times.
func (h *TranscriptionHandler) Download(c *gin.Context) {
	key := c.Param("key")
	record, ok := h.service.Record(middleware.SessionID(c), key)
	if !ok {
		middleware.HandleError(c, errors.NewNotFoundError("Transcription"))
		return
	}

	name := transcriptFileName(record.DisplayName)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(record.DisplayText()))
}

// Delete handles DELETE /api/v1/transcriptions/:key
// Removes one record from the caller's session.
func (h *TranscriptionHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	if _, ok := h.service.Record(middleware.SessionID(c), key); !ok {
		middleware.HandleError(c, errors.NewNotFoundError("Transcription"))
		return
	}

	h.service.Remove(middleware.SessionID(c), key)
	c.Status(http.StatusNoContent)
}

// transcriptFileName derives the download name from the uploaded file's
// name: strip the audio extension, append _transcript.txt.
func transcriptFileName(displayName string) string {
	return files.SanitizeBaseName(displayName) + "_transcript.txt"
}
