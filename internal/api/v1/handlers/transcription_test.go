package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2text/internal/api/middleware"
	"audio2text/internal/api/v1/routes"
	"audio2text/internal/api/v1/services"
	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/model"
)

type stubService struct {
	transcribeRecords []model.TranscriptRecord
	transcribeErr     error
	lastItems         []model.UploadedItem
	lastLanguage      string

	records []model.TranscriptRecord
	removed []string
	history []model.Transcription
}

func (s *stubService) Transcribe(_ context.Context, _ string, items []model.UploadedItem, languageCode string) ([]model.TranscriptRecord, error) {
	s.lastItems = items
	s.lastLanguage = languageCode
	if s.transcribeErr != nil {
		return nil, s.transcribeErr
	}
	return s.transcribeRecords, nil
}

func (s *stubService) Records(string) []model.TranscriptRecord { return s.records }

func (s *stubService) Record(_ string, key string) (model.TranscriptRecord, bool) {
	for _, r := range s.records {
		if r.Key == key {
			return r, true
		}
	}
	return model.TranscriptRecord{}, false
}

func (s *stubService) Remove(_ string, key string) { s.removed = append(s.removed, key) }

func (s *stubService) History(int) ([]model.Transcription, error) { return s.history, nil }

func setupRouter(svc services.TranscriptionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Session(3600))

	v1 := router.Group("/api/v1")
	routes.RegisterRoutes(v1, &routes.ServiceContainer{TranscriptionService: svc})
	return router
}

func multipartUpload(t *testing.T, files map[string][]byte, language string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if language != "" {
		require.NoError(t, writer.WriteField("language", language))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	svc := &stubService{
		transcribeRecords: []model.TranscriptRecord{
			{Key: "k1", DisplayName: "a.wav", Text: "hello"},
			{Key: "k2", DisplayName: "b.mp3", Err: apperrors.ErrTranscriptionFailed},
		},
	}
	router := setupRouter(svc)

	body, contentType := multipartUpload(t, map[string][]byte{
		"a.wav": []byte("RIFF"),
		"b.mp3": []byte("ID3"),
	}, "English")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["processed"])
	assert.Equal(t, float64(1), resp["failed"])

	assert.Len(t, svc.lastItems, 2)
	assert.Equal(t, "en", svc.lastLanguage)
}

func TestUpload_NoFiles(t *testing.T) {
	router := setupRouter(&stubService{})

	body, contentType := multipartUpload(t, nil, "English")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_UnknownLanguage(t *testing.T) {
	router := setupRouter(&stubService{})

	body, contentType := multipartUpload(t, map[string][]byte{"a.wav": []byte("RIFF")}, "Klingon")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp["kind"])
}

func TestUpload_Busy(t *testing.T) {
	router := setupRouter(&stubService{transcribeErr: services.ErrBusy})

	body, contentType := multipartUpload(t, map[string][]byte{"a.wav": []byte("RIFF")}, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestList_ReturnsSessionRecords(t *testing.T) {
	svc := &stubService{
		records: []model.TranscriptRecord{
			{Key: "k1", DisplayName: "a.wav", Text: "first"},
			{Key: "k2", DisplayName: "b.wav", Text: "second"},
		},
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Records []struct {
			Key  string `json:"key"`
			Text string `json:"text"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "k1", resp.Records[0].Key)
	assert.Equal(t, "second", resp.Records[1].Text)
}

func TestDownload_ServesTranscriptAttachment(t *testing.T) {
	svc := &stubService{
		records: []model.TranscriptRecord{
			{Key: "k1", DisplayName: "meeting notes.mp3", Text: "the transcript"},
		},
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/k1/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "the transcript", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "meeting_notes_transcript.txt")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestDownload_IsRepeatable(t *testing.T) {
	svc := &stubService{
		records: []model.TranscriptRecord{{Key: "k1", DisplayName: "a.wav", Text: "text"}},
	}
	router := setupRouter(svc)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/k1/download", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text", rec.Body.String())
	}
	assert.Empty(t, svc.removed)
}

func TestDownload_NotFound(t *testing.T) {
	router := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/missing/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_RemovesRecord(t *testing.T) {
	svc := &stubService{
		records: []model.TranscriptRecord{{Key: "k1", DisplayName: "a.wav", Text: "text"}},
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transcriptions/k1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"k1"}, svc.removed)
}

func TestDelete_NotFound(t *testing.T) {
	router := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transcriptions/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLanguages_ListsTable(t *testing.T) {
	router := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/languages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Languages []struct {
			Display string `json:"display"`
			Code    string `json:"code"`
		} `json:"languages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Languages)
	assert.Equal(t, "Auto Detect", resp.Languages[0].Display)
	assert.Equal(t, "", resp.Languages[0].Code)
}

func TestHistory_InvalidLimit(t *testing.T) {
	router := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHistory_ReturnsEntries(t *testing.T) {
	svc := &stubService{
		history: []model.Transcription{
			{ID: 1, FileName: "a.wav", AudioDuration: 3.5, Transcription: "hello"},
		},
	}
	router := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []struct {
			FileName string `json:"file_name"`
			HasError bool   `json:"has_error"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "a.wav", resp.Entries[0].FileName)
	assert.False(t, resp.Entries[0].HasError)
}
