package whisper_server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2text/internal/app/tempfile"
)

func writeWav(t *testing.T, seconds float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	sampleRate := 8000
	n := int(seconds * float64(sampleRate))
	data := make([]int, n)
	for i := range data {
		data[i] = int(8000 * math.Sin(float64(i)/30))
	}
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	return path
}

func TestServerTranscriber_SingleRequest(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "json", r.FormValue("response_format"))
		assert.Equal(t, "en", r.FormValue("language"))
		_, _, err := r.FormFile("file")
		require.NoError(t, err)
		fmt.Fprint(w, `{"text":" short transcript "}`)
	}))
	defer ts.Close()

	st, err := NewServerTranscriber(Config{BaseURL: ts.URL}, tempfile.NewStore(t.TempDir()), nil)
	require.NoError(t, err)

	text, err := st.Transcript(context.Background(), writeWav(t, 2), "en")
	require.NoError(t, err)
	assert.Equal(t, "short transcript", text)
	assert.EqualValues(t, 1, calls, "short input must not be chunked")
}

func TestServerTranscriber_ChunkedLongInput(t *testing.T) {
	// 5 s input with a 2 s cap: exactly 3 sequential requests, concatenated
	// in request order.
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		fmt.Fprintf(w, `{"text":"part%d"}`, n)
	}))
	defer ts.Close()

	chunkDir := t.TempDir()
	store := tempfile.NewStore(chunkDir)
	st, err := NewServerTranscriber(Config{BaseURL: ts.URL, ChunkSeconds: 2}, store, nil)
	require.NoError(t, err)

	text, err := st.Transcript(context.Background(), writeWav(t, 5), "")
	require.NoError(t, err)
	assert.Equal(t, "part1 part2 part3", text)
	assert.EqualValues(t, 3, calls)

	// chunk scratch files are released
	entries, err := os.ReadDir(chunkDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestServerTranscriber_ChunkFailureReleasesScratch(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 2 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"text":"ok"}`)
	}))
	defer ts.Close()

	chunkDir := t.TempDir()
	st, err := NewServerTranscriber(Config{BaseURL: ts.URL, ChunkSeconds: 2}, tempfile.NewStore(chunkDir), nil)
	require.NoError(t, err)

	_, err = st.Transcript(context.Background(), writeWav(t, 5), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk 2/3")

	entries, err := os.ReadDir(chunkDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed run must not leak chunk files")
}

func TestServerTranscriber_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"no model loaded"}`)
	}))
	defer ts.Close()

	st, err := NewServerTranscriber(Config{BaseURL: ts.URL}, tempfile.NewStore(t.TempDir()), nil)
	require.NoError(t, err)

	_, err = st.Transcript(context.Background(), writeWav(t, 1), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no model loaded")
}

func TestNewServerTranscriber_RequiresBaseURL(t *testing.T) {
	_, err := NewServerTranscriber(Config{}, tempfile.NewStore(t.TempDir()), nil)
	assert.Error(t, err)
}
