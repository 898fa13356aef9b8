package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2text/internal/api/v1/services"
	"audio2text/internal/app/model"
	"audio2text/internal/app/pipeline"
	"audio2text/internal/app/session"
	"audio2text/internal/app/tempfile"
	"audio2text/internal/app/testutil"
)

func newService(t *testing.T, tr *testutil.MockTranscriber) services.TranscriptionService {
	t.Helper()
	store := tempfile.NewStore(t.TempDir())
	p := pipeline.New(tr, &testutil.FakeConverter{}, store, nil, nil)
	return services.NewTranscriptionService(p, session.NewManager(time.Hour), nil, nil)
}

func TestTranscribe_ReplacesPreviousResults(t *testing.T) {
	tr := &testutil.MockTranscriber{DefaultResponse: "transcript"}
	svc := newService(t, tr)

	_, err := svc.Transcribe(context.Background(), "sess",
		[]model.UploadedItem{{Filename: "a.wav", Data: []byte("one")}}, "")
	require.NoError(t, err)

	_, err = svc.Transcribe(context.Background(), "sess",
		[]model.UploadedItem{{Filename: "b.wav", Data: []byte("two")}}, "")
	require.NoError(t, err)

	// A new upload starts a fresh result set.
	records := svc.Records("sess")
	require.Len(t, records, 1)
	assert.Equal(t, "b.wav", records[0].DisplayName)

	// A different session sees nothing.
	assert.Empty(t, svc.Records("other"))
}

func TestTranscribe_RemoveDropsRecord(t *testing.T) {
	tr := &testutil.MockTranscriber{DefaultResponse: "transcript"}
	svc := newService(t, tr)

	records, err := svc.Transcribe(context.Background(), "sess",
		[]model.UploadedItem{{Filename: "a.wav", Data: []byte("one")}}, "")
	require.NoError(t, err)
	require.Len(t, records, 1)

	key := records[0].Key
	_, ok := svc.Record("sess", key)
	require.True(t, ok)

	svc.Remove("sess", key)
	_, ok = svc.Record("sess", key)
	assert.False(t, ok)
}

type blockingTranscriber struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return "done", nil
}

func TestTranscribe_SecondCallerGetsBusy(t *testing.T) {
	tr := &blockingTranscriber{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := tempfile.NewStore(t.TempDir())
	p := pipeline.New(tr, &testutil.FakeConverter{}, store, nil, nil)
	svc := services.NewTranscriptionService(p, session.NewManager(time.Hour), nil, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Transcribe(context.Background(), "sess",
			[]model.UploadedItem{{Filename: "slow.wav", Data: []byte("x")}}, "")
		firstDone <- err
	}()

	<-tr.started

	_, err := svc.Transcribe(context.Background(), "sess",
		[]model.UploadedItem{{Filename: "fast.wav", Data: []byte("y")}}, "")
	assert.ErrorIs(t, err, services.ErrBusy)

	close(tr.release)
	require.NoError(t, <-firstDone)
}

func TestHistory_EmptyWithoutDatabase(t *testing.T) {
	svc := newService(t, &testutil.MockTranscriber{DefaultResponse: "t"})

	rows, err := svc.History(10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
