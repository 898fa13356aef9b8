package provider

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"audio2text/internal/app/api"
)

var (
	transcriptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "a2t_transcriptions_total",
		Help: "Transcription attempts by provider and outcome.",
	}, []string{"provider", "status"})

	transcriptionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "a2t_transcription_duration_seconds",
		Help:    "Wall-clock duration of transcription calls.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"provider"})
)

// instrumentedTranscriber records Prometheus metrics around an inner
// transcriber.
type instrumentedTranscriber struct {
	name string
	next api.Transcriber
}

// WithMetrics wraps t so every call is counted and timed under the given
// provider name.
func WithMetrics(name string, t api.Transcriber) api.Transcriber {
	return &instrumentedTranscriber{name: name, next: t}
}

func (it *instrumentedTranscriber) Transcript(ctx context.Context, inputFilePath string, language string) (string, error) {
	start := time.Now()
	text, err := it.next.Transcript(ctx, inputFilePath, language)
	transcriptionDuration.WithLabelValues(it.name).Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "failure"
	}
	transcriptionsTotal.WithLabelValues(it.name, status).Inc()
	return text, err
}
