package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScreenshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caption_screenshots_total",
		Help: "Screenshots attempted, by result (produced, skipped)",
	}, []string{"result"})

	LLMCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caption_llm_calls_total",
		Help: "Calls to the model endpoint, by operation and status",
	}, []string{"operation", "status"})

	RecordsPersistedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caption_records_persisted_total",
		Help: "Caption records written to reports, by outcome",
	}, []string{"outcome"})

	CaptionsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caption_generated_total",
		Help: "Normalized captions collected by the batch generator, by category",
	}, []string{"category"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "caption_stage_duration_seconds",
		Help:    "Duration of pipeline stages",
		Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})
)
