package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	recommendStartedTotal   atomic.Uint64
	recommendCompletedTotal atomic.Uint64
	recommendPartialTotal   atomic.Uint64
	derivationFailedTotal   atomic.Uint64
	rankingFailedTotal      atomic.Uint64

	pipelineDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncRecommendStarted increments the started counter.
func IncRecommendStarted() {
	recommendStartedTotal.Add(1)
}

// IncRecommendCompleted increments the completed counter.
func IncRecommendCompleted() {
	recommendCompletedTotal.Add(1)
}

// IncRecommendPartial increments the partial-result counter.
func IncRecommendPartial() {
	recommendPartialTotal.Add(1)
}

// IncDerivationFailed increments the failed role-derivation counter.
func IncDerivationFailed() {
	derivationFailedTotal.Add(1)
}

// IncRankingFailed increments the failed ranking/search counter.
func IncRankingFailed() {
	rankingFailedTotal.Add(1)
}

// ObservePipelineDurationMs records a full pipeline duration in milliseconds.
func ObservePipelineDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	pipelineDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommend_started_total", "Total recommendation requests started", recommendStartedTotal.Load())
	writeCounter(&buf, "recommend_completed_total", "Total recommendation requests completed", recommendCompletedTotal.Load())
	writeCounter(&buf, "recommend_partial_total", "Total recommendation requests completed with a degraded stage", recommendPartialTotal.Load())
	writeCounter(&buf, "derivation_failed_total", "Total role-derivation calls that failed", derivationFailedTotal.Load())
	writeCounter(&buf, "ranking_failed_total", "Total ranking/search calls that failed", rankingFailedTotal.Load())
	writeHistogram(&buf, "pipeline_duration_ms", "Recommendation pipeline duration in milliseconds", pipelineDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records a value in the first bucket whose bound covers it.
// Rendering accumulates the per-bucket counts into the cumulative le series.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
