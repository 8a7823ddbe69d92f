package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	chatTurnsTotal       atomic.Uint64
	chatTurnsFailedTotal atomic.Uint64
	extractionsTotal     atomic.Uint64
	rendersRichTotal     atomic.Uint64
	rendersSimpleTotal   atomic.Uint64
	rendersFailedTotal   atomic.Uint64

	renderDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 2000, 5000})
)

// IncChatTurn increments the completed chat turn counter.
func IncChatTurn() {
	chatTurnsTotal.Add(1)
}

// IncChatTurnFailed increments the failed chat turn counter.
func IncChatTurnFailed() {
	chatTurnsFailedTotal.Add(1)
}

// IncExtraction increments the successful resume extraction counter.
func IncExtraction() {
	extractionsTotal.Add(1)
}

// IncRender records a completed render by strategy.
func IncRender(strategy string) {
	if strategy == "simple" {
		rendersSimpleTotal.Add(1)
		return
	}
	rendersRichTotal.Add(1)
}

// IncRenderFailed increments the failed render counter.
func IncRenderFailed() {
	rendersFailedTotal.Add(1)
}

// ObserveRenderDurationMs records a render duration in milliseconds.
func ObserveRenderDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	renderDuration.Observe(value)
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
	writeCounter(&buf, "chat_turns_total", "Total chat turns processed", chatTurnsTotal.Load())
	writeCounter(&buf, "chat_turns_failed_total", "Total chat turns that hit a completion failure", chatTurnsFailedTotal.Load())
	writeCounter(&buf, "resume_extractions_total", "Total successful resume extractions", extractionsTotal.Load())
	writeCounter(&buf, "renders_rich_total", "Total resumes rendered with the rich strategy", rendersRichTotal.Load())
	writeCounter(&buf, "renders_simple_total", "Total resumes rendered with the simple fallback", rendersSimpleTotal.Load())
	writeCounter(&buf, "renders_failed_total", "Total resume renders that failed outright", rendersFailedTotal.Load())
	writeHistogram(&buf, "render_duration_ms", "Resume render duration in milliseconds", renderDuration.Snapshot())
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

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
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

// NowMillis returns the current time in milliseconds for duration math.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
