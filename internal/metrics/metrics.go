package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Stream mapper metrics
	mapperStreamsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "timecode_mapper_streams_active",
		Help: "Number of streams currently mapped to timecode",
	})

	mapperTimestampsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_mapper_timestamps_total",
		Help: "Total media timestamps mapped to timecode",
	}, []string{"stream_id"})

	mapperWrapsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_mapper_wraps_total",
		Help: "Total 32-bit media clock wraparounds",
	}, []string{"stream_id"})

	mapperDiscontinuitiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_mapper_discontinuities_total",
		Help: "Total timestamp jumps larger than the configured maximum",
	}, []string{"stream_id"})

	mapperErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_mapper_errors_total",
		Help: "Total mapping errors by timecode error type",
	}, []string{"stream_id", "error_type"})

	mapperSenderReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_mapper_sender_reports_total",
		Help: "Total RTCP sender reports used to re-anchor a stream",
	}, []string{"stream_id"})

	mapperFrameCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timecode_mapper_frame_count",
		Help: "Frame count of the most recently mapped timecode",
	}, []string{"stream_id"})

	mapperResyncDriftFrames = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timecode_mapper_resync_drift_frames",
		Help:    "Absolute difference in frames between the running and re-anchored timecode",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 to 2048 frames
	}, []string{"stream_id"})
)

// StreamStarted marks a stream as actively mapped.
func StreamStarted() {
	mapperStreamsActive.Inc()
}

// StreamStopped removes a stream from the active gauge and drops all of its
// per-stream series.
func StreamStopped(streamID string) {
	mapperStreamsActive.Dec()

	labels := prometheus.Labels{"stream_id": streamID}
	mapperTimestampsTotal.DeletePartialMatch(labels)
	mapperWrapsTotal.DeletePartialMatch(labels)
	mapperDiscontinuitiesTotal.DeletePartialMatch(labels)
	mapperErrorsTotal.DeletePartialMatch(labels)
	mapperSenderReportsTotal.DeletePartialMatch(labels)
	mapperFrameCount.DeletePartialMatch(labels)
	mapperResyncDriftFrames.DeletePartialMatch(labels)
}

// RecordTimestamp records a mapped timestamp and the resulting frame count.
func RecordTimestamp(streamID string, frameCount int64) {
	mapperTimestampsTotal.WithLabelValues(streamID).Inc()
	mapperFrameCount.WithLabelValues(streamID).Set(float64(frameCount))
}

// IncrementWrap increments the clock wraparound counter
func IncrementWrap(streamID string) {
	mapperWrapsTotal.WithLabelValues(streamID).Inc()
}

// IncrementDiscontinuity increments the discontinuity counter
func IncrementDiscontinuity(streamID string) {
	mapperDiscontinuitiesTotal.WithLabelValues(streamID).Inc()
}

// IncrementError increments the error counter for a stream
func IncrementError(streamID, errorType string) {
	mapperErrorsTotal.WithLabelValues(streamID, errorType).Inc()
}

// RecordSenderReport counts a sender report and observes how far the
// stream had drifted from it.
func RecordSenderReport(streamID string, driftFrames int64) {
	if driftFrames < 0 {
		driftFrames = -driftFrames
	}
	mapperSenderReportsTotal.WithLabelValues(streamID).Inc()
	mapperResyncDriftFrames.WithLabelValues(streamID).Observe(float64(driftFrames))
}
