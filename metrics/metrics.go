package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type EdgeMetrics struct {
	PlaylistRequestDurationSec *prometheus.SummaryVec
	MetadataRequestDurationSec *prometheus.SummaryVec
	PlaylistMaxAge             prometheus.Histogram
	DescriptorMissing          prometheus.Counter
	LivenessQueryCount         *prometheus.CounterVec
	ObjectFetchCount           *prometheus.CounterVec
}

func NewMetrics() *EdgeMetrics {
	m := &EdgeMetrics{
		PlaylistRequestDurationSec: promauto.NewSummaryVec(prometheus.SummaryOpts{
			Name: "playlist_request_duration_seconds",
			Help: "The latency of requests to the playlist path in seconds broken up by success and status code",
		}, []string{"success", "status_code"}),
		MetadataRequestDurationSec: promauto.NewSummaryVec(prometheus.SummaryOpts{
			Name: "metadata_request_duration_seconds",
			Help: "The latency of requests to the recording metadata path in seconds broken up by success and status code",
		}, []string{"success", "status_code"}),
		PlaylistMaxAge: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "playlist_max_age_seconds",
			Help:    "Cache max-age emitted for playlist responses",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 31536000},
		}),
		DescriptorMissing: promauto.NewCounter(prometheus.CounterOpts{
			Name: "recording_descriptor_missing_count",
			Help: "The number of metadata requests that arrived before the recording descriptor was written",
		}),
		LivenessQueryCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "liveness_query_count",
			Help: "The number of liveness queries issued, broken up by outcome",
		}, []string{"outcome"}),
		ObjectFetchCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "object_fetch_count",
			Help: "The number of object store fetches issued, broken up by outcome",
		}, []string{"outcome"}),
	}

	return m
}
