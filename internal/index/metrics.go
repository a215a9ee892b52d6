// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tulz/tulz-content/pkg/types"
)

// buildMetrics describes one build for a node-exporter textfile collector.
type buildMetrics struct {
	registry      *prometheus.Registry
	records       *prometheus.GaugeVec
	skipped       prometheus.Gauge
	artifactBytes prometheus.Gauge
	duration      prometheus.Gauge
	lastSuccess   prometheus.Gauge
}

func newBuildMetrics() *buildMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &buildMetrics{
		registry: registry,
		records: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tulz_content_index_records",
				Help: "Number of records in the search index by kind",
			},
			[]string{"kind"},
		),
		skipped: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tulz_content_index_skipped_tools",
			Help: "Number of catalog records skipped during the last build",
		}),
		artifactBytes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tulz_content_index_artifact_bytes",
			Help: "Size of the search index artifact in bytes",
		}),
		duration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tulz_content_index_build_duration_seconds",
			Help: "Duration of the last index build in seconds",
		}),
		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tulz_content_index_last_success_timestamp_seconds",
			Help: "Unix time of the last successful index build",
		}),
	}
}

func (m *buildMetrics) observe(s Summary, finished time.Time) {
	m.records.WithLabelValues(string(types.KindContent)).Set(float64(s.Content))
	m.records.WithLabelValues(string(types.KindTool)).Set(float64(s.Tools))
	m.skipped.Set(float64(len(s.Skipped)))
	m.artifactBytes.Set(float64(s.Bytes))
	m.duration.Set(s.Duration.Seconds())
	m.lastSuccess.Set(float64(finished.Unix()))
}

// write stores the metrics at path in Prometheus text format.
func (m *buildMetrics) write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics %s: %w", path, err)
	}
	return nil
}
