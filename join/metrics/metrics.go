// Package metrics provides Prometheus metrics for join runs
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pipescan/defectjoin/join/trace"
)

// Collector counts match decisions. It satisfies join.RowObserver.
type Collector struct {
	Rows          *prometheus.CounterVec
	UnknownLabels prometheus.Counter
	MatchDelta    prometheus.Histogram
	RunInfo       *prometheus.GaugeVec
}

// NewCollector registers the join metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		Rows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "defectjoin_rows_total",
				Help: "Value rows joined, by match result",
			},
			[]string{"result"},
		),
		UnknownLabels: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "defectjoin_unknown_labels_total",
				Help: "Matched value rows whose defect label is outside the code table",
			},
		),
		MatchDelta: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "defectjoin_match_delta_meters",
				Help:    "Distance between a value row and the defect it matched",
				Buckets: []float64{0.001, 0.005, 0.01, 0.02, 0.03, 0.04, 0.05, 0.1},
			},
		),
		RunInfo: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "defectjoin_run_info",
				Help: "Identifies the run that produced these metrics",
			},
			[]string{"run_id"},
		),
	}
}

// ObserveRow records one match decision.
func (c *Collector) ObserveRow(record trace.MatchRecord) {
	if !record.Matched {
		c.Rows.WithLabelValues("unmatched").Inc()
		return
	}
	c.Rows.WithLabelValues("matched").Inc()
	c.MatchDelta.Observe(record.Delta)
	if !record.KnownLabel {
		c.UnknownLabels.Inc()
	}
}

// SetRun marks the metrics with the id of the current run.
func (c *Collector) SetRun(runID string) {
	c.RunInfo.WithLabelValues(runID).Set(1)
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format read by node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
