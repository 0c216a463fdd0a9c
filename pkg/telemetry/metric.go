package telemetry

import (
	"context"
	"errors"
	"time"
)

// MetricsContext collects the metrics of one command run
type MetricsContext struct {
	StartTime  time.Time         `json:"start_time"`
	Metrics    []Metric          `json:"metrics"`
	Properties map[string]string `json:"properties"`
}

// Metric is a named value with dimensions
type Metric struct {
	Value      float64           `json:"value"`
	Name       string            `json:"name"`
	Dimensions map[string]string `json:"dimensions"`
}

type metricsContextKey struct{}

func WithMetricsContext(ctx context.Context, metrics *MetricsContext) context.Context {
	return context.WithValue(ctx, metricsContextKey{}, metrics)
}

// MetricsFromContext returns the run's metrics, or an empty context and an error when none
// was attached
func MetricsFromContext(ctx context.Context) (*MetricsContext, error) {
	metrics, ok := ctx.Value(metricsContextKey{}).(*MetricsContext)
	if !ok {
		return &MetricsContext{}, errors.New("no metrics context")
	}
	return metrics, nil
}

func NewMetricsContext() *MetricsContext {
	return &MetricsContext{
		StartTime:  time.Now(),
		Metrics:    make([]Metric, 0),
		Properties: make(map[string]string),
	}
}

func (m *MetricsContext) AddMetric(name string, value float64) {
	m.AddMetricWithDimensions(name, value, make(map[string]string))
}

func (m *MetricsContext) AddMetricWithDimensions(name string, value float64, dimensions map[string]string) {
	m.Metrics = append(m.Metrics, Metric{
		Name:       name,
		Value:      value,
		Dimensions: dimensions,
	})
}

// Elapsed is the time since the run started
func (m *MetricsContext) Elapsed() time.Duration {
	return time.Since(m.StartTime)
}
