package telemetry

import "context"

// NoopClient drops every metric. It is used whenever telemetry is disabled.
type NoopClient struct{}

func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (c *NoopClient) AddMetric(context.Context, Metric) error { return nil }

func (c *NoopClient) Close() error { return nil }

// IsNoopClient reports whether telemetry is disabled for client
func IsNoopClient(client Client) bool {
	_, isNoop := client.(*NoopClient)
	return isNoop
}
