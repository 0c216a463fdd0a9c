package telemetry

import (
	"context"
	"os"

	"github.com/algovest/staking-deployer/pkg/common"

	"github.com/posthog/posthog-go"
)

const (
	EnvPostHogKey      = "STAKINGDEPLOY_POSTHOG_KEY"
	EnvPostHogEndpoint = "STAKINGDEPLOY_POSTHOG_ENDPOINT"

	defaultPostHogEndpoint = "https://us.i.posthog.com"
)

// PostHogClient implements the Client interface using PostHog
type PostHogClient struct {
	namespace      string
	client         posthog.Client
	appEnvironment *common.AppEnvironment
}

// NewPostHogClient creates a PostHog client. It returns nil without error when no api key
// is configured.
func NewPostHogClient(environment *common.AppEnvironment, namespace string) (*PostHogClient, error) {
	apiKey := getPostHogAPIKey()
	if apiKey == "" {
		return nil, nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: getPostHogEndpoint()})
	if err != nil {
		return nil, err
	}
	return &PostHogClient{
		namespace:      namespace,
		client:         client,
		appEnvironment: environment,
	}, nil
}

// AddMetric implements the Client interface
func (c *PostHogClient) AddMetric(_ context.Context, metric Metric) error {
	if c == nil || c.client == nil {
		return nil
	}

	props := make(map[string]interface{})
	props["name"] = metric.Name
	props["value"] = metric.Value
	props["run_id"] = c.appEnvironment.RunID

	for k, v := range metric.Dimensions {
		props[k] = v
	}

	return c.client.Enqueue(posthog.Capture{
		DistinctId: c.appEnvironment.ProjectUUID,
		Event:      c.namespace,
		Properties: props,
	})
}

// Close implements the Client interface
func (c *PostHogClient) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	// Telemetry never fails a command
	_ = c.client.Close()
	return nil
}

func getPostHogAPIKey() string {
	if key := os.Getenv(EnvPostHogKey); key != "" {
		return key
	}
	return embeddedTelemetryApiKey
}

func getPostHogEndpoint() string {
	if endpoint := os.Getenv(EnvPostHogEndpoint); endpoint != "" {
		return endpoint
	}
	return defaultPostHogEndpoint
}
