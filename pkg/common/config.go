package common

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/algovest/staking-deployer/config"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string      `json:"version" yaml:"version"`
	Config  ConfigBlock `json:"config" yaml:"config"`
}

type ConfigBlock struct {
	Project ProjectConfig `json:"project" yaml:"project"`
	Network NetworkConfig `json:"network" yaml:"network"`
	Paths   PathsConfig   `json:"paths" yaml:"paths"`
}

type ProjectConfig struct {
	Name             string `json:"name" yaml:"name"`
	ProjectUUID      string `json:"project_uuid,omitempty" yaml:"project_uuid,omitempty"`
	TelemetryEnabled bool   `json:"telemetry_enabled" yaml:"telemetry_enabled"`
}

// NetworkConfig is the single chain migrations are deployed to
type NetworkConfig struct {
	RPCURL             string `json:"rpc_url" yaml:"rpc_url"`
	ChainID            int64  `json:"chain_id" yaml:"chain_id"`
	DeployerPrivateKey string `json:"deployer_private_key" yaml:"deployer_private_key"`
}

type PathsConfig struct {
	Artifacts string `json:"artifacts" yaml:"artifacts"`
	Outputs   string `json:"outputs" yaml:"outputs"`
	Ledger    string `json:"ledger" yaml:"ledger"`
}

type configContextKey struct{}

// LoadConfig reads the config at path, falling back to the embedded default when the file does
// not exist, then applies environment overrides from the process environment.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		data = config.DefaultConfigYaml
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.ApplyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes config yaml and fills unset paths with defaults
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = config.LatestVersion
	}
	if cfg.Config.Paths.Artifacts == "" {
		cfg.Config.Paths.Artifacts = DefaultArtifactsDir
	}
	if cfg.Config.Paths.Outputs == "" {
		cfg.Config.Paths.Outputs = DefaultOutputsDir
	}
	if cfg.Config.Paths.Ledger == "" {
		cfg.Config.Paths.Ledger = DefaultLedgerPath
	}
	return &cfg, nil
}

// ApplyEnvOverrides lets RPC_URL, CHAIN_ID, DEPLOYER_PRIVATE_KEY, ARTIFACTS_DIR and
// STAKINGDEPLOY_TELEMETRY take precedence over the file.
func (c *Config) ApplyEnvOverrides(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRPCURL); ok && v != "" {
		c.Config.Network.RPCURL = v
	}
	if v, ok := lookup(EnvChainID); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvChainID, v, err)
		}
		c.Config.Network.ChainID = id
	}
	if v, ok := lookup(EnvDeployerPrivateKey); ok && v != "" {
		c.Config.Network.DeployerPrivateKey = v
	}
	if v, ok := lookup(EnvArtifactsDir); ok && v != "" {
		c.Config.Paths.Artifacts = v
	}
	if v, ok := lookup(EnvTelemetry); ok && v != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTelemetry, v, err)
		}
		c.Config.Project.TelemetryEnabled = enabled
	}
	return nil
}

// WithConfig stores the loaded config in the context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// ConfigFromContext retrieves the config, or the embedded default when none was stored
func ConfigFromContext(ctx context.Context) (*Config, error) {
	if cfg, ok := ctx.Value(configContextKey{}).(*Config); ok {
		return cfg, nil
	}
	return ParseConfig(config.DefaultConfigYaml)
}
