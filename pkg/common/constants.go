package common

// Project layout
const (
	// DefaultConfigPath is where the project config is read from, relative to the working directory
	DefaultConfigPath = "config/config.yaml"

	// DefaultArtifactsDir holds compiled contract artifacts (<Name>.json)
	DefaultArtifactsDir = "build/contracts"

	// DefaultOutputsDir receives {name,address,abi} files for deployed contracts
	DefaultOutputsDir = "contracts/outputs"

	// DefaultLedgerPath records completed migrations
	DefaultLedgerPath = "deployments/ledger.yaml"

	// EnvFile is loaded into the process environment before any command runs
	EnvFile = ".env"
)

// Environment overrides for config.yaml
const (
	EnvRPCURL             = "RPC_URL"
	EnvChainID            = "CHAIN_ID"
	EnvDeployerPrivateKey = "DEPLOYER_PRIVATE_KEY"
	EnvArtifactsDir       = "ARTIFACTS_DIR"
	EnvTelemetry          = "STAKINGDEPLOY_TELEMETRY"
)
