package testutils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/algovest/staking-deployer/pkg/common"
	"github.com/algovest/staking-deployer/pkg/common/logger"

	"github.com/urfave/cli/v2"
)

// StakingContractName is the artifact name used by fixtures
const StakingContractName = "AlgoVestStaking"

// StakingABI mirrors the staking contract constructor (token, start, duration)
const StakingABI = `[
	{
		"type": "constructor",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "_stakingToken", "type": "address", "internalType": "contract IERC20"},
			{"name": "_startTime", "type": "uint256", "internalType": "uint256"},
			{"name": "_duration", "type": "uint256", "internalType": "uint256"}
		]
	},
	{
		"type": "function",
		"name": "duration",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256", "internalType": "uint256"}]
	}
]`

// StakingBytecode is init code that ignores its constructor args and deploys the one byte
// runtime 0x00: CODECOPY(0, 12, 1) RETURN(0, 1) followed by the runtime.
const StakingBytecode = "0x6001600c60003960016000f300"

// StakingArtifactJSON is a Truffle style artifact built from StakingABI and StakingBytecode
func StakingArtifactJSON() []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"contractName": "` + StakingContractName + `", "abi": `)
	buf.WriteString(StakingABI)
	buf.WriteString(`, "bytecode": "` + StakingBytecode + `"}`)
	return buf.Bytes()
}

// WriteStakingArtifact writes the staking artifact into dir and returns dir
func WriteStakingArtifact(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, StakingContractName+".json"), StakingArtifactJSON(), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// TestConfig returns a config rooted in dir with artifacts, outputs and ledger inside it
func TestConfig(dir string) *common.Config {
	return &common.Config{
		Version: "0.0.1",
		Config: common.ConfigBlock{
			Project: common.ProjectConfig{Name: "staking-test"},
			Network: common.NetworkConfig{
				RPCURL:  "http://localhost:8545",
				ChainID: 1337,
			},
			Paths: common.PathsConfig{
				Artifacts: filepath.Join(dir, "build", "contracts"),
				Outputs:   filepath.Join(dir, "contracts", "outputs"),
				Ledger:    filepath.Join(dir, "deployments", "ledger.yaml"),
			},
		},
	}
}

// WithTestConfigAndNoopLogger installs cfg and a buffering logger on the command, returning the logger
func WithTestConfigAndNoopLogger(cmd *cli.Command, cfg *common.Config) (*cli.Command, *logger.NoopLogger) {
	noopLogger := logger.NewNoopLogger()
	noopProgressTracker := logger.NewNoopProgressTracker()
	cmd.Before = func(cCtx *cli.Context) error {
		ctx := common.WithConfig(cCtx.Context, cfg)
		ctx = common.WithLogger(ctx, noopLogger)
		ctx = common.WithProgressTracker(ctx, noopProgressTracker)
		cCtx.Context = ctx
		return nil
	}
	return cmd, noopLogger
}

// CreateTestAppWithNoopLoggerAndAccess creates a CLI app with a buffering logger and returns both
func CreateTestAppWithNoopLoggerAndAccess(name string, flags []cli.Flag, action cli.ActionFunc) (*cli.App, *logger.NoopLogger) {
	noopLogger := logger.NewNoopLogger()
	noopProgressTracker := logger.NewNoopProgressTracker()
	app := &cli.App{
		Name:  name,
		Flags: flags,
		Before: func(cCtx *cli.Context) error {
			ctx := common.WithLogger(cCtx.Context, noopLogger)
			ctx = common.WithProgressTracker(ctx, noopProgressTracker)
			cCtx.Context = ctx
			return nil
		},
		Action: action,
	}
	return app, noopLogger
}

// NoopContext returns a context carrying a buffering logger and a no-op tracker
func NoopContext() (context.Context, *logger.NoopLogger) {
	noopLogger := logger.NewNoopLogger()
	ctx := common.WithLogger(context.Background(), noopLogger)
	ctx = common.WithProgressTracker(ctx, logger.NewNoopProgressTracker())
	return ctx, noopLogger
}

func FindSubcommandByName(name string, commands []*cli.Command) *cli.Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

// CaptureOutput captures stdout and stderr written while fn runs
func CaptureOutput(fn func()) (stdout string, stderr string) {
	origStdout := os.Stdout
	origStderr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(rOut)
		outC <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(rErr)
		errC <- buf.String()
	}()

	fn()

	wOut.Close()
	wErr.Close()
	os.Stdout = origStdout
	os.Stderr = origStderr

	return <-outC, <-errC
}
