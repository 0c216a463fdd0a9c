package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/common"
	"github.com/algovest/staking-deployer/pkg/common/iface"
	"github.com/algovest/staking-deployer/pkg/common/logger"
	"github.com/algovest/staking-deployer/pkg/deployer"
	"github.com/algovest/staking-deployer/pkg/migrations"
	"github.com/algovest/staking-deployer/pkg/testutils"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testToken = "0x00000000000000000000000000000000000000Ab"

type recordingDeployer struct {
	args [][]interface{}
}

func (r *recordingDeployer) Deploy(_ context.Context, artifact *artifacts.Artifact, args ...interface{}) (*deployer.Deployment, error) {
	r.args = append(r.args, args)
	return &deployer.Deployment{
		ContractName: artifact.ContractName,
		Address:      gethcommon.HexToAddress("0x00000000000000000000000000000000000000c0"),
		TxHash:       gethcommon.HexToHash("0xfeed"),
		BlockNumber:  1,
	}, nil
}

// stubDeployer swaps newDeployer for the duration of the test
func stubDeployer(t *testing.T) *recordingDeployer {
	rec := &recordingDeployer{}
	orig := newDeployer
	newDeployer = func(context.Context, common.NetworkConfig, iface.Logger) (deployer.Deployer, func(), error) {
		return rec, func() {}, nil
	}
	t.Cleanup(func() { newDeployer = orig })
	return rec
}

func runApp(t *testing.T, cmd *cli.Command, cfg *common.Config, args ...string) (string, *logger.NoopLogger, error) {
	t.Helper()
	cmd, noopLogger := testutils.WithTestConfigAndNoopLogger(cmd, cfg)
	out := &bytes.Buffer{}
	app := &cli.App{
		Name:           "stakingdeploy",
		Writer:         out,
		Commands:       []*cli.Command{cmd},
		ExitErrHandler: func(*cli.Context, error) {},
	}
	err := app.Run(append([]string{"stakingdeploy"}, args...))
	return out.String(), noopLogger, err
}

func testConfigWithKey(t *testing.T) *common.Config {
	dir := t.TempDir()
	cfg := testutils.TestConfig(dir)
	cfg.Config.Network.DeployerPrivateKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
	testutils.WriteStakingArtifact(t, cfg.Config.Paths.Artifacts)
	return cfg
}

func TestMigrateCommand_DeploysAndRecords(t *testing.T) {
	t.Setenv(migrations.EnvAVSAddress, testToken)
	rec := stubDeployer(t)
	cfg := testConfigWithKey(t)

	_, log, err := runApp(t, MigrateCommand, cfg, "migrate")
	require.NoError(t, err)

	require.Len(t, rec.args, 1)
	assert.Equal(t, []interface{}{testToken, int64(1613842502), int64(86400)}, rec.args[0])
	assert.True(t, log.Contains("Migration 1_initial_migration finished"))

	ledger, err := migrations.LoadLedger(cfg.Config.Paths.Ledger)
	require.NoError(t, err)
	_, done := ledger.Completed(1)
	assert.True(t, done)

	_, err = os.Stat(filepath.Join(cfg.Config.Paths.Outputs, "AlgoVestStaking.json"))
	assert.NoError(t, err)

	// A second run is skipped
	_, log, err = runApp(t, MigrateCommand, cfg, "migrate", "--migration", "1_initial_migration_dynamic")
	require.NoError(t, err)
	assert.Len(t, rec.args, 1)
	assert.True(t, log.Contains("Nothing to migrate"))
}

func TestMigrateCommand_DryRun(t *testing.T) {
	t.Setenv(migrations.EnvAVSAddress, testToken)
	rec := stubDeployer(t)
	cfg := testutils.TestConfig(t.TempDir())
	testutils.WriteStakingArtifact(t, cfg.Config.Paths.Artifacts)

	_, log, err := runApp(t, MigrateCommand, cfg, "migrate", "--dry-run")
	require.NoError(t, err)

	assert.Empty(t, rec.args)
	assert.True(t, log.Contains("[dry-run] deploy AlgoVestStaking"))
	assert.True(t, log.Contains("_startTime = 1613842502"))

	_, statErr := os.Stat(cfg.Config.Paths.Ledger)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMigrateCommand_RequiresKey(t *testing.T) {
	stubDeployer(t)
	cfg := testutils.TestConfig(t.TempDir())

	_, _, err := runApp(t, MigrateCommand, cfg, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), common.EnvDeployerPrivateKey)
}

func TestMigrateCommand_UnknownMigration(t *testing.T) {
	stubDeployer(t)
	_, _, err := runApp(t, MigrateCommand, testConfigWithKey(t), "migrate", "--migration", "2_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration")
}

func TestMigrateCommand_MissingArtifact(t *testing.T) {
	rec := stubDeployer(t)
	cfg := testutils.TestConfig(t.TempDir())
	cfg.Config.Network.DeployerPrivateKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

	_, _, err := runApp(t, MigrateCommand, cfg, "migrate")
	require.Error(t, err)
	assert.ErrorIs(t, err, artifacts.ErrArtifactNotFound)
	assert.Empty(t, rec.args)
}

func TestParamsCommand(t *testing.T) {
	t.Setenv(migrations.EnvAVSAddress, testToken)
	out, _, err := runApp(t, ParamsCommand, testutils.TestConfig(t.TempDir()), "params")
	require.NoError(t, err)

	assert.Contains(t, out, "Migration: 1_initial_migration (step 1)")
	assert.Contains(t, out, "Token:     "+testToken+" ($AVS_ADDR)")
	assert.Contains(t, out, "Start:     1613842502 (2021-02-20T17:35:02Z)")
	assert.Contains(t, out, "Duration:  86400")
}

func TestParamsCommand_WarnsOnEmptyToken(t *testing.T) {
	t.Setenv(migrations.EnvTokenRinkebyAddress, "")
	out, log, err := runApp(t, ParamsCommand, testutils.TestConfig(t.TempDir()), "params", "-m", "1_initial_migration_dynamic")
	require.NoError(t, err)

	assert.Contains(t, out, "time of deployment")
	assert.True(t, log.ContainsLevel("WARN", "$TOKEN_RINKEBY_ADDR resolves to an empty token address"))
}

func TestArtifactsCommand(t *testing.T) {
	cfg := testutils.TestConfig(t.TempDir())
	testutils.WriteStakingArtifact(t, cfg.Config.Paths.Artifacts)

	out, _, err := runApp(t, ArtifactsCommand, cfg, "artifacts")
	require.NoError(t, err)
	assert.Equal(t, "AlgoVestStaking\n", out)
}

func TestEnvCommand(t *testing.T) {
	out, _, err := runApp(t, EnvCommand, testutils.TestConfig(t.TempDir()), "env")
	require.NoError(t, err)
	assert.Contains(t, out, "AVS_ADDR=")
	assert.Contains(t, out, "TOKEN_RINKEBY_ADDR=")
}
