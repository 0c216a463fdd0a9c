package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/common"
	"github.com/algovest/staking-deployer/pkg/common/iface"
	"github.com/algovest/staking-deployer/pkg/deployer"
	"github.com/algovest/staking-deployer/pkg/migrations"

	"github.com/urfave/cli/v2"
)

// newDeployer connects to the configured network. Replaced in tests.
var newDeployer = func(ctx context.Context, network common.NetworkConfig, logger iface.Logger) (deployer.Deployer, func(), error) {
	d, closeFn, err := deployer.Dial(ctx, network.RPCURL, network.DeployerPrivateKey, network.ChainID, logger)
	if err != nil {
		return nil, nil, err
	}
	return d, closeFn, nil
}

var migrationFlag = &cli.StringFlag{
	Name:    "migration",
	Aliases: []string{"m"},
	Usage:   "Name of the migration to run",
	Value:   migrations.DefaultMigration,
}

// MigrateCommand deploys the staking contract through one migration
var MigrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Run a deployment migration against the configured network",
	Flags: append([]cli.Flag{
		migrationFlag,
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Run the migration even if the ledger records it as applied",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Resolve and print constructor arguments without deploying",
		},
	}, common.GlobalFlags...),
	Action: MigrateRun,
}

func MigrateRun(cCtx *cli.Context) error {
	logger := common.LoggerFromContext(cCtx.Context)
	tracker := common.ProgressTrackerFromContext(cCtx.Context)

	cfg, err := common.ConfigFromContext(cCtx.Context)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m, err := migrations.Lookup(cCtx.String("migration"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	dryRun := cCtx.Bool("dry-run")
	var d deployer.Deployer
	if dryRun {
		d = deployer.NewDryRunDeployer(logger)
	} else {
		network := cfg.Config.Network
		if network.DeployerPrivateKey == "" {
			return cli.Exit(fmt.Sprintf("no deployer key: set %s or config.network.deployer_private_key", common.EnvDeployerPrivateKey), 1)
		}
		logger.Debug("Connecting to %s", network.RPCURL)

		var closeFn func()
		d, closeFn, err = newDeployer(cCtx.Context, network, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", network.RPCURL, err)
		}
		defer closeFn()
	}

	runner := &migrations.Runner{
		Invoker:    migrations.NewInvoker(artifacts.NewRegistry(cfg.Config.Paths.Artifacts), d, migrations.ProcessEnvironment()),
		LedgerPath: cfg.Config.Paths.Ledger,
		OutputsDir: cfg.Config.Paths.Outputs,
		Reset:      cCtx.Bool("reset"),
		DryRun:     dryRun,
		Logger:     logger,
		Progress:   tracker,
	}

	_, err = runner.Run(cCtx.Context, m)
	tracker.Clear()
	if errors.Is(err, migrations.ErrAlreadyApplied) {
		logger.Info("Nothing to migrate. Use --reset to deploy again.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", m.Name, err)
	}

	logger.Info("Migration %s finished", m.Name)
	return nil
}
