package commands

import (
	"fmt"

	"github.com/algovest/staking-deployer/pkg/artifacts"
	"github.com/algovest/staking-deployer/pkg/common"

	"github.com/urfave/cli/v2"
)

// ArtifactsCommand lists the compiled contracts migrations can deploy
var ArtifactsCommand = &cli.Command{
	Name:  "artifacts",
	Usage: "List contract artifacts in the build directory",
	Flags: append([]cli.Flag{}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)
		cfg, err := common.ConfigFromContext(cCtx.Context)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		registry := artifacts.NewRegistry(cfg.Config.Paths.Artifacts)
		names, err := registry.List()
		if err != nil {
			return fmt.Errorf("failed to list artifacts: %w", err)
		}
		if len(names) == 0 {
			logger.Warn("No artifacts found in %s", registry.Dir())
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cCtx.App.Writer, name)
		}
		return nil
	},
}
