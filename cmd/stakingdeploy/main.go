package main

import (
	"context"
	"fmt"
	"os"

	"github.com/algovest/staking-deployer/internal/version"
	"github.com/algovest/staking-deployer/pkg/commands"
	"github.com/algovest/staking-deployer/pkg/common"
	"github.com/algovest/staking-deployer/pkg/hooks"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	app := &cli.App{
		Name:                   "stakingdeploy",
		Usage:                  "Deploy the AlgoVest staking contract through numbered migrations",
		Version:                version.GetVersion(),
		Flags:                  common.GlobalFlags,
		Commands:               commands.All(),
		UseShortOptionHandling: true,
		// .env is loaded first so its variables feed the config overrides
		Before: hooks.LoadEnvFile,
	}

	actionChain := hooks.NewActionChain()
	actionChain.Use(hooks.WithProjectContext)
	actionChain.Use(hooks.WithMetricEmission)
	hooks.ApplyMiddleware(app.Commands, actionChain)

	return app
}

func main() {
	ctx := common.WithShutdown(context.Background())

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
