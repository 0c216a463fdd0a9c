package commands

import (
	"fmt"

	"github.com/algovest/staking-deployer/pkg/common"
	"github.com/algovest/staking-deployer/pkg/migrations"

	"github.com/urfave/cli/v2"
)

// ParamsCommand prints the constructor arguments a migration would deploy with
var ParamsCommand = &cli.Command{
	Name:   "params",
	Usage:  "Show the resolved deployment parameters of a migration",
	Flags:  append([]cli.Flag{migrationFlag}, common.GlobalFlags...),
	Action: ParamsRun,
}

func ParamsRun(cCtx *cli.Context) error {
	logger := common.LoggerFromContext(cCtx.Context)

	m, err := migrations.Lookup(cCtx.String("migration"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	p := m.Params(migrations.ProcessEnvironment())
	if p.TokenAddress == "" {
		logger.Warn("%s resolves to an empty token address", m.Token)
	}

	w := cCtx.App.Writer
	fmt.Fprintf(w, "Migration: %s (step %d)\n", m.Name, m.Number)
	fmt.Fprintf(w, "Artifact:  %s\n", m.Artifact)
	fmt.Fprintf(w, "Token:     %s (%s)\n", p.TokenAddress, m.Token)
	fmt.Fprintf(w, "Start:     %d (%s)\n", p.StartTimestamp, m.Start)
	fmt.Fprintf(w, "Duration:  %d\n", p.DurationSeconds)
	return nil
}
