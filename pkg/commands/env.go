package commands

import (
	"fmt"

	"github.com/algovest/staking-deployer/config"

	"github.com/urfave/cli/v2"
)

// EnvCommand prints a template for the .env file
var EnvCommand = &cli.Command{
	Name:  "env",
	Usage: "Print an example .env with every variable migrations read",
	Action: func(cCtx *cli.Context) error {
		_, err := fmt.Fprint(cCtx.App.Writer, config.EnvExample)
		return err
	},
}
