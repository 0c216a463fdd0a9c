package commands

import (
	"github.com/algovest/staking-deployer/pkg/commands/version"

	"github.com/urfave/cli/v2"
)

// All returns copies of the top level commands in help order. Each app wraps the actions of
// its own copies with middleware.
func All() []*cli.Command {
	cmds := []*cli.Command{
		MigrateCommand,
		ParamsCommand,
		ArtifactsCommand,
		EnvCommand,
		version.VersionCommand,
	}
	out := make([]*cli.Command, 0, len(cmds))
	for _, cmd := range cmds {
		c := *cmd
		out = append(out, &c)
	}
	return out
}
