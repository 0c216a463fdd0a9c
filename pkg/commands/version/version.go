package version

import (
	"fmt"

	"github.com/algovest/staking-deployer/internal/version"

	"github.com/urfave/cli/v2"
)

// VersionCommand prints the build version and commit
var VersionCommand = &cli.Command{
	Name:   "version",
	Usage:  "Print the version of stakingdeploy",
	Action: VersionRun,
}

func VersionRun(cCtx *cli.Context) error {
	_, err := fmt.Fprintf(cCtx.App.Writer, "Version: %s\nCommit: %s\n", version.GetVersion(), version.GetCommit())
	return err
}
