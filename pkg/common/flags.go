package common

import "github.com/urfave/cli/v2"

// GlobalFlags defines flags that apply to the entire application (global flags).
// Commands append them too, so they may appear before or after the command name.
// -v is left to the app's --version flag.
var GlobalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable verbose logging",
	},
	&cli.StringFlag{
		Name:  "config",
		Usage: "Path to the project config",
		Value: DefaultConfigPath,
	},
	&cli.BoolFlag{
		Name:  "enable-telemetry",
		Usage: "Enable telemetry collection for this run",
	},
	&cli.BoolFlag{
		Name:  "disable-telemetry",
		Usage: "Disable telemetry collection for this run",
	},
}

// FlagString returns name from the innermost context in the lineage that set it, falling
// back to the default of the innermost context that defines it.
func FlagString(cCtx *cli.Context, name string) string {
	for _, c := range cCtx.Lineage() {
		if c.IsSet(name) {
			return c.String(name)
		}
	}
	return cCtx.String(name)
}

// FlagBool is FlagString for boolean flags
func FlagBool(cCtx *cli.Context, name string) bool {
	for _, c := range cCtx.Lineage() {
		if c.IsSet(name) {
			return c.Bool(name)
		}
	}
	return cCtx.Bool(name)
}
