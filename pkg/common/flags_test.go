package common

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runWithGlobalFlags runs args against an app and a command that both declare GlobalFlags
func runWithGlobalFlags(t *testing.T, args ...string) (config string, verbose bool) {
	t.Helper()
	app := &cli.App{
		Name:    "stakingdeploy",
		Version: "test",
		Flags:   GlobalFlags,
		Commands: []*cli.Command{{
			Name:  "artifacts",
			Flags: append([]cli.Flag{}, GlobalFlags...),
			Action: func(cCtx *cli.Context) error {
				config = FlagString(cCtx, "config")
				verbose = FlagBool(cCtx, "verbose")
				return nil
			},
		}},
	}
	require.NoError(t, app.Run(append([]string{"stakingdeploy"}, args...)))
	return config, verbose
}

func TestGlobalFlags_EitherPlacement(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantConfig  string
		wantVerbose bool
	}{
		{name: "defaults", args: []string{"artifacts"}, wantConfig: DefaultConfigPath},
		{name: "before command", args: []string{"--config", "prod.yaml", "--verbose", "artifacts"}, wantConfig: "prod.yaml", wantVerbose: true},
		{name: "after command", args: []string{"artifacts", "--config", "prod.yaml", "--verbose"}, wantConfig: "prod.yaml", wantVerbose: true},
		{name: "command level wins", args: []string{"--config", "app.yaml", "artifacts", "--config", "cmd.yaml"}, wantConfig: "cmd.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, verbose := runWithGlobalFlags(t, tt.args...)
			assert.Equal(t, tt.wantConfig, config)
			assert.Equal(t, tt.wantVerbose, verbose)
		})
	}
}

func TestGlobalFlags_VersionFlagDoesNotClash(t *testing.T) {
	app := &cli.App{Name: "stakingdeploy", Version: "test", Flags: GlobalFlags, Writer: io.Discard}
	assert.NotPanics(t, func() {
		assert.NoError(t, app.Run([]string{"stakingdeploy", "-v"}))
	})
}
