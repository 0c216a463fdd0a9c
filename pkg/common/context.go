package common

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/algovest/staking-deployer/internal/version"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// WithShutdown creates a new context that will be cancelled on SIGTERM/SIGINT
func WithShutdown(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		signal.Stop(sigChan)
		cancel()
		_, _ = fmt.Fprintln(os.Stderr, "caught interrupt, shutting down gracefully.")
	}()

	return ctx
}

type appEnvironmentContextKey struct{}

// AppEnvironment describes the running binary, attached to telemetry
type AppEnvironment struct {
	CLIVersion  string
	OS          string
	Arch        string
	ProjectUUID string
	RunID       string
}

func NewAppEnvironment(os, arch, projectUUID string) *AppEnvironment {
	return &AppEnvironment{
		CLIVersion:  version.GetVersion(),
		OS:          os,
		Arch:        arch,
		ProjectUUID: projectUUID,
		RunID:       uuid.New().String(),
	}
}

// WithAppEnvironment attaches the AppEnvironment for this run. The project uuid comes from
// config.yaml when set, otherwise a fresh one is generated.
func WithAppEnvironment(cCtx *cli.Context, cfg *Config) {
	id := ""
	if cfg != nil {
		id = cfg.Config.Project.ProjectUUID
	}
	if id == "" {
		id = uuid.New().String()
	}
	cCtx.Context = withAppEnvironment(cCtx.Context, NewAppEnvironment(runtime.GOOS, runtime.GOARCH, id))
}

func withAppEnvironment(ctx context.Context, appEnvironment *AppEnvironment) context.Context {
	return context.WithValue(ctx, appEnvironmentContextKey{}, appEnvironment)
}

func AppEnvironmentFromContext(ctx context.Context) (*AppEnvironment, bool) {
	env, ok := ctx.Value(appEnvironmentContextKey{}).(*AppEnvironment)
	return env, ok
}
