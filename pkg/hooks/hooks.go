package hooks

import (
	"fmt"
	"os"

	"github.com/algovest/staking-deployer/pkg/common"
	"github.com/algovest/staking-deployer/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// namespace is the telemetry event name
const namespace = "StakingDeploy"

type ActionChain struct {
	Processors []func(action cli.ActionFunc) cli.ActionFunc
}

func NewActionChain() *ActionChain {
	return &ActionChain{
		Processors: make([]func(action cli.ActionFunc) cli.ActionFunc, 0),
	}
}

// Use appends a processor. The first processor added is the outermost.
func (ac *ActionChain) Use(processor func(action cli.ActionFunc) cli.ActionFunc) {
	ac.Processors = append(ac.Processors, processor)
}

func (ac *ActionChain) Wrap(action cli.ActionFunc) cli.ActionFunc {
	for i := len(ac.Processors) - 1; i >= 0; i-- {
		action = ac.Processors[i](action)
	}
	return action
}

// ApplyMiddleware wraps every action in commands and their subcommands
func ApplyMiddleware(commands []*cli.Command, chain *ActionChain) {
	for _, cmd := range commands {
		if cmd.Action != nil {
			cmd.Action = chain.Wrap(cmd.Action)
		}
		if len(cmd.Subcommands) > 0 {
			ApplyMiddleware(cmd.Subcommands, chain)
		}
	}
}

func getFlagValue(ctx *cli.Context, name string) interface{} {
	if !ctx.IsSet(name) {
		return nil
	}

	if ctx.Bool(name) {
		return ctx.Bool(name)
	}
	if ctx.String(name) != "" {
		return ctx.String(name)
	}
	if ctx.Int(name) != 0 {
		return ctx.Int(name)
	}
	return nil
}

func collectFlagValues(ctx *cli.Context) map[string]interface{} {
	flags := make(map[string]interface{})

	var all []cli.Flag
	if ctx.App != nil {
		all = append(all, ctx.App.Flags...)
	}
	if ctx.Command != nil {
		all = append(all, ctx.Command.Flags...)
	}

	for _, flag := range all {
		name := flag.Names()[0]
		if !ctx.IsSet(name) {
			continue
		}
		flags[name] = getFlagValue(ctx, name)
	}
	return flags
}

// telemetryEnabled resolves the run's preference: the per-run flags win over config.yaml
// (itself overridable by STAKINGDEPLOY_TELEMETRY)
func telemetryEnabled(ctx *cli.Context) bool {
	if common.FlagBool(ctx, "disable-telemetry") {
		return false
	}
	if common.FlagBool(ctx, "enable-telemetry") {
		return true
	}
	cfg, err := common.ConfigFromContext(ctx.Context)
	if err != nil {
		return false
	}
	return cfg.Config.Project.TelemetryEnabled
}

func setupTelemetry(ctx *cli.Context) telemetry.Client {
	logger := common.LoggerFromContext(ctx.Context)

	if !telemetryEnabled(ctx) {
		return telemetry.NewNoopClient()
	}

	appEnv, ok := common.AppEnvironmentFromContext(ctx.Context)
	if !ok {
		return telemetry.NewNoopClient()
	}

	phClient, err := telemetry.NewPostHogClient(appEnv, namespace)
	if err != nil {
		logger.Debug("Failed to create telemetry client: %v", err)
		return telemetry.NewNoopClient()
	}
	if phClient == nil {
		return telemetry.NewNoopClient()
	}
	return phClient
}

// WithMetricEmission runs the action and then emits its Count, Success/Failure and duration
// metrics. A client already in the context is used as is.
func WithMetricEmission(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		err := action(ctx)

		if _, ok := telemetry.ClientFromContext(ctx.Context); !ok {
			ctx.Context = telemetry.ContextWithClient(ctx.Context, setupTelemetry(ctx))
		}
		emitTelemetryMetrics(ctx, err)

		return err
	}
}

func emitTelemetryMetrics(ctx *cli.Context, actionError error) {
	metrics, err := telemetry.MetricsFromContext(ctx.Context)
	if err != nil {
		return
	}
	if ctx.Command != nil {
		metrics.Properties["command"] = ctx.Command.HelpName
	}
	for k, v := range collectFlagValues(ctx) {
		metrics.Properties[k] = fmt.Sprintf("%v", v)
	}

	result := "Success"
	dimensions := map[string]string{}
	if actionError != nil {
		result = "Failure"
		dimensions["error"] = actionError.Error()
	}
	metrics.AddMetricWithDimensions(result, 1, dimensions)
	metrics.AddMetric("DurationMilliseconds", float64(metrics.Elapsed().Milliseconds()))

	client, ok := telemetry.ClientFromContext(ctx.Context)
	if !ok {
		return
	}
	defer client.Close()

	logger := common.LoggerFromContext(ctx.Context)
	for _, metric := range metrics.Metrics {
		for k, v := range metrics.Properties {
			metric.Dimensions[k] = v
		}
		if err := client.AddMetric(ctx.Context, metric); err != nil {
			logger.Debug("failed to add metric %s: %v", metric.Name, err)
		}
	}
}

// LoadEnvFile loads .env from the working directory into the process environment. Variables
// already set are kept. A missing file is not an error.
func LoadEnvFile(_ *cli.Context) error {
	return loadEnvFile(common.EnvFile)
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// WithCommandMetricsContext attaches a fresh metrics context with the run's environment
// properties and counts the invocation
func WithCommandMetricsContext(ctx *cli.Context) error {
	metrics := telemetry.NewMetricsContext()
	ctx.Context = telemetry.WithMetricsContext(ctx.Context, metrics)

	if appEnv, ok := common.AppEnvironmentFromContext(ctx.Context); ok {
		metrics.Properties["cli_version"] = appEnv.CLIVersion
		metrics.Properties["os"] = appEnv.OS
		metrics.Properties["arch"] = appEnv.Arch
		metrics.Properties["project_uuid"] = appEnv.ProjectUUID
		metrics.Properties["run_id"] = appEnv.RunID
	}

	for k, v := range collectFlagValues(ctx) {
		metrics.Properties[k] = fmt.Sprintf("%v", v)
	}

	metrics.AddMetric("Count", 1)
	return nil
}

// WithProjectContext prepares the command's context before the action runs: logger, config
// loaded from --config, the run's AppEnvironment and a metrics context. It runs at command
// level so global flags given after the command name are honoured.
func WithProjectContext(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if err := LoadProjectContext(ctx); err != nil {
			return err
		}
		return action(ctx)
	}
}

func LoadProjectContext(ctx *cli.Context) error {
	logger, tracker := common.GetLoggerFromCLIContext(ctx)
	ctx.Context = common.WithLogger(ctx.Context, logger)
	ctx.Context = common.WithProgressTracker(ctx.Context, tracker)

	cfg, err := common.LoadConfig(common.FlagString(ctx, "config"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	ctx.Context = common.WithConfig(ctx.Context, cfg)
	common.WithAppEnvironment(ctx, cfg)

	return WithCommandMetricsContext(ctx)
}
