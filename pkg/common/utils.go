package common

import (
	"context"
	"os"

	"github.com/algovest/staking-deployer/pkg/common/iface"
	"github.com/algovest/staking-deployer/pkg/common/logger"
	"github.com/algovest/staking-deployer/pkg/common/progress"
	"github.com/urfave/cli/v2"
)

// loggerContextKey is used to store the logger in the context
type loggerContextKey struct{}

// progressTrackerContextKey is used to store the progress tracker in the context
type progressTrackerContextKey struct{}

// GetLoggerFromCLIContext creates a logger based on the --verbose flag
func GetLoggerFromCLIContext(cCtx *cli.Context) (iface.Logger, iface.ProgressTracker) {
	return GetLogger(FlagBool(cCtx, "verbose"))
}

// Get logger for the env we're in
func GetLogger(verbose bool) (iface.Logger, iface.ProgressTracker) {
	var log iface.Logger
	var tracker iface.ProgressTracker

	if progress.IsTTY() {
		log = logger.NewLogger(verbose)
		tracker = progress.NewTTYProgressTracker(10, os.Stdout)
	} else {
		log = logger.NewZapLogger(verbose)
		tracker = progress.NewLogProgressTracker(10, log)
	}

	return log, tracker
}

// WithLogger stores the logger in the context
func WithLogger(ctx context.Context, logger iface.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// WithProgressTracker stores the progress tracker in the context
func WithProgressTracker(ctx context.Context, tracker iface.ProgressTracker) context.Context {
	return context.WithValue(ctx, progressTrackerContextKey{}, tracker)
}

// LoggerFromContext retrieves the logger from the context.
// Falls back to a non-verbose logger.
func LoggerFromContext(ctx context.Context) iface.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(iface.Logger); ok {
		return logger
	}
	log, _ := GetLogger(false)
	return log
}

// ProgressTrackerFromContext retrieves the progress tracker from the context.
// Falls back to a non-verbose tracker.
func ProgressTrackerFromContext(ctx context.Context) iface.ProgressTracker {
	if tracker, ok := ctx.Value(progressTrackerContextKey{}).(iface.ProgressTracker); ok {
		return tracker
	}
	_, tracker := GetLogger(false)
	return tracker
}
