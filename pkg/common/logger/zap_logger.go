package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type ZapLogger struct {
	log *zap.SugaredLogger
}

func NewZapLogger(verbose bool) *ZapLogger {
	var logger *zap.Logger

	if verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}

	return NewZapLoggerFrom(logger)
}

// NewZapLoggerFrom wraps an existing zap logger, eg. one built with zaptest or an observer core
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{log: logger.Sugar()}
}

// With returns a logger that attaches the given key/value pairs to every entry
func (l *ZapLogger) With(keysAndValues ...any) *ZapLogger {
	return &ZapLogger{log: l.log.With(keysAndValues...)}
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.log.Sync()
}

func (l *ZapLogger) Title(msg string, args ...any) {
	formatted := fmt.Sprintf("\n"+msg+"\n", args...)
	for _, line := range strings.Split(formatted, "\n") {
		l.log.Infof("%s", line)
	}
}

func (l *ZapLogger) Info(msg string, args ...any) {
	if msg = strings.Trim(msg, "\n"); msg != "" {
		l.log.Infof(msg, args...)
	}
}

func (l *ZapLogger) Warn(msg string, args ...any) {
	if msg = strings.Trim(msg, "\n"); msg != "" {
		l.log.Warnf(msg, args...)
	}
}

func (l *ZapLogger) Error(msg string, args ...any) {
	if msg = strings.Trim(msg, "\n"); msg != "" {
		l.log.Errorf(msg, args...)
	}
}

func (l *ZapLogger) Debug(msg string, args ...any) {
	if msg = strings.Trim(msg, "\n"); msg != "" {
		l.log.Debugf(msg, args...)
	}
}
