package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewLogger creates a default "sugared" logger based on dev toggle. If
// logPath is set, output is written there in addition to stderr.
func NewLogger(logPath string, dev bool) (sugar *zap.SugaredLogger, err error) {
	var config zap.Config
	if dev {
		// Log:         DebugLevel
		// Encoder:     console
		// Errors:      stderr
		// Sampling:    no
		// Stacktraces: WarningLevel
		// Colors:      capitals
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// Log:         InfoLevel
		// Encoder:     json
		// Errors:      stderr
		// Sampling:    yes
		// Stacktraces: ErrorLevel
		config = zap.NewProductionConfig()
	}
	if logPath != "" {
		config.OutputPaths = append(config.OutputPaths, logPath)
	}

	logger, err := config.Build()
	if err != nil {
		return
	}

	return logger.Sugar(), nil
}

// NewProcessLogger scopes a logger to a named process
func NewProcessLogger(l *zap.SugaredLogger, process string, fields ...interface{}) *zap.SugaredLogger {
	return l.Named(process).With(fields...)
}

// NewTestLogger bootstraps a test logger that allows interrogation of output
func NewTestLogger() (sugar *zap.SugaredLogger, out *observer.ObservedLogs) {
	observer, out := observer.New(zap.DebugLevel)
	return zap.New(observer).Sugar(), out
}
