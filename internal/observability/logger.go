// =============================================================================
// ORAE Bridge - Logging
// =============================================================================
//
// Structured JSON logging on zap. Components that only need printf style
// logging take a small interface; PrintfAdapter bridges the two.
//
// =============================================================================

package observability

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogLevel = "info"

// NewLogger constructs a zap logger emitting structured JSON to stdout.
//
// PARAMETERS:
//   - level: debug, info, warn or error. Anything else means info.
//   - debug: Forces debug level and enables stack traces.
func NewLogger(level string, debug bool) (*zap.Logger, error) {
	atomic := zap.NewAtomicLevel()
	if err := atomic.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil || level == "" {
		_ = atomic.UnmarshalText([]byte(defaultLogLevel))
	}
	if debug {
		atomic.SetLevel(zapcore.DebugLevel)
	}

	return zap.Config{
		Level:             atomic,
		Encoding:          "json",
		EncoderConfig:     encoderConfig(),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     false,
		DisableStacktrace: !debug,
	}.Build()
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
	}
}

// =============================================================================
// CONTEXT
// =============================================================================

type loggerKey struct{}

// WithLogger injects the logger into ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the logger from ctx, defaulting to a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.NewNop()
}

// =============================================================================
// PRINTF ADAPTER
// =============================================================================

// PrintfAdapter adapts zap to printf style logging interfaces such as the
// pipeline and mapper loggers.
type PrintfAdapter struct {
	logger *zap.SugaredLogger
}

// NewPrintfAdapter creates a PrintfAdapter backed by logger. A nil logger
// discards everything.
func NewPrintfAdapter(logger *zap.Logger) PrintfAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return PrintfAdapter{logger: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (a PrintfAdapter) Debug(msg string, args ...interface{}) { a.logger.Debugf(msg, args...) }
func (a PrintfAdapter) Info(msg string, args ...interface{})  { a.logger.Infof(msg, args...) }
func (a PrintfAdapter) Warn(msg string, args ...interface{})  { a.logger.Warnf(msg, args...) }
func (a PrintfAdapter) Error(msg string, args ...interface{}) { a.logger.Errorf(msg, args...) }

// NopLogger returns an adapter that discards everything.
func NopLogger() PrintfAdapter {
	return NewPrintfAdapter(zap.NewNop())
}
