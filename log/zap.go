package log

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Logger wraps zap.Logger so callers don't import zap directly.
type Logger struct {
	*zap.Logger
}

type ctxKeyType struct{}

var (
	ctxKey        = ctxKeyType{}
	defaultLogger *Logger
)

func init() {
	defaultLogger = DevLogger()
}

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// ResetDefault replaces the process-wide logger.
func ResetDefault(l *Logger) {
	defaultLogger = l
}

// DevLogger returns a console logger at debug level.
func DevLogger() *Logger {
	zl, _ := zap.NewDevelopment()
	return &Logger{Logger: zl}
}

// ProductionLogger returns a JSON logger at info level.
func ProductionLogger() *Logger {
	zl, _ := zap.NewProduction()
	return &Logger{Logger: zl}
}

// New builds a logger writing to stderr with the given level and format
// ("json" or anything else for console).
func New(level, format string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)
	return &Logger{Logger: zap.New(core)}, nil
}

// NewWithFilter builds a logger like New, additionally applying zapfilter
// rules (e.g. "debug:vbo* info:*") to named loggers.
func NewWithFilter(level, format, rules string) (*Logger, error) {
	base, err := New(level, format)
	if err != nil {
		return nil, err
	}
	if rules == "" {
		return base, nil
	}
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid log filter rules %q: %w", rules, err)
	}
	zl := zap.New(zapfilter.NewFilteringCore(base.Core(), filter))
	return &Logger{Logger: zl}, nil
}

// Named returns a child logger with the given name segment appended.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

// AddToContext stores a logger in the context.
func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey, l)
}

// GetFromContext returns the logger stored in ctx or the default logger.
func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// field helpers so callers don't need to import zap

func String(key, val string) zap.Field          { return zap.String(key, val) }
func Int(key string, val int) zap.Field         { return zap.Int(key, val) }
func Int32(key string, val int32) zap.Field     { return zap.Int32(key, val) }
func Uint32(key string, val uint32) zap.Field   { return zap.Uint32(key, val) }
func Float64(key string, val float64) zap.Field { return zap.Float64(key, val) }
func Float32(key string, val float32) zap.Field { return zap.Float32(key, val) }
func Bool(key string, val bool) zap.Field       { return zap.Bool(key, val) }
func Any(key string, val any) zap.Field         { return zap.Any(key, val) }
func ErrorField(err error) zap.Field            { return zap.Error(err) }

func Duration(key string, val time.Duration) zap.Field {
	return zap.Duration(key, val)
}

func Time(key string, val time.Time) zap.Field {
	return zap.Time(key, val)
}
