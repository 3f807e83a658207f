package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	runIDKey  ctxKey = "run_id"
	sourceKey ctxKey = "source"
)

type Logger struct {
	*zap.SugaredLogger
}

func New(serviceName, env string) (*Logger, error) {
	cfg, withCaller := buildConfig(env)

	z, err := cfg.Build(
		zap.WithCaller(withCaller),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init zap logger: %w", err)
	}

	return &Logger{SugaredLogger: z.Named(serviceName).Sugar()}, nil
}

// NewWithCore wraps an existing core, e.g. zaptest/observer in tests.
func NewWithCore(serviceName string, core zapcore.Core) *Logger {
	return &Logger{SugaredLogger: zap.New(core).Named(serviceName).Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func buildConfig(env string) (zap.Config, bool) {
	var cfg zap.Config
	withCaller := false

	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true

	case "debug":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = false
		withCaller = true

	case "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableStacktrace = true

	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.NameKey = "logger"
	if withCaller {
		cfg.EncoderConfig.CallerKey = "caller"
	} else {
		cfg.EncoderConfig.CallerKey = zapcore.OmitKey
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// stdout carries the checker's report; logs go to stderr.
	cfg.OutputPaths = []string{"stderr"}

	return cfg, withCaller
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}

func (l *Logger) SafeSync() {
	if l == nil {
		return
	}
	if err := l.Desugar().Sync(); err != nil {
		if !isIgnorableSyncError(err) {
			l.Errorf("log sync error: %v", err)
		}
	}
}

func isIgnorableSyncError(err error) bool {
	if err == nil {
		return false
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "invalid argument") ||
		strings.Contains(s, "inappropriate ioctl for device") ||
		strings.Contains(s, "bad file descriptor")
}

func (l *Logger) InfowCtx(ctx context.Context, msg string, kv ...any) {
	l.SugaredLogger.Infow(msg, appendContextFields(ctx, kv...)...)
}

func (l *Logger) ErrorwCtx(ctx context.Context, msg string, kv ...any) {
	l.SugaredLogger.Errorw(msg, appendContextFields(ctx, kv...)...)
}

func (l *Logger) DebugwCtx(ctx context.Context, msg string, kv ...any) {
	l.SugaredLogger.Debugw(msg, appendContextFields(ctx, kv...)...)
}

func appendContextFields(ctx context.Context, kv ...any) []any {
	if ctx == nil {
		return kv
	}

	if s, ok := ctx.Value(runIDKey).(string); ok && s != "" {
		kv = append(kv, "run_id", s)
	}
	if s, ok := ctx.Value(sourceKey).(string); ok && s != "" {
		kv = append(kv, "source", s)
	}

	return kv
}

// ContextWithRunID tags every *wCtx entry with the batch run identifier.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// ContextWithSource tags every *wCtx entry with the input origin (file name,
// "stdin", "args").
func ContextWithSource(ctx context.Context, source string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sourceKey, source)
}
