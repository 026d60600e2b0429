package logger

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// Get initializes a zap.SugaredLogger instance if it has not been initialized
// already and returns the same instance for subsequent calls.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		level := zap.InfoLevel
		if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
			parsed, err := zapcore.ParseLevel(levelEnv)
			if err != nil {
				log.Printf("invalid LOG_LEVEL %q, defaulting to INFO: %v", levelEnv, err)
			} else {
				level = parsed
			}
		}

		encoderCfg := zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder := zapcore.NewConsoleEncoder(encoderCfg)
		if os.Getenv("JSON_LOG") != "" {
			productionCfg := zap.NewProductionEncoderConfig()
			productionCfg.TimeKey = "timestamp"
			productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder
			encoder = zapcore.NewJSONEncoder(productionCfg)
		}

		core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zap.NewAtomicLevelAt(level))

		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			fields := []zapcore.Field{zap.String("go_version", buildInfo.GoVersion)}
			for _, s := range buildInfo.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					fields = append(fields, zap.String("git_revision", s.Value[0:7]))
					break
				}
			}
			core = core.With(fields)
		}

		logger = zap.New(core).Sugar()
	})

	return logger
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned, unless it is nil
// in which case a disabled logger is returned.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		return l.With(with)
	} else if l := logger; l != nil {
		return l.With(with)
	}

	return Get().With(with)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
