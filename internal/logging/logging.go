package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg = zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stdout"},
	}

	mu     sync.Mutex
	levels = make(map[string]zap.AtomicLevel)
)

// SetLevel changes the level of every logger created with the given name.
func SetLevel(name string, level zapcore.Level) {
	levelFor(name).SetLevel(level)
}

func levelFor(name string) zap.AtomicLevel {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := levels[name]; !ok {
		levels[name] = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return levels[name]
}

// New returns a named console logger. Loggers sharing a name share a level.
func New(name string) *zap.SugaredLogger {
	c := cfg
	c.Level = levelFor(name)
	return zap.Must(c.Build(zap.AddStacktrace(zapcore.PanicLevel))).Named(name).Sugar()
}
