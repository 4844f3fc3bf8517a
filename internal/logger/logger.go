package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log = zap.NewNop()

func Init(debug, quiet bool) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true

	switch {
	case debug:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case quiet:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return
	}

	Log = l
}

func Sync() {
	_ = Log.Sync()
}
