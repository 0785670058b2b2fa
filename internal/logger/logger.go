package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init installs the process-wide JSON logger writing to stdout.
func Init() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		zapcore.InfoLevel,
	)

	Set(zap.New(core))
	Info("logger initialized", nil)
}

// Set replaces the underlying zap logger. Tests use it with zaptest/observer.
func Set(l *zap.Logger) {
	mu.Lock()
	base = l
	mu.Unlock()
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Info(msg string, fields map[string]any) {
	L().Info(msg, toZap(fields)...)
}

func Warn(msg string, fields map[string]any) {
	L().Warn(msg, toZap(fields)...)
}

func Error(msg string, fields map[string]any) {
	L().Error(msg, toZap(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	l := L()
	l.Error(msg, toZap(fields)...)
	_ = l.Sync()
	os.Exit(1)
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
