// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// logger.go — Logger interface, noop implementation, and a zap adapter used
// for structured logging of load, save, revert, and unload events.

package persistent

import "go.uber.org/zap"

// Logger is the logging interface used internally.
// Implement this to route logs to slog, logrus, etc. or use NewZapLogger.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
}

type noopLogger struct{}

func (noopLogger) Info(_ string, _ ...any)  {}
func (noopLogger) Warn(_ string, _ ...any)  {}
func (noopLogger) Error(_ string, _ ...any) {}
func (noopLogger) Debug(_ string, _ ...any) {}

// ZapLogger adapts a *zap.Logger to Logger.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger wraps l. A nil l uses zap.L().
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.L()
	}
	return &ZapLogger{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (z *ZapLogger) Info(msg string, kv ...any)  { z.s.Infow(msg, kv...) }
func (z *ZapLogger) Warn(msg string, kv ...any)  { z.s.Warnw(msg, kv...) }
func (z *ZapLogger) Error(msg string, kv ...any) { z.s.Errorw(msg, kv...) }
func (z *ZapLogger) Debug(msg string, kv ...any) { z.s.Debugw(msg, kv...) }

// Sync flushes any buffered log entries.
func (z *ZapLogger) Sync() error { return z.s.Sync() }
