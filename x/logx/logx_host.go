//go:build !tinygo

package logx

import "go.uber.org/zap"

type zapLogger struct{ s *zap.SugaredLogger }

func (z zapLogger) Debug(msg string, kv ...any) { z.s.Debugw(msg, kv...) }
func (z zapLogger) Info(msg string, kv ...any)  { z.s.Infow(msg, kv...) }
func (z zapLogger) Error(msg string, kv ...any) { z.s.Errorw(msg, kv...) }
func (z zapLogger) With(kv ...any) Logger       { return zapLogger{z.s.With(kv...)} }

// FromZap adapts an existing zap logger.
func FromZap(l *zap.Logger) Logger { return zapLogger{l.Sugar()} }

// New builds a zap-backed logger; development enables debug output and
// the console encoder.
func New(development bool) (Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return FromZap(l), nil
}

// Default is the logger installed at init: production zap, or Nop if
// zap cannot be built.
func Default() Logger {
	l, err := New(false)
	if err != nil {
		return Nop()
	}
	return l
}

// Nop discards everything.
func Nop() Logger { return FromZap(zap.NewNop()) }
