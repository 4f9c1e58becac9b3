// Package logx is the process-wide logger. Host builds log through zap;
// MCU builds print with the builtin println so no formatter is linked in.
package logx

import "sync/atomic"

// Logger takes a message plus alternating key/value pairs.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Error(msg string, kv ...any)
	With(kv ...any) Logger
}

var global atomic.Value // holds Logger

func init() { global.Store(holder{Default()}) }

type holder struct{ l Logger }

// L returns the current process logger.
func L() Logger { return global.Load().(holder).l }

// Set replaces the process logger. A nil logger installs Nop.
func Set(l Logger) {
	if l == nil {
		l = Nop()
	}
	global.Store(holder{l})
}

// Named is shorthand for L().With("svc", name).
func Named(name string) Logger { return L().With("svc", name) }
