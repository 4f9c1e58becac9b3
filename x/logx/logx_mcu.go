//go:build tinygo

package logx

type printLogger struct{ kv []any }

func (p printLogger) Debug(msg string, kv ...any) {}
func (p printLogger) Info(msg string, kv ...any)  { p.emit("Info:", msg, kv) }
func (p printLogger) Error(msg string, kv ...any) { p.emit("Error:", msg, kv) }

func (p printLogger) With(kv ...any) Logger {
	all := make([]any, 0, len(p.kv)+len(kv))
	all = append(all, p.kv...)
	return printLogger{kv: append(all, kv...)}
}

func (p printLogger) emit(level, msg string, kv []any) {
	print(level, " ", msg)
	printKV(p.kv)
	printKV(kv)
	println()
}

func printKV(kv []any) {
	for i := 0; i+1 < len(kv); i += 2 {
		k, _ := kv[i].(string)
		print(" ", k, "=")
		switch v := kv[i+1].(type) {
		case string:
			print(v)
		case int:
			print(v)
		case uint32:
			print(v)
		case int64:
			print(v)
		case bool:
			print(v)
		case error:
			print(v.Error())
		default:
			print("?")
		}
	}
}

// Default prints to the builtin console.
func Default() Logger { return printLogger{} }

type nop struct{}

func (nop) Debug(string, ...any)  {}
func (nop) Info(string, ...any)   {}
func (nop) Error(string, ...any)  {}
func (n nop) With(...any) Logger { return n }

// Nop discards everything.
func Nop() Logger { return nop{} }
