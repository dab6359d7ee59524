package logging

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// RecoverAndLog logs a panic with its stack and re-panics.
// This should be called with defer at the start of main functions.
func RecoverAndLog(logger zerolog.Logger) {
	if r := recover(); r != nil {
		LogPanic(&logger, r)
		panic(r)
	}
}

// LogPanic records a recovered panic value with stack and runtime details.
func LogPanic(logger *zerolog.Logger, r any) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	logger.Error().
		Str("panic", fmt.Sprint(r)).
		Str("stack", string(debug.Stack())).
		Str("go_version", runtime.Version()).
		Str("os", runtime.GOOS).
		Str("arch", runtime.GOARCH).
		Int("goroutines", runtime.NumGoroutine()).
		Uint64("alloc_kb", m.Alloc/1024).
		Uint32("num_gc", m.NumGC).
		Msg("PANIC")
}
