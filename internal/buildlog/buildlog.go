// Package buildlog is a thin, level-controlled wrapper around zerolog
// that the builder and BuildFromNfa emit debug events through (NFA and
// DFA state counts, cache hits). Logging is disabled by default; callers
// that want to see what a build did call SetLogger with an enabled one.
package buildlog

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.Disabled)
	current.Store(&l)
}

// SetLogger installs l as the logger build-phase tracing is written
// through. Pass a logger at zerolog.Disabled to silence it again.
func SetLogger(l zerolog.Logger) {
	current.Store(&l)
}

// Debugf logs a debug-level, printf-style message.
func Debugf(format string, args ...interface{}) {
	current.Load().Debug().Msgf(format, args...)
}

// Infof logs an info-level, printf-style message.
func Infof(format string, args ...interface{}) {
	current.Load().Info().Msgf(format, args...)
}
