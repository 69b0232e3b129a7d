// Package utils carries small shared helpers, chiefly the package logger.
package utils

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the library's logger. It is a no-op unless InitLog is called or
// a caller installs their own logger via a context (zerolog.Ctx).
var Logger = zerolog.Nop()

func InitLog() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Ctx returns the logger carried by ctx when one is installed, and the
// package logger otherwise. zerolog's Ctx returns a disabled logger for a
// bare context, which is what Logger defaults to as well, so callers can log
// unconditionally.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled && Logger.GetLevel() != zerolog.Disabled {
		return &Logger
	}
	return l
}
