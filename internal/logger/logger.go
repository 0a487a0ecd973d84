package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	level = new(slog.LevelVar)
	std   = newLogger(os.Stderr)
)

func init() {
	level.Set(slog.LevelWarn)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// no timestamps
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Setup sends log output to w. Debug records are only written when verbose
// is set; otherwise the threshold is Warn.
func Setup(w io.Writer, verbose bool) {
	std = newLogger(w)
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}

// mylog formats the message and hands it to the package logger.
// Arguments are handled in the manner of [fmt.Printf].
func mylog(lvl slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !std.Enabled(ctx, lvl) {
		return
	}
	std.Log(ctx, lvl, fmt.Sprintf(format, args...))
}

// Warn logs at warn level.
// Arguments are handled in the manner of [fmt.Printf].
func Warn(format string, args ...any) {
	mylog(slog.LevelWarn, format, args...)
}

// Info logs at info level.
// Arguments are handled in the manner of [fmt.Printf].
func Info(format string, args ...any) {
	mylog(slog.LevelInfo, format, args...)
}

// Debug logs at debug level.
// Arguments are handled in the manner of [fmt.Printf].
func Debug(format string, args ...any) {
	mylog(slog.LevelDebug, format, args...)
}
