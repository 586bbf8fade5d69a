package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is usable before Init; it then logs at info level to stderr.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init rebuilds the logger. DEBUG=true in the environment forces debug level
// even when debug is false.
func Init(debug bool, w io.Writer) {
	level := slog.LevelInfo
	if debug || os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(Logger)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
