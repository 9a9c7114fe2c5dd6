package logger

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init configures the package logger. Development gets readable text on stdout,
// anything else gets JSON. Extra writers (e.g. a log file) receive JSON as well.
func Init(env string, extra ...io.Writer) {
	level := slog.LevelInfo
	if env == "development" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler
	if env == "development" {
		primary = slog.NewTextHandler(os.Stdout, opts)
	} else {
		primary = slog.NewJSONHandler(os.Stdout, opts)
	}

	if len(extra) == 0 {
		log = slog.New(primary)
		return
	}

	handlers := []slog.Handler{primary}
	for _, w := range extra {
		handlers = append(handlers, slog.NewJSONHandler(w, opts))
	}
	log = slog.New(slogmulti.Fanout(handlers...))
}

// SetOutput replaces the logger with a JSON logger writing to w. Used by tests.
func SetOutput(w io.Writer) {
	log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func Debug(msg string, args ...any) {
	log.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets callers pass a bare error or value (logger.Error("x", err))
// ahead of proper key/value pairs.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	switch v := args[0].(type) {
	case error:
		return append([]any{slog.String("error", v.Error())}, args[1:]...)
	case slog.Attr:
		return args
	default:
		if len(args) == 1 {
			return []any{slog.Any("detail", v)}
		}
		return args
	}
}
