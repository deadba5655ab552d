package logger

import (
	"fmt"
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the package logger. Development gets human-readable text,
// everything else JSON.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	log = slog.New(handler)
}

func Info(msg string, args ...any) {
	logger().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	logger().Error(msg, normalize(args)...)
	os.Exit(1)
}

func logger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

// normalize lets call sites pass bare errors or values alongside key/value
// pairs without panicking slog.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		ok := true
		for i := 0; i < len(args); i += 2 {
			if _, isStr := args[i].(string); !isStr {
				ok = false
				break
			}
		}
		if ok {
			return args
		}
	}

	out := make([]any, 0, len(args)*2)
	for i, a := range args {
		switch v := a.(type) {
		case error:
			out = append(out, "error", v.Error())
		case slog.Attr:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprintf("arg%d", i), v)
		}
	}
	return out
}
