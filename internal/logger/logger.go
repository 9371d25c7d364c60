package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/archnets/drive-relay-bot/internal/env"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
)

var (
	std     = log.New(os.Stderr, "", log.LstdFlags)
	current atomic.Value // Level
)

func init() {
	current.Store(ParseLevel(env.GetString("LOG_LEVEL", "INFO")))
}

// levelPriority returns the numeric priority for a log level.
// Higher number = more severe.
func levelPriority(level Level) int {
	switch level {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	default:
		return 1
	}
}

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to INFO.
func ParseLevel(val string) Level {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel changes the minimum level that gets written.
func SetLevel(level Level) {
	current.Store(level)
}

// CurrentLevel returns the active minimum level.
func CurrentLevel() Level {
	return current.Load().(Level)
}

// SetOutput redirects log output, mostly for tests.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func colorForLevel(level Level) string {
	switch level {
	case LevelDebug:
		return colorBlue
	case LevelInfo:
		return colorGreen
	case LevelWarn:
		return colorYellow
	case LevelError:
		return colorRed
	default:
		return colorReset
	}
}

func logf(level Level, format string, args ...any) {
	if levelPriority(level) < levelPriority(CurrentLevel()) {
		return
	}

	color := colorForLevel(level)
	prefix := color + "[" + string(level) + "] " + colorReset
	std.Printf(prefix+format, args...)
}

func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }
