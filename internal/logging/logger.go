package logging

import (
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is the diagnostic sink consumed by the extraction passes. Warn and
// Error record recoverable per-item problems, Debug carries raw payload
// excerpts for troubleshooting, Info marks benign outcomes such as empty
// result lists.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StdLogger writes levelled lines through the standard library logger.
type StdLogger struct {
	min Level
}

func New(min Level) *StdLogger {
	return &StdLogger{min: min}
}

func (l *StdLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, "DEBUG", format, args) }
func (l *StdLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, "INFO", format, args) }
func (l *StdLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, "WARN", format, args) }
func (l *StdLogger) Errorf(format string, args ...any) { l.logf(LevelError, "ERROR", format, args) }

func (l *StdLogger) logf(lv Level, tag, format string, args []any) {
	if lv < l.min {
		return
	}
	log.Printf("["+tag+"] "+format, args...)
}
