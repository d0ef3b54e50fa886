package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Logger writes leveled diagnostics. The CLI points every level at stderr so
// reports on stdout stay clean.
type Logger struct {
	level       Level
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
}

// New returns a logger writing to w.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		level:       ParseLevel(level),
		infoLogger:  log.New(w, "INFO: ", log.Ltime),
		errorLogger: log.New(w, "ERROR: ", log.Ltime),
		debugLogger: log.New(w, "DEBUG: ", log.Ltime|log.Lshortfile),
	}
}

func NewDiscardLogger() *Logger {
	return New(io.Discard, string(LevelInfo))
}

func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) Info(format string, v ...any) {
	if l.level == LevelError {
		return
	}
	l.infoLogger.Printf(format, v...)
}

func (l *Logger) Error(format string, v ...any) {
	l.errorLogger.Printf(format, v...)
}

func (l *Logger) Debug(format string, v ...any) {
	if l.level != LevelDebug {
		return
	}
	l.debugLogger.Output(2, fmt.Sprintf(format, v...))
}
