package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	globalMu       sync.RWMutex
	GlobalLogLevel LogLevel  = LogLevelInfo
	output         io.Writer = os.Stdout
)

func (l LogLevel) rank() int {
	switch LogLevel(strings.ToLower(string(l))) {
	case LogLevelDebug:
		return 0
	case LogLevelWarn:
		return 2
	case LogLevelError:
		return 3
	default:
		return 1
	}
}

// SetGlobalLevel changes the level picked up by loggers created afterwards.
func SetGlobalLevel(level string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	GlobalLogLevel = LogLevel(strings.ToLower(level))
}

// SetOutput redirects every logger. Tests use io.Discard.
func SetOutput(w io.Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	output = w
}

type Log struct {
	level LogLevel
	err   error
}

func New() *Log {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return &Log{
		level: GlobalLogLevel,
	}
}

func (l *Log) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Log) WithError(err error) *Log {
	return &Log{level: l.level, err: err}
}

func (l *Log) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Log) enabled(level LogLevel) bool {
	return level.rank() >= l.level.rank()
}

func (l *Log) write(color, icon, msg string) {
	globalMu.RLock()
	w := output
	globalMu.RUnlock()

	if l.err != nil {
		fmt.Fprintf(w, "%s[%s]%s %s %s: %v%s\n", color, l.timestamp(), ColorReset, icon, msg, l.err, ColorReset)
		return
	}
	fmt.Fprintf(w, "%s[%s]%s %s %s%s\n", color, l.timestamp(), ColorReset, icon, msg, ColorReset)
}

func (l *Log) Debug(msg string) {
	if !l.enabled(LogLevelDebug) {
		return
	}
	l.write(ColorCyan, "ℹ️ ", msg)
}

func (l *Log) Info(msg string) {
	if !l.enabled(LogLevelInfo) {
		return
	}
	l.write(ColorBlue, "ℹ️ ", msg)
}

// Unlock prints an achievement grant in the highlighted style.
func (l *Log) Unlock(userID, msg string) {
	if !l.enabled(LogLevelInfo) {
		return
	}
	l.write(ColorGreen, "🏆 ["+userID+"]", msg)
}

func (l *Log) Warn(msg string) {
	if !l.enabled(LogLevelWarn) {
		return
	}
	l.write(ColorYellow, "⚠️ ", msg)
}

func (l *Log) Error(msg string) {
	l.write(ColorRed, "❌", msg)
}
