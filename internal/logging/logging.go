package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level is a log severity
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levels = []struct {
	name  string
	level Level
}{
	{"debug", LevelDebug},
	{"info", LevelInfo},
	{"warn", LevelWarn},
	{"error", LevelError},
}

func (l Level) String() string {
	for _, e := range levels {
		if e.level == l {
			return strings.ToUpper(e.name)
		}
	}
	return fmt.Sprintf("LEVEL(%d)", int32(l))
}

var (
	threshold int32 = int32(LevelInfo)
	output          = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLevel sets the process-wide threshold from its name ("warning" is
// accepted for warn). It reports false and changes nothing for unknown names.
func SetLevel(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	for _, e := range levels {
		if e.name == name {
			atomic.StoreInt32(&threshold, int32(e.level))
			return true
		}
	}
	return false
}

func GetLevel() Level { return Level(atomic.LoadInt32(&threshold)) }

// SetOutput redirects every logger
func SetOutput(w io.Writer) { output.SetOutput(w) }

// Logger writes "[LEVEL] [component] message" lines
type Logger struct {
	component string
}

// New returns the logger of one component, e.g. New("explorer")
func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.emit(LevelDebug, format, args) }
func (l *Logger) Infof(format string, args ...interface{})  { l.emit(LevelInfo, format, args) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.emit(LevelWarn, format, args) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.emit(LevelError, format, args) }

func (l *Logger) emit(level Level, format string, args []interface{}) {
	if level < GetLevel() {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	output.Printf("[%s] [%s] %s", level, l.component, msg)
}
