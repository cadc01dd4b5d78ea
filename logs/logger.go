package logs

import (
	"fmt"
	"time"
)

// Logger writes leveled, subsystem-tagged log lines to its Backend.
type Logger struct {
	level   Level
	tag     string
	backend *Backend
}

// SetLevel changes the logging level of the logger.
func (l *Logger) SetLevel(level Level) { l.level = level }

// Level returns the current logging level of the logger.
func (l *Logger) Level() Level { return l.level }

// Backend returns the Backend this logger writes to.
func (l *Logger) Backend() *Backend { return l.backend }

func (l *Logger) write(level Level, s string) {
	if level < l.level {
		return
	}
	line := fmt.Sprintf("%s [%s] %s: %s\n", time.Now().Format("2006-01-02 15:04:05.000"), level, l.tag, s)
	select {
	case l.backend.writeChan <- logEntry{level: level, line: []byte(line)}:
	default:
		// The backend is falling behind; drop the line rather than block a
		// peer handler or a consensus-critical caller on log I/O.
	}
}

// Tracef formats and logs a message at LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) { l.write(LevelTrace, fmt.Sprintf(format, args...)) }

// Debugf formats and logs a message at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) { l.write(LevelDebug, fmt.Sprintf(format, args...)) }

// Infof formats and logs a message at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) { l.write(LevelInfo, fmt.Sprintf(format, args...)) }

// Warnf formats and logs a message at LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) { l.write(LevelWarn, fmt.Sprintf(format, args...)) }

// Errorf formats and logs a message at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) { l.write(LevelError, fmt.Sprintf(format, args...)) }

// Criticalf formats and logs a message at LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.write(LevelCritical, fmt.Sprintf(format, args...))
}
