// Package logs provides the subsystem-tagged logger used across mnengine.
// It is deliberately small: a Backend fans a single write channel out to
// zero or more level-filtered writers, and every subsystem gets its own
// *Logger sharing that channel.
package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

const logsBuffer = 100

const (
	defaultThresholdKB = 100 * 1000 // 100 MB logs by default.
	defaultMaxRolls    = 8          // keep 8 last logs by default.
)

type logEntry struct {
	level Level
	line  []byte
}

type logWriter interface {
	io.WriteCloser
	LogLevel() Level
}

type logWriterWrap struct {
	io.WriteCloser
	logLevel Level
}

func (lw logWriterWrap) LogLevel() Level { return lw.logLevel }

// Backend is a logging backend. Subsystems created from the backend write to
// the backend's writers. Backend provides atomic writes to the writers from
// all subsystems via a single background goroutine.
type Backend struct {
	isRunning uint32
	writersMu sync.Mutex
	writers   []logWriter
	writeChan chan logEntry
	syncClose sync.Mutex

	loggersMu sync.Mutex
	loggers   map[string]*Logger
}

// NewBackend creates a new, unstarted logger backend.
func NewBackend() *Backend {
	return &Backend{writeChan: make(chan logEntry, logsBuffer), loggers: make(map[string]*Logger)}
}

// AddLogFile adds a file the backend writes into at logLevel, with default
// rotation settings. It creates the file (and parent directory) if needed.
// May be called before or after Run.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0700); err != nil {
			return errors.Errorf("failed to create log directory: %+v", err)
		}
	}
	r, err := rotator.New(logFile, defaultThresholdKB, false, defaultMaxRolls)
	if err != nil {
		return errors.Errorf("failed to create file rotator: %s", err)
	}
	b.writersMu.Lock()
	defer b.writersMu.Unlock()
	b.writers = append(b.writers, logWriterWrap{WriteCloser: r, logLevel: logLevel})
	return nil
}

// AddLogWriter adds an arbitrary io.WriteCloser the backend writes into at
// logLevel, e.g. os.Stdout wrapped in a no-op Closer. May be called before
// or after Run.
func (b *Backend) AddLogWriter(w io.WriteCloser, logLevel Level) error {
	b.writersMu.Lock()
	defer b.writersMu.Unlock()
	b.writers = append(b.writers, logWriterWrap{WriteCloser: w, logLevel: logLevel})
	return nil
}

// Run launches the logger backend in a separate goroutine. Should only be
// called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	go func() {
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logs.Backend goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		b.runBlocking()
	}()
	return nil
}

func (b *Backend) runBlocking() {
	defer atomic.StoreUint32(&b.isRunning, 0)
	b.syncClose.Lock()
	defer b.syncClose.Unlock()

	for entry := range b.writeChan {
		b.writersMu.Lock()
		writers := b.writers
		b.writersMu.Unlock()
		for _, w := range writers {
			if entry.level >= w.LogLevel() {
				_, _ = w.Write(entry.line)
			}
		}
	}
}

// IsRunning returns true if Run has been called and Close hasn't.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close finalizes all log writers for this backend.
func (b *Backend) Close() {
	close(b.writeChan)
	b.syncClose.Lock()
	defer b.syncClose.Unlock()
	b.writersMu.Lock()
	defer b.writersMu.Unlock()
	for _, w := range b.writers {
		_ = w.Close()
	}
}

// Logger returns the logger for subsystemTag, creating it at LevelInfo the
// first time it's requested. Repeated calls with the same tag return the
// same *Logger, so a subsystem registered from package-init code can still
// have its level changed later, e.g. from parsed configuration.
func (b *Backend) Logger(subsystemTag string) *Logger {
	b.loggersMu.Lock()
	defer b.loggersMu.Unlock()
	if l, ok := b.loggers[subsystemTag]; ok {
		return l
	}
	l := &Logger{level: LevelInfo, tag: subsystemTag, backend: b}
	b.loggers[subsystemTag] = l
	return l
}

// SupportedSubsystems returns the tags of every subsystem logger created so
// far, sorted, in the style of kaspad's logger.SupportedSubsystems.
func (b *Backend) SupportedSubsystems() []string {
	b.loggersMu.Lock()
	defer b.loggersMu.Unlock()
	tags := make([]string, 0, len(b.loggers))
	for tag := range b.loggers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ParseAndSetDebugLevels sets logging levels from a specifier string, either
// a single level applied to every known subsystem ("debug"), or a
// comma-separated list of <subsystem>=<level> pairs ("MNPY=debug,GOVN=trace"),
// matching kaspad's config.DebugLevel convention.
func (b *Backend) ParseAndSetDebugLevels(spec string) error {
	if level, ok := LevelFromString(spec); ok {
		for _, tag := range b.SupportedSubsystems() {
			b.Logger(tag).SetLevel(level)
		}
		return nil
	}

	for _, pair := range strings.Split(spec, ",") {
		fields := strings.Split(pair, "=")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return errors.Errorf("invalid debug level specifier %q", pair)
		}
		level, ok := LevelFromString(fields[1])
		if !ok {
			return errors.Errorf("invalid debug level %q for subsystem %q", fields[1], fields[0])
		}
		b.Logger(fields[0]).SetLevel(level)
	}
	return nil
}

var defaultBackend = NewBackend()

func init() {
	_ = defaultBackend.AddLogWriter(nopCloser{os.Stdout}, LevelInfo)
	_ = defaultBackend.Run()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// RegisterSubSystem returns a logger for subsystemTag attached to the
// package-wide default backend. Most callers should use this; construct a
// dedicated Backend only for tests that need to inspect output.
func RegisterSubSystem(subsystemTag string) *Logger {
	return defaultBackend.Logger(subsystemTag)
}

// DefaultBackend returns the package-wide default backend, so cmd/mnengined
// can add a log file once flags are parsed.
func DefaultBackend() *Backend {
	return defaultBackend
}

// ParseAndSetDebugLevels applies spec to the package-wide default backend.
// See Backend.ParseAndSetDebugLevels.
func ParseAndSetDebugLevels(spec string) error {
	return defaultBackend.ParseAndSetDebugLevels(spec)
}

// SupportedSubsystems returns the tags of every subsystem logger registered
// so far against the package-wide default backend.
func SupportedSubsystems() []string {
	return defaultBackend.SupportedSubsystems()
}
