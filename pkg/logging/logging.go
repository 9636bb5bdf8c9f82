package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rexliu/navb/pkg/config"
)

// Logger wraps zerolog with the component name attached.
type Logger struct {
	zerolog.Logger
	component string
	out       io.Writer
}

// New returns a logger writing human-readable lines to stderr.
func New(component string) *Logger {
	return NewWithWriter(component, os.Stderr)
}

// NewWithWriter returns a pretty logger writing to w.
func NewWithWriter(component string, w io.Writer) *Logger {
	l := &Logger{component: component, out: w}
	l.Logger = l.build(consoleWriter(w), zerolog.InfoLevel)
	return l
}

// Configure applies logging settings from config.
func (l *Logger) Configure(cfg config.LoggingConfig) error {
	if l == nil {
		return nil
	}
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
		level = parsed
	}

	var sink io.Writer
	switch cfg.Format {
	case "", "pretty":
		sink = consoleWriter(l.out)
	case "json":
		sink = l.out
	default:
		return fmt.Errorf("logging.format: unsupported %q", cfg.Format)
	}

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o700); err != nil {
			return err
		}
		file, err := newRollingFile(cfg.FilePath, cfg.FileMaxSize)
		if err != nil {
			return err
		}
		sink = zerolog.MultiLevelWriter(sink, file)
	}
	l.Logger = l.build(sink, level)
	return nil
}

func (l *Logger) build(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", l.component).Logger()
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
}

type rollingFile struct {
	path string
	max  int
	file *os.File
}

func newRollingFile(path string, maxMB int) (*rollingFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	return &rollingFile{path: path, max: maxMB, file: f}, nil
}

// Write rotates the file to path.1 once it would grow past max megabytes. A
// failed rotation keeps the current handle: p is still written and the
// rotation error is returned.
func (r *rollingFile) Write(p []byte) (int, error) {
	var rotateErr error
	if r.max > 0 {
		if info, err := r.file.Stat(); err == nil && info.Size()+int64(len(p)) > int64(r.max)*1024*1024 {
			rotateErr = r.rotate()
		}
	}
	n, err := r.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, rotateErr
}

func (r *rollingFile) rotate() error {
	if err := os.Rename(r.path, r.path+".1"); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	next, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	old := r.file
	r.file = next
	return old.Close()
}
