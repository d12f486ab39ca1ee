// Package logging builds the charmbracelet/log logger shared by the CLI,
// the TUI and the dev server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/idilsaglam/tada/internal/config"
)

// Options holds configuration for a logger.
type Options struct {
	Level     log.Level
	Formatter log.Formatter
	File      string // rotate into this file instead of the fallback writer
	Prefix    string
}

// OptionsFrom converts the [log] config section.
func OptionsFrom(c config.LogConfig) Options {
	return Options{
		Level:     ParseLogLevel(c.Level),
		Formatter: ParseLogFormatter(c.Format),
		File:      c.File,
		Prefix:    "tada",
	}
}

// New returns a logger writing to opts.File (rotated) or to fallback. The
// returned closer releases the file; it is a no-op for fallback writers.
func New(opts Options, fallback io.Writer) (*log.Logger, io.Closer, error) {
	w := fallback
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28,
		}
		w, closer = lj, lj
	}
	if w == nil {
		w = io.Discard
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.File != "",
		Prefix:          opts.Prefix,
	})
	return logger, closer, nil
}

// DefaultFile is where the TUI logs when no file is configured, since it
// owns the terminal.
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tada.log")
	}
	return filepath.Join(dir, "tada", "tada.log")
}

// ParseLogLevel parses a string log level, defaulting to info.
func ParseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseLogFormatter parses a formatter name, defaulting to text.
func ParseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
