package utils

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// InitLogger sets up global logging with compact time format and file:line
// sources. A non-empty logPath tees the output into that file. With console
// set the terminal is in raw mode, so the log stays off stdout when a file is
// given and is otherwise cut down to warnings with CRLF line ends. The
// returned close function releases the file.
func InitLogger(level, logPath string, console bool) (func() error, error) {
	closeFn := func() error { return nil }
	var logFile io.Writer
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return closeFn, fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		closeFn = f.Close
	}
	out, lvl := logSink(os.Stdout, logFile, ParseLevel(level), console)
	slog.SetDefault(NewLogger(out, lvl))
	return closeFn, nil
}

// logSink picks the log destination and level. logFile may be nil.
func logSink(stdout, logFile io.Writer, level slog.Level, console bool) (io.Writer, slog.Level) {
	switch {
	case console && logFile != nil:
		return logFile, level
	case console:
		return crlfWriter{stdout}, max(level, slog.LevelWarn)
	case logFile != nil:
		return io.MultiWriter(stdout, logFile), level
	}
	return stdout, level
}

// crlfWriter turns every line feed into CRLF for a terminal in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NewLogger builds the text handler used across the simulator.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   true,
		ReplaceAttr: shortenAttr,
	})
	return slog.New(handler)
}

func shortenAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		return clockTime(a)
	case slog.SourceKey:
		return fileLine(a)
	}
	return a
}

// clockTime keeps only the wall clock, HH:MM:SS.
func clockTime(a slog.Attr) slog.Attr {
	if t, ok := a.Value.Any().(time.Time); ok {
		a.Value = slog.StringValue(t.Format(time.TimeOnly))
	}
	return a
}

// fileLine reduces a source attribute to base file name and line.
func fileLine(a slog.Attr) slog.Attr {
	if src, ok := a.Value.Any().(*slog.Source); ok {
		a.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
	}
	return a
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
