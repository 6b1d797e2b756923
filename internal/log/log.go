// Package log writes structured JSON logs to a rotating file.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// ParseLevel maps the -loglevel names to slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%q: invalid log level", level)
}

// New returns a logger writing to epicycles.slog in dir, or in the user
// config directory if dir is empty.
func New(level string, dir string) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v\n", err)
			dir = "."
		}
		dir = filepath.Join(dir, "Epicycles")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "epicycles.slog"),
		MaxSize:    16, // MB
		MaxBackups: 1,
	}
	if level == "debug" {
		w.MaxSize = 128
	}

	l := NewWriter(w, level)
	l.LogFile = w.Filename

	l.Info("Hello logging", slog.Time("start", l.Start))
	l.Info("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))

	if bi, ok := debug.ReadBuildInfo(); ok {
		var deps []any
		for _, dep := range bi.Deps {
			deps = append(deps, slog.String(dep.Path, dep.Version))
		}
		l.Info("Build",
			slog.String("Go version", bi.GoVersion),
			slog.String("Path", bi.Path),
			slog.Group("Dependencies", deps...))
	}

	return l
}

// NewWriter returns a logger writing JSON records to w. An invalid level
// is reported on stderr and treated as info.
func NewWriter(w io.Writer, level string) *Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})),
		Start:  time.Now(),
	}
}

// caller returns file:line of the function that called the Logger method.
func caller() slog.Attr {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return slog.String("caller", "?")
	}
	return slog.String("caller", filepath.Base(file)+":"+strconv.Itoa(line))
}

// Debug and Info discard messages on a nil *Logger; Warn and Error fall
// back to the default slog logger.
func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelDebug) {
		l.Logger.Debug(msg, append([]any{caller()}, args...)...)
	}
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelDebug) {
		l.Logger.Debug(fmt.Sprintf(msg, args...), caller())
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelInfo) {
		l.Logger.Info(msg, append([]any{caller()}, args...)...)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelInfo) {
		l.Logger.Info(fmt.Sprintf(msg, args...), caller())
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	args = append([]any{caller()}, args...)
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Warnf(msg string, args ...any) {
	if l == nil {
		slog.Warn(fmt.Sprintf(msg, args...), caller())
	} else {
		l.Logger.Warn(fmt.Sprintf(msg, args...), caller())
	}
}

func (l *Logger) Error(msg string, args ...any) {
	args = append([]any{caller()}, args...)
	slog.Error(msg, args...)
	if l != nil {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) Errorf(msg string, args ...any) {
	slog.Error(fmt.Sprintf(msg, args...), caller())
	if l != nil {
		l.Logger.Error(fmt.Sprintf(msg, args...), caller())
	}
}

// Stage logs at debug level how long a pipeline stage took since start.
func (l *Logger) Stage(name string, start time.Time, args ...any) {
	if l != nil && l.Logger.Enabled(context.Background(), slog.LevelDebug) {
		args = append([]any{caller(), slog.String("stage", name), slog.Duration("elapsed", time.Since(start))}, args...)
		l.Logger.Debug("stage done", args...)
	}
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
	}
}
