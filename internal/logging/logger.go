// Package logging provides the leveled console logger used by every command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/backmassage/hdrbatch/internal/config"
	"github.com/backmassage/hdrbatch/internal/term"
)

// Level tag colors. fatih/color drops the escape codes when color.NoColor
// is set by term.Configure.
var (
	infoColor    = color.New(color.FgHiBlue, color.Bold)
	successColor = color.New(color.FgHiGreen, color.Bold)
	warnColor    = color.New(color.FgHiYellow, color.Bold)
	errorColor   = color.New(color.FgHiRed, color.Bold)
	debugColor   = color.New(color.FgHiCyan, color.Bold)
)

// Logger provides leveled, optionally colored logging with an optional
// plain-text file sink. It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	file    *os.File
	verbose bool
}

// NewLogger configures colors from cfg and opens cfg.LogFile for appending
// when set. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return NewLoggerTo(cfg, os.Stdout, os.Stderr)
}

// NewLoggerTo is NewLogger with explicit console writers. ERROR lines go to
// errOut, everything else to out.
func NewLoggerTo(cfg *config.Config, out, errOut io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	l := &Logger{out: out, errOut: errOut, verbose: cfg.Verbose}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Verbose reports whether DEBUG lines are written.
func (l *Logger) Verbose() bool { return l.verbose }

func (l *Logger) line(level string, c *color.Color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	tag := "[" + level + "]"

	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+c.Sprint(tag)+" "+text+"\n")
	if l.file != nil {
		_, _ = io.WriteString(l.file, ts+" "+tag+" "+text+"\n")
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", infoColor, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", successColor, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", warnColor, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to the error writer.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", errorColor, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only in verbose mode.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", debugColor, fmt.Sprintf(format, args...))
}
