package dlog

import (
	"fmt"
	"io"
	"log"
	"os"
)

const warnPrefix = "WARNING: "

type Logger struct {
	*log.Logger
}

type LoggerOption struct {
	f func(*Logger)
}

// NewLogger is a simple wrapper around the default Go log package
// It adds Debug functions to add a layer of logging that is useful
// for development purposes; these logs can be enabled with a build
// flag of //+build debug - they are otherwise disabled by default
func NewLogger(options ...LoggerOption) *Logger {
	l := &Logger{log.New(os.Stderr, "", log.LstdFlags)}

	for _, option := range options {
		option.f(l)
	}

	return l
}

// Discard returns a logger that drops all output
func Discard() *Logger {
	return NewLogger(LoggerSetOutput(io.Discard))
}

func LoggerSetOutput(w io.Writer) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetOutput(w)
		},
	}
}

func LoggerSetPrefix(p string) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetPrefix(p)
		},
	}
}

func LoggerSetFlags(flag int) LoggerOption {
	return LoggerOption{
		func(l *Logger) {
			l.SetFlags(flag)
		},
	}
}

// Warnf logs a recoverable problem. Warnings are always emitted,
// regardless of the debug build flag.
func (l *Logger) Warnf(format string, v ...interface{}) {
	_ = l.Output(2, warnPrefix+fmt.Sprintf(format, v...))
}
