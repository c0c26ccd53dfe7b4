package log

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type LogLevel int

const (
	TRACE LogLevel = 5
	DEBUG LogLevel = 10
	INFO  LogLevel = 20
	WARN  LogLevel = 30
	ERROR LogLevel = 40
)

var levelPrefixes = map[LogLevel]string{
	TRACE: "TRACE ",
	DEBUG: "DEBUG ",
	INFO:  "INFO  ",
	WARN:  "WARN  ",
	ERROR: "ERROR ",
}

var (
	loggers  = map[LogLevel]*log.Logger{}
	minLevel = INFO
)

// Init directs all log output to w. A nil writer disables logging
// altogether. Records are written to stdout, so w must never be stdout.
func Init(w io.Writer, level LogLevel) {
	loggers = map[LogLevel]*log.Logger{}
	minLevel = level
	if w == nil {
		return
	}
	flags := log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile
	for lvl, prefix := range levelPrefixes {
		loggers[lvl] = log.New(w, prefix, flags)
	}
}

func ParseLevel(value string) (LogLevel, error) {
	switch strings.ToLower(value) {
	case "trace":
		return TRACE, nil
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "err", "error":
		return ERROR, nil
	}
	return 0, fmt.Errorf("%s: invalid log level", value)
}

type Logger interface {
	Tracef(string, ...any)
	Debugf(string, ...any)
	Infof(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
}

type logger struct {
	name      string
	calldepth int
}

// NewLogger returns a logger that prefixes its messages with [name].
func NewLogger(name string, calldepth int) Logger {
	return &logger{name: name, calldepth: calldepth}
}

func (l *logger) output(level LogLevel, message string, args ...any) {
	out, ok := loggers[level]
	if !ok || level < minLevel {
		return
	}
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	if l.name != "" {
		message = fmt.Sprintf("[%s] %s", l.name, message)
	}
	out.Output(l.calldepth, message) //nolint:errcheck // nothing to do about it
}

func (l *logger) Tracef(message string, args ...any) {
	l.output(TRACE, message, args...)
}

func (l *logger) Debugf(message string, args ...any) {
	l.output(DEBUG, message, args...)
}

func (l *logger) Infof(message string, args ...any) {
	l.output(INFO, message, args...)
}

func (l *logger) Warnf(message string, args ...any) {
	l.output(WARN, message, args...)
}

func (l *logger) Errorf(message string, args ...any) {
	l.output(ERROR, message, args...)
}

var root = logger{calldepth: 4}

func Tracef(message string, args ...any) {
	root.Tracef(message, args...)
}

func Debugf(message string, args ...any) {
	root.Debugf(message, args...)
}

func Infof(message string, args ...any) {
	root.Infof(message, args...)
}

func Warnf(message string, args ...any) {
	root.Warnf(message, args...)
}

func Errorf(message string, args ...any) {
	root.Errorf(message, args...)
}
