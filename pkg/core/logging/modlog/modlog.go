/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package modlog is the default module logger. Each module gets its own
// level, and lines are written through a stdlib log.Logger with the module
// name as prefix.
package modlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hyperledger-archives/composer-sub009/pkg/core/logging/api"
)

const (
	logLevelFormatter   = "UTC %s-> %4.4s "
	logPrefixFormatter  = " [%s] "
	callerInfoFormatter = "- %s "
)

// Provider is the default logger implementation
type Provider struct {
	output io.Writer
}

// LoggerProvider returns a provider writing to stdout
func LoggerProvider() api.LoggerProvider {
	return &Provider{output: os.Stdout}
}

// NewProvider returns a provider writing to the given writer
func NewProvider(output io.Writer) *Provider {
	return &Provider{output: output}
}

//GetLogger returns the module logger
func (p *Provider) GetLogger(module string) api.Logger {
	return &Log{
		deflogger: log.New(p.output, fmt.Sprintf(logPrefixFormatter, module), log.Ldate|log.Ltime|log.LUTC),
		module:    module,
	}
}

//Log is the default module logger
type Log struct {
	deflogger *log.Logger
	module    string
}

// Debug logs at DEBUG level. Arguments are handled in the manner of fmt.Print.
func (l *Log) Debug(args ...interface{}) {
	l.log(api.DEBUG, fmt.Sprint(args...))
}

// Debugf logs at DEBUG level. Arguments are handled in the manner of fmt.Printf.
func (l *Log) Debugf(format string, args ...interface{}) {
	l.log(api.DEBUG, fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Log) Info(args ...interface{}) {
	l.log(api.INFO, fmt.Sprint(args...))
}

// Infof logs at INFO level.
func (l *Log) Infof(format string, args ...interface{}) {
	l.log(api.INFO, fmt.Sprintf(format, args...))
}

// Warn logs at WARNING level.
func (l *Log) Warn(args ...interface{}) {
	l.log(api.WARNING, fmt.Sprint(args...))
}

// Warnf logs at WARNING level.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.log(api.WARNING, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Log) Error(args ...interface{}) {
	l.log(api.ERROR, fmt.Sprint(args...))
}

// Errorf logs at ERROR level.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.log(api.ERROR, fmt.Sprintf(format, args...))
}

//ChangeOutput for changing output destination for the logger.
func (l *Log) ChangeOutput(output io.Writer) {
	l.deflogger.SetOutput(output)
}

func (l *Log) log(level api.Level, msg string) {
	if !IsEnabledFor(l.module, level) {
		return
	}
	caller := ""
	if registry.callerInfo(l.module) {
		caller = callerName()
	}
	prefix := fmt.Sprintf(logLevelFormatter, caller, level.String())
	if err := l.deflogger.Output(3, prefix+msg); err != nil {
		fmt.Printf("error from deflogger.Output %v\n", err)
	}
}

// callerName returns the first function outside the logging packages.
func callerName() string {
	const maxCallers = 8
	const notFound = "n/a"

	pcs := make([]uintptr, maxCallers)
	n := runtime.Callers(3, pcs)
	if n == 0 {
		return fmt.Sprintf(callerInfoFormatter, notFound)
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		pkgPath, fnName := filepath.Split(f.Function)
		if f.Function != "" && !isLoggingFrame(pkgPath, fnName) {
			return fmt.Sprintf(callerInfoFormatter, fnName)
		}
		if !more {
			break
		}
	}
	return fmt.Sprintf(callerInfoFormatter, notFound)
}

func isLoggingFrame(pkgPath, fnName string) bool {
	const base = "github.com/hyperledger-archives/composer-sub009/pkg/"
	switch pkgPath {
	case base + "core/logging/":
		return strings.HasPrefix(fnName, "modlog.(*Log).")
	case base + "common/":
		return strings.HasPrefix(fnName, "logging.(*Logger).")
	}
	return false
}
