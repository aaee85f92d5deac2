/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logging is the logging front end of the connector. Each package
// declares a module logger once:
//
//  var logger = logging.NewLogger("connector/commit")
//
// Output goes to the modlog provider unless Initialize installs another.
package logging

import (
	"sync"
	"sync/atomic"

	"github.com/hyperledger-archives/composer-sub009/pkg/core/logging/api"
	"github.com/hyperledger-archives/composer-sub009/pkg/core/logging/modlog"
)

// Level is a log level. Module levels only apply to the default provider.
type Level = api.Level

// Log levels.
const (
	CRITICAL = api.CRITICAL
	ERROR    = api.ERROR
	WARNING  = api.WARNING
	INFO     = api.INFO
	DEBUG    = api.DEBUG
)

var (
	mu         sync.RWMutex
	provider   api.LoggerProvider = modlog.LoggerProvider()
	generation uint64
)

// Logger forwards to the module's logger from the current provider. It
// picks up a provider installed by Initialize on its next call.
type Logger struct {
	module string

	mu       sync.Mutex
	gen      uint64
	instance api.Logger
}

// NewLogger returns the logger for module.
func NewLogger(module string) *Logger {
	return &Logger{module: module}
}

// Initialize replaces the logger provider for every module.
func Initialize(p api.LoggerProvider) {
	mu.Lock()
	provider = p
	atomic.AddUint64(&generation, 1)
	mu.Unlock()
}

// SetLevel sets the level of module.
func SetLevel(module string, level Level) {
	modlog.SetLevel(module, level)
}

// GetLevel returns the level of module.
func GetLevel(module string) Level {
	return modlog.GetLevel(module)
}

// IsEnabledFor reports whether module logs at level.
func IsEnabledFor(module string, level Level) bool {
	return modlog.IsEnabledFor(module, level)
}

// LogLevel parses a level name such as "info" or "warning".
func LogLevel(level string) (Level, error) {
	return api.ParseLevel(level)
}

func (l *Logger) current() api.Logger {
	gen := atomic.LoadUint64(&generation)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.instance == nil || l.gen != gen {
		mu.RLock()
		l.instance = provider.GetLogger(l.module)
		mu.RUnlock()
		l.gen = gen
	}
	return l.instance
}

// Debug logs at DEBUG.
func (l *Logger) Debug(args ...interface{}) { l.current().Debug(args...) }

// Debugf logs at DEBUG.
func (l *Logger) Debugf(format string, args ...interface{}) { l.current().Debugf(format, args...) }

// Info logs at INFO.
func (l *Logger) Info(args ...interface{}) { l.current().Info(args...) }

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...interface{}) { l.current().Infof(format, args...) }

// Warn logs at WARNING.
func (l *Logger) Warn(args ...interface{}) { l.current().Warn(args...) }

// Warnf logs at WARNING.
func (l *Logger) Warnf(format string, args ...interface{}) { l.current().Warnf(format, args...) }

// Error logs at ERROR.
func (l *Logger) Error(args ...interface{}) { l.current().Error(args...) }

// Errorf logs at ERROR.
func (l *Logger) Errorf(format string, args ...interface{}) { l.current().Errorf(format, args...) }
