/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/hyperledger-archives/composer-sub009/pkg/core/logging/api"
	"github.com/hyperledger-archives/composer-sub009/pkg/core/logging/modlog"
	"github.com/stretchr/testify/assert"
)

type recordingProvider struct {
	lines []string
}

func (p *recordingProvider) GetLogger(module string) api.Logger {
	return &recordingLogger{p: p, module: module}
}

type recordingLogger struct {
	p      *recordingProvider
	module string
}

func (l *recordingLogger) add(level string, msg string) {
	l.p.lines = append(l.p.lines, fmt.Sprintf("%s %s %s", l.module, level, msg))
}

func (l *recordingLogger) Debug(args ...interface{}) { l.add("DEBUG", fmt.Sprint(args...)) }
func (l *recordingLogger) Debugf(f string, args ...interface{}) {
	l.add("DEBUG", fmt.Sprintf(f, args...))
}
func (l *recordingLogger) Info(args ...interface{}) { l.add("INFO", fmt.Sprint(args...)) }
func (l *recordingLogger) Infof(f string, args ...interface{}) {
	l.add("INFO", fmt.Sprintf(f, args...))
}
func (l *recordingLogger) Warn(args ...interface{}) { l.add("WARN", fmt.Sprint(args...)) }
func (l *recordingLogger) Warnf(f string, args ...interface{}) {
	l.add("WARN", fmt.Sprintf(f, args...))
}
func (l *recordingLogger) Error(args ...interface{}) { l.add("ERROR", fmt.Sprint(args...)) }
func (l *recordingLogger) Errorf(f string, args ...interface{}) {
	l.add("ERROR", fmt.Sprintf(f, args...))
}

func TestCustomProvider(t *testing.T) {
	p := &recordingProvider{}
	Initialize(p)
	defer Initialize(modlog.LoggerProvider())

	logger := NewLogger("connector/test")
	logger.Info("hello")
	logger.Warnf("peer %s failed", "peer1")
	logger.Errorf("code %d", 11)
	logger.Debug("dbg")

	assert.Equal(t, []string{
		"connector/test INFO hello",
		"connector/test WARN peer peer1 failed",
		"connector/test ERROR code 11",
		"connector/test DEBUG dbg",
	}, p.lines)
}

func TestDefaultProvider(t *testing.T) {
	var buf bytes.Buffer
	Initialize(modlog.NewProvider(&buf))
	defer Initialize(modlog.LoggerProvider())

	const module = "connector/default-test"
	logger := NewLogger(module)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	SetLevel(module, DEBUG)
	assert.Equal(t, DEBUG, GetLevel(module))
	assert.True(t, IsEnabledFor(module, DEBUG))
	logger.Debugf("shown %d", 1)
	assert.Contains(t, buf.String(), "shown 1")
	assert.Contains(t, buf.String(), "logging.TestDefaultProvider")
}

func TestLogLevel(t *testing.T) {
	level, err := LogLevel("warning")
	assert.NoError(t, err)
	assert.Equal(t, WARNING, level)

	_, err = LogLevel("verbose")
	assert.Error(t, err)
}

func TestInitializeAfterFirstUse(t *testing.T) {
	var buf bytes.Buffer
	Initialize(modlog.NewProvider(&buf))
	defer Initialize(modlog.LoggerProvider())

	logger := NewLogger("connector/swap-test")
	logger.Info("before")
	assert.Contains(t, buf.String(), "before")

	p := &recordingProvider{}
	Initialize(p)
	logger.Info("after")
	assert.Equal(t, []string{"connector/swap-test INFO after"}, p.lines)
	assert.NotContains(t, buf.String(), "after")
}
