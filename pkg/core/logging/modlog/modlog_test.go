/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"bytes"
	"testing"

	"github.com/hyperledger-archives/composer-sub009/pkg/core/logging/api"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLevel(t *testing.T) {
	const module = "modlog-test/default"
	assert.Equal(t, api.INFO, GetLevel(module), "default log level is INFO")
	assert.True(t, IsEnabledFor(module, api.WARNING))
	assert.False(t, IsEnabledFor(module, api.DEBUG))
}

func TestLevelFiltering(t *testing.T) {
	const module = "modlog-test/filter"
	var buf bytes.Buffer
	logger := NewProvider(&buf).GetLogger(module)

	logger.Debug("hidden")
	logger.Debugf("hidden %d", 1)
	assert.Empty(t, buf.String(), "debug log isn't supposed to show up for info level")

	logger.Warnf("peer %s failed", "peer0")
	assert.Contains(t, buf.String(), "["+module+"]")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "peer peer0 failed")

	buf.Reset()
	SetLevel(module, api.DEBUG)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "DEBU")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	SetLevel(module, api.ERROR)
	logger.Info("hidden")
	logger.Warn("hidden")
	assert.Empty(t, buf.String())
	logger.Error("boom")
	logger.Errorf("boom %d", 2)
	assert.Contains(t, buf.String(), "boom 2")
}

func TestCallerInfo(t *testing.T) {
	const module = "modlog-test/caller"
	var buf bytes.Buffer
	logger := NewProvider(&buf).GetLogger(module)

	logger.Info("with caller")
	assert.Contains(t, buf.String(), "modlog.TestCallerInfo")

	buf.Reset()
	HideCallerInfo(module)
	logger.Info("without caller")
	assert.NotContains(t, buf.String(), "TestCallerInfo")

	buf.Reset()
	ShowCallerInfo(module)
	logger.Infof("again %s", "with caller")
	assert.Contains(t, buf.String(), "modlog.TestCallerInfo")
}

func TestChangeOutput(t *testing.T) {
	var first, second bytes.Buffer
	logger := NewProvider(&first).GetLogger("modlog-test/output").(*Log)
	logger.ChangeOutput(&second)
	logger.Info("moved")
	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), "moved")
}
