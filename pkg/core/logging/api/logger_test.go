/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for name, expected := range map[string]Level{
		"critical": CRITICAL,
		"ERROR":    ERROR,
		"warning":  WARNING,
		"warn":     WARNING,
		"Info":     INFO,
		"debug":    DEBUG,
	} {
		level, err := ParseLevel(name)
		assert.NoError(t, err, name)
		assert.Equal(t, expected, level, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARNING", WARNING.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
