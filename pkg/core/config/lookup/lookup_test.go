/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lookup

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapBackend map[string]interface{}

func (m mapBackend) Lookup(key string) (interface{}, bool) {
	v, ok := m[key]
	return v, ok
}

type retrySettings struct {
	Attempts       int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	Codes          []string
}

func TestLookupOrder(t *testing.T) {
	l := New(nil, mapBackend{"channel": "first"}, mapBackend{"channel": "second", "mspID": "Org1MSP"})

	assert.Equal(t, "first", l.GetString("channel"))
	assert.Equal(t, "Org1MSP", l.GetString("mspID"))
	assert.True(t, l.IsSet("mspID"))
	assert.False(t, l.IsSet("missing"))
	assert.Equal(t, "", l.GetString("missing"))
}

func TestTypedGetters(t *testing.T) {
	l := New(mapBackend{
		"metrics.enabled":        "true",
		"x-requiredEventSources": "2",
		"x-queryTimeout":         "45s",
		"x-retry.backoffFactor":  "2.5",
		"x-type":                 "HLFv1",
	})

	assert.True(t, l.GetBool("metrics.enabled"))
	assert.False(t, l.GetBool("missing"))
	assert.Equal(t, 2, l.GetInt("x-requiredEventSources"))
	assert.Equal(t, 0, l.GetInt("missing"))
	assert.Equal(t, 45*time.Second, l.GetDuration("x-queryTimeout"))
	assert.Equal(t, time.Duration(0), l.GetDuration("missing"))
	assert.Equal(t, 2.5, l.GetFloat64("x-retry.backoffFactor"))
	assert.Equal(t, "hlfv1", l.GetLowerString("x-type"))
}

func TestGetTimeout(t *testing.T) {
	l := New(mapBackend{
		"int":      300,
		"float":    1.5,
		"numeric":  "120",
		"duration": "2m",
	})

	assert.Equal(t, 300*time.Second, l.GetTimeout("int"))
	assert.Equal(t, 1500*time.Millisecond, l.GetTimeout("float"))
	assert.Equal(t, 120*time.Second, l.GetTimeout("numeric"))
	assert.Equal(t, 2*time.Minute, l.GetTimeout("duration"))
	assert.Equal(t, time.Duration(0), l.GetTimeout("missing"))
}

func TestUnmarshalKey(t *testing.T) {
	l := New(mapBackend{
		"x-retry": map[string]interface{}{
			"attempts":       "3",
			"initialBackoff": "250ms",
			"maxBackoff":     "5s",
			"backoffFactor":  2.0,
			"codes":          "mvcc,phantom",
		},
	})

	settings := retrySettings{}
	err := l.UnmarshalKey("x-retry", &settings, WithUnmarshalHookFunction(csvHook()))
	require.NoError(t, err)
	assert.Equal(t, 3, settings.Attempts)
	assert.Equal(t, 250*time.Millisecond, settings.InitialBackoff)
	assert.Equal(t, 5*time.Second, settings.MaxBackoff)
	assert.Equal(t, 2.0, settings.BackoffFactor)
	assert.Equal(t, []string{"mvcc", "phantom"}, settings.Codes)

	untouched := retrySettings{Attempts: 7}
	require.NoError(t, l.UnmarshalKey("missing", &untouched))
	assert.Equal(t, 7, untouched.Attempts)
}

func csvHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf([]string{}) {
			return data, nil
		}
		return strings.Split(data.(string), ","), nil
	}
}
