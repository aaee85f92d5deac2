/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"sync"

	"github.com/hyperledger-archives/composer-sub009/pkg/core/logging/api"
)

// moduleLevels maintains log levels and caller-info toggles per module.
// The empty module name holds the defaults.
type moduleLevels struct {
	mutex      sync.RWMutex
	levels     map[string]api.Level
	hideCaller map[string]bool
}

var registry = &moduleLevels{
	levels:     make(map[string]api.Level),
	hideCaller: make(map[string]bool),
}

func (m *moduleLevels) level(module string) api.Level {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if level, ok := m.levels[module]; ok {
		return level
	}
	if level, ok := m.levels[""]; ok {
		return level
	}
	return api.INFO
}

func (m *moduleLevels) setLevel(module string, level api.Level) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.levels[module] = level
}

func (m *moduleLevels) callerInfo(module string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if hide, ok := m.hideCaller[module]; ok {
		return !hide
	}
	return !m.hideCaller[""]
}

func (m *moduleLevels) setCallerInfo(module string, show bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.hideCaller[module] = !show
}

//SetLevel - setting log level for given module. The empty module sets the default.
func SetLevel(module string, level api.Level) {
	registry.setLevel(module, level)
}

//GetLevel - getting log level for given module
func GetLevel(module string) api.Level {
	return registry.level(module)
}

//IsEnabledFor - Check if given log level is enabled for given module
func IsEnabledFor(module string, level api.Level) bool {
	return level <= registry.level(module)
}

//ShowCallerInfo - Show caller info in log lines for given module
func ShowCallerInfo(module string) {
	registry.setCallerInfo(module, true)
}

//HideCallerInfo - Do not show caller info in log lines for given module
func HideCallerInfo(module string) {
	registry.setCallerInfo(module, false)
}
