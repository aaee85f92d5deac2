/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import (
	"sort"
	"sync"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/multi"
	promprovider "github.com/hyperledger-archives/composer-sub009/pkg/common/metrics/prometheus"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/core"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
)

// FabricProvider creates the ledger collaborators for a connection profile
type FabricProvider func(cfg *ConnectionConfig) (Fabric, error)

// Key identifies a connection by profile name and business network
type Key struct {
	Profile   string
	NetworkID string
}

func (k Key) String() string {
	return k.Profile + "@" + k.NetworkID
}

// Registry holds open connections
type Registry struct {
	mutex       sync.RWMutex
	connections map[Key]*Connection
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{connections: make(map[Key]*Connection)}
}

// Get returns the connection registered under key
func (r *Registry) Get(key Key) (*Connection, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	c, ok := r.connections[key]
	return c, ok
}

// Put registers c under key, replacing any previous connection
func (r *Registry) Put(key Key, c *Connection) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.connections[key] = c
}

// Remove unregisters and returns the connection under key
func (r *Registry) Remove(key Key) (*Connection, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	c, ok := r.connections[key]
	delete(r.connections, key)
	return c, ok
}

// Keys returns the registered keys in order
func (r *Registry) Keys() []Key {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	keys := make([]Key, 0, len(r.connections))
	for k := range r.connections {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Manager opens connections and caches them in its registry.
type Manager struct {
	provider   FabricProvider
	registry   *Registry
	registerer prom.Registerer

	mutex   sync.Mutex
	metrics *metrics.ConnectorMetrics
}

// ManagerOption configures a Manager
type ManagerOption func(m *Manager)

// WithRegisterer registers the metrics of profiles that enable them with reg
// instead of the prometheus default registerer.
func WithRegisterer(reg prom.Registerer) ManagerOption {
	return func(m *Manager) {
		m.registerer = reg
	}
}

// WithRegistry shares a registry between managers
func WithRegistry(r *Registry) ManagerOption {
	return func(m *Manager) {
		m.registry = r
	}
}

// NewManager returns a manager creating collaborators with provider
func NewManager(provider FabricProvider, opts ...ManagerOption) *Manager {
	m := &Manager{provider: provider}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = NewRegistry()
	}
	return m
}

// Registry returns the manager's registry
func (m *Manager) Registry() *Registry {
	return m.registry
}

// ConnectProfile loads the connection profile from provider and connects to networkID
func (m *Manager) ConnectProfile(provider core.ConfigProvider, networkID string) (*Connection, error) {
	cfg, err := LoadConfig(provider)
	if err != nil {
		return nil, err
	}
	return m.Connect(cfg, networkID)
}

// Connect returns the registered connection for the profile and network,
// creating it on first use.
func (m *Manager) Connect(cfg *ConnectionConfig, networkID string) (*Connection, error) {
	if cfg == nil {
		return nil, errors.New("connection config not specified")
	}
	key := Key{Profile: cfg.Name, NetworkID: networkID}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if c, ok := m.registry.Get(key); ok {
		logger.Debugf("Reusing connection %s", key)
		return c, nil
	}

	fabric, err := m.provider(cfg)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create fabric collaborators")
	}
	c, err := NewConnection(cfg, networkID, fabric, WithMetrics(m.metricsFor(cfg)))
	if err != nil {
		return nil, err
	}
	m.registry.Put(key, c)
	logger.Debugf("Created connection %s", key)
	return c, nil
}

// Close disconnects and unregisters a connection
func (m *Manager) Close(key Key) error {
	c, ok := m.registry.Remove(key)
	if !ok {
		return errors.Errorf("no connection registered for %s", key)
	}
	return c.Disconnect()
}

// CloseAll disconnects every registered connection
func (m *Manager) CloseAll() error {
	var errs error
	for _, key := range m.registry.Keys() {
		if err := m.Close(key); err != nil {
			errs = multi.Append(errs, errors.WithMessage(err, key.String()))
		}
	}
	return errs
}

func (m *Manager) metricsFor(cfg *ConnectionConfig) *metrics.ConnectorMetrics {
	if !cfg.MetricsEnabled {
		return metrics.Disabled()
	}
	if m.metrics == nil {
		m.metrics = metrics.NewConnectorMetrics(promprovider.NewProvider(m.registerer))
	}
	return m.metrics
}
