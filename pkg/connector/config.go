/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import (
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/retry"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/core"
	"github.com/hyperledger-archives/composer-sub009/pkg/core/config/lookup"
	"github.com/pkg/errors"
)

const (
	defaultClientVersion   = "0.0.0"
	defaultCommitTimeout   = 300 * time.Second
	defaultRequiredSources = 1
	defaultQueryTimeout    = 30 * time.Second
)

// ConnectionConfig is the part of a connection profile the connector acts on.
type ConnectionConfig struct {
	// Name identifies the profile in a Registry.
	Name    string
	Channel string
	MSPID   string

	// ClientVersion is checked against the version the runtime reports on ping.
	ClientVersion string

	CommitTimeout        time.Duration
	RequiredEventSources int
	QueryTimeout         time.Duration

	// Retry applies to invokes. Zero attempts disables it.
	Retry retry.Opts

	MetricsEnabled bool
}

// LoadConfig reads a ConnectionConfig through the given provider, for
// example config.FromFile("connection.yaml").
func LoadConfig(provider core.ConfigProvider) (*ConnectionConfig, error) {
	backends, err := provider()
	if err != nil {
		return nil, errors.WithMessage(err, "unable to load connection profile")
	}
	return ConfigFromBackend(backends...)
}

// ConfigFromBackend builds a ConnectionConfig from config backends. Earlier
// backends take precedence.
func ConfigFromBackend(backends ...core.ConfigBackend) (*ConnectionConfig, error) {
	if len(backends) == 0 {
		return nil, errors.New("no config backend provided")
	}
	l := lookup.New(backends...)

	cfg := &ConnectionConfig{
		Name:                 l.GetString("name"),
		Channel:              l.GetString("channel"),
		MSPID:                l.GetString("mspID"),
		ClientVersion:        l.GetString("client.version"),
		CommitTimeout:        l.GetTimeout("x-commitTimeout"),
		RequiredEventSources: defaultRequiredSources,
		QueryTimeout:         l.GetTimeout("x-queryTimeout"),
		MetricsEnabled:       l.GetBool("metrics.enabled"),
	}

	for _, required := range []struct{ key, value string }{
		{"name", cfg.Name},
		{"channel", cfg.Channel},
		{"mspID", cfg.MSPID},
	} {
		if required.value == "" {
			return nil, errors.Errorf("connection profile does not define '%s'", required.key)
		}
	}

	if cfg.ClientVersion == "" {
		cfg.ClientVersion = defaultClientVersion
	}
	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = l.GetTimeout("timeout")
	}
	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = defaultCommitTimeout
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaultQueryTimeout
	}
	if l.IsSet("x-requiredEventSources") {
		cfg.RequiredEventSources = l.GetInt("x-requiredEventSources")
		if cfg.RequiredEventSources < 0 {
			return nil, errors.Errorf("invalid x-requiredEventSources %d", cfg.RequiredEventSources)
		}
	}

	if err := l.UnmarshalKey("x-retry", &cfg.Retry); err != nil {
		return nil, errors.Wrap(err, "invalid x-retry")
	}
	cfg.Retry = retry.FillDefaults(cfg.Retry)

	return cfg, nil
}
