/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads connection profiles into config backends. Values can
// be overridden from the environment: the key "x-commitTimeout" is read from
// COMPOSER_CONNECTOR_X-COMMITTIMEOUT and nested keys use "_" for ".".
package config

import (
	"bytes"
	"io"
	"strings"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/core"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// LogModules are the connector modules whose level follows logging.level.
var LogModules = [...]string{"connector", "connector/query", "connector/endorsement", "connector/commit",
	"connector/lifecycle", "connector/retry", "connector/config"}

const (
	cmdRoot = "COMPOSER_CONNECTOR"
)

type options struct {
	envPrefix string
	defaults  map[string]interface{}
}

// Option configures the package.
type Option func(opts *options) error

// WithEnvPrefix defines the prefix for environment variable overrides.
// See viper SetEnvPrefix for more information.
func WithEnvPrefix(prefix string) Option {
	return func(opts *options) error {
		if prefix == "" {
			return errors.New("env prefix must not be empty")
		}
		opts.envPrefix = prefix
		return nil
	}
}

// WithDefault sets a value used when neither the profile nor the environment
// define the key.
func WithDefault(key string, value interface{}) Option {
	return func(opts *options) error {
		if opts.defaults == nil {
			opts.defaults = make(map[string]interface{})
		}
		opts.defaults[key] = value
		return nil
	}
}

// FromReader loads configuration from in.
// configType can be "json" or "yaml".
func FromReader(in io.Reader, configType string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		return initFromReader(in, configType, opts...)
	}
}

// FromFile reads from named config file
func FromFile(name string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		if name == "" {
			return nil, errors.New("filename is required")
		}

		backend, err := newBackend(opts...)
		if err != nil {
			return nil, err
		}

		backend.configViper.SetConfigFile(name)
		if err := backend.configViper.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(err, "loading config file failed: %s", name)
		}
		if err := setLogLevel(backend); err != nil {
			return nil, err
		}

		return []core.ConfigBackend{backend}, nil
	}
}

// FromRaw will initialize the configs from a byte array
func FromRaw(configBytes []byte, configType string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		return initFromReader(bytes.NewBuffer(configBytes), configType, opts...)
	}
}

func initFromReader(in io.Reader, configType string, opts ...Option) ([]core.ConfigBackend, error) {
	if configType == "" {
		return nil, errors.New("empty config type")
	}

	backend, err := newBackend(opts...)
	if err != nil {
		return nil, err
	}

	// read config from bytes array, but must set ConfigType
	// for viper to properly unmarshal the bytes array
	backend.configViper.SetConfigType(configType)
	if err := backend.configViper.MergeConfig(in); err != nil {
		return nil, errors.Wrap(err, "reading config failed")
	}
	if err := setLogLevel(backend); err != nil {
		return nil, err
	}

	return []core.ConfigBackend{backend}, nil
}

func newBackend(opts ...Option) (*defConfigBackend, error) {
	o := options{
		envPrefix: cmdRoot,
	}
	for _, option := range opts {
		if err := option(&o); err != nil {
			return nil, errors.WithMessage(err, "Error in options passed to create new config backend")
		}
	}

	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range o.defaults {
		v.SetDefault(key, value)
	}

	return &defConfigBackend{configViper: v}, nil
}

// setLogLevel applies logging.level to every connector module
func setLogLevel(backend core.ConfigBackend) error {
	value, ok := backend.Lookup("logging.level")
	if !ok {
		return nil
	}
	name, err := cast.ToStringE(value)
	if err != nil {
		return errors.WithMessage(err, "invalid logging.level")
	}
	level, err := logging.LogLevel(name)
	if err != nil {
		return errors.WithMessage(err, "invalid logging.level")
	}
	for _, module := range LogModules {
		logging.SetLevel(module, level)
	}
	return nil
}
