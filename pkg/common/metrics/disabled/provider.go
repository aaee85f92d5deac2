/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package disabled is a metrics provider whose instruments discard every value.
package disabled

import (
	"github.com/hyperledger-archives/composer-sub009/pkg/common/metrics"
)

// Provider creates no-op instruments
type Provider struct{}

// NewCounter returns a no-op counter
func (p *Provider) NewCounter(o metrics.CounterOpts) metrics.Counter { return &Counter{} }

// NewGauge returns a no-op gauge
func (p *Provider) NewGauge(o metrics.GaugeOpts) metrics.Gauge { return &Gauge{} }

// NewHistogram returns a no-op histogram
func (p *Provider) NewHistogram(o metrics.HistogramOpts) metrics.Histogram { return &Histogram{} }

// Counter discards values
type Counter struct{}

// Add does nothing
func (c *Counter) Add(delta float64) {}

// With returns the receiver
func (c *Counter) With(labelValues ...string) metrics.Counter {
	return c
}

// Gauge discards values
type Gauge struct{}

// Add does nothing
func (g *Gauge) Add(delta float64) {}

// Set does nothing
func (g *Gauge) Set(delta float64) {}

// With returns the receiver
func (g *Gauge) With(labelValues ...string) metrics.Gauge {
	return g
}

// Histogram discards values
type Histogram struct{}

// Observe does nothing
func (h *Histogram) Observe(value float64) {}

// With returns the receiver
func (h *Histogram) With(labelValues ...string) metrics.Histogram {
	return h
}
