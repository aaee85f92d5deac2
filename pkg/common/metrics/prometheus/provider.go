/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package prometheus adapts go-kit prometheus instruments to the metrics
// provider. Collectors are registered with the provider's registerer; when a
// collector with the same description already exists it is reused, so several
// connections in one process share their series.
package prometheus

import (
	kitmetrics "github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/metrics"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Provider creates prometheus backed instruments
type Provider struct {
	Registerer prom.Registerer
}

// NewProvider returns a provider registering with reg, or with the
// prometheus default registerer when reg is nil.
func NewProvider(reg prom.Registerer) *Provider {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	return &Provider{Registerer: reg}
}

// NewCounter creates a counter vector
func (p *Provider) NewCounter(o metrics.CounterOpts) metrics.Counter {
	cv := prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: o.Namespace,
			Subsystem: o.Subsystem,
			Name:      o.Name,
			Help:      o.Help,
		},
		o.LabelNames,
	)
	cv = p.register(cv).(*prom.CounterVec)
	return &Counter{Counter: prometheus.NewCounter(cv)}
}

// NewGauge creates a gauge vector
func (p *Provider) NewGauge(o metrics.GaugeOpts) metrics.Gauge {
	gv := prom.NewGaugeVec(
		prom.GaugeOpts{
			Namespace: o.Namespace,
			Subsystem: o.Subsystem,
			Name:      o.Name,
			Help:      o.Help,
		},
		o.LabelNames,
	)
	gv = p.register(gv).(*prom.GaugeVec)
	return &Gauge{Gauge: prometheus.NewGauge(gv)}
}

// NewHistogram creates a histogram vector
func (p *Provider) NewHistogram(o metrics.HistogramOpts) metrics.Histogram {
	hv := prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: o.Namespace,
			Subsystem: o.Subsystem,
			Name:      o.Name,
			Help:      o.Help,
			Buckets:   o.Buckets,
		},
		o.LabelNames,
	)
	hv = p.register(hv).(*prom.HistogramVec)
	return &Histogram{Histogram: prometheus.NewHistogram(hv)}
}

func (p *Provider) register(c prom.Collector) prom.Collector {
	if err := p.Registerer.Register(c); err != nil {
		if are, ok := err.(prom.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// Counter wraps a go-kit counter
type Counter struct{ kitmetrics.Counter }

// With binds label values
func (c *Counter) With(labelValues ...string) metrics.Counter {
	return &Counter{Counter: c.Counter.With(labelValues...)}
}

// Gauge wraps a go-kit gauge
type Gauge struct{ kitmetrics.Gauge }

// With binds label values
func (g *Gauge) With(labelValues ...string) metrics.Gauge {
	return &Gauge{Gauge: g.Gauge.With(labelValues...)}
}

// Histogram wraps a go-kit histogram
type Histogram struct{ kitmetrics.Histogram }

// With binds label values
func (h *Histogram) With(labelValues ...string) metrics.Histogram {
	return &Histogram{Histogram: h.Histogram.With(labelValues...)}
}
