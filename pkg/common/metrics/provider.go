/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metrics defines the instruments a connection records. Concrete
// providers live in the prometheus and disabled sub-packages.
package metrics

// Provider creates counters, gauges and histograms.
type Provider interface {
	NewCounter(CounterOpts) Counter
	NewGauge(GaugeOpts) Gauge
	NewHistogram(HistogramOpts) Histogram
}

// Counter is a monotonically increasing instrument.
type Counter interface {
	// With returns a counter bound to a value for every label name given
	// in CounterOpts.
	With(labelValues ...string) Counter
	Add(delta float64)
}

// CounterOpts describes a counter. Namespace, Subsystem and Name are joined
// with "_" to form the fully qualified name.
type CounterOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	LabelNames []string
}

// Gauge records the current value of something.
type Gauge interface {
	With(labelValues ...string) Gauge
	Add(delta float64)
	Set(value float64)
}

// GaugeOpts describes a gauge.
type GaugeOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	LabelNames []string
}

// Histogram samples observations into buckets.
type Histogram interface {
	With(labelValues ...string) Histogram
	Observe(value float64)
}

// HistogramOpts describes a histogram. Nil Buckets selects the provider default.
type HistogramOpts struct {
	Namespace  string
	Subsystem  string
	Name       string
	Help       string
	Buckets    []float64
	LabelNames []string
}
