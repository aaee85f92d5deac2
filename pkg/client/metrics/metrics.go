/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"github.com/hyperledger-archives/composer-sub009/pkg/common/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/metrics/disabled"
)

var (
	queriesReceived = metrics.CounterOpts{
		Namespace:  "connector",
		Subsystem:  "query",
		Name:       "received",
		Help:       "The number of chaincode queries received.",
		LabelNames: []string{"channel", "fcn"},
	}
	queryFailovers = metrics.CounterOpts{
		Namespace:  "connector",
		Subsystem:  "query",
		Name:       "failovers",
		Help:       "The number of query attempts that failed on one peer and moved to the next.",
		LabelNames: []string{"channel", "peer"},
	}
	queriesFailed = metrics.CounterOpts{
		Namespace:  "connector",
		Subsystem:  "query",
		Name:       "failed",
		Help:       "The number of queries that failed on every peer.",
		LabelNames: []string{"channel", "fcn"},
	}
	queryDuration = metrics.HistogramOpts{
		Namespace:  "connector",
		Subsystem:  "query",
		Name:       "duration",
		Help:       "The time to complete a chaincode query in seconds.",
		LabelNames: []string{"channel", "fcn"},
	}
	commitsConfirmed = metrics.CounterOpts{
		Namespace:  "connector",
		Subsystem:  "commit",
		Name:       "confirmed",
		Help:       "The number of transactions whose commit was confirmed.",
		LabelNames: []string{"channel"},
	}
	commitsRejected = metrics.CounterOpts{
		Namespace:  "connector",
		Subsystem:  "commit",
		Name:       "rejected",
		Help:       "The number of transactions a commit source marked invalid.",
		LabelNames: []string{"channel", "code"},
	}
	commitTimeouts = metrics.CounterOpts{
		Namespace:  "connector",
		Subsystem:  "commit",
		Name:       "timeouts",
		Help:       "The number of commit sources that timed out waiting for an event.",
		LabelNames: []string{"channel", "source"},
	}
	commitDuration = metrics.HistogramOpts{
		Namespace:  "connector",
		Subsystem:  "commit",
		Name:       "duration",
		Help:       "The time from listening to an overall commit verdict in seconds.",
		LabelNames: []string{"channel"},
	}
	lifecycleOperations = metrics.CounterOpts{
		Namespace:  "connector",
		Subsystem:  "lifecycle",
		Name:       "operations",
		Help:       "The number of chaincode lifecycle operations by outcome.",
		LabelNames: []string{"channel", "operation", "outcome"},
	}
	eventSourcesConnected = metrics.GaugeOpts{
		Namespace:  "connector",
		Name:       "event_sources_connected",
		Help:       "The number of connected commit sources.",
		LabelNames: []string{"channel"},
	}
)

// ConnectorMetrics contains the metrics recorded by a connection
type ConnectorMetrics struct {
	QueriesReceived       metrics.Counter
	QueryFailovers        metrics.Counter
	QueriesFailed         metrics.Counter
	QueryDuration         metrics.Histogram
	CommitsConfirmed      metrics.Counter
	CommitsRejected       metrics.Counter
	CommitTimeouts        metrics.Counter
	CommitDuration        metrics.Histogram
	LifecycleOperations   metrics.Counter
	EventSourcesConnected metrics.Gauge
}

// NewConnectorMetrics builds a new instance of ConnectorMetrics
func NewConnectorMetrics(p metrics.Provider) *ConnectorMetrics {
	return &ConnectorMetrics{
		QueriesReceived:       p.NewCounter(queriesReceived),
		QueryFailovers:        p.NewCounter(queryFailovers),
		QueriesFailed:         p.NewCounter(queriesFailed),
		QueryDuration:         p.NewHistogram(queryDuration),
		CommitsConfirmed:      p.NewCounter(commitsConfirmed),
		CommitsRejected:       p.NewCounter(commitsRejected),
		CommitTimeouts:        p.NewCounter(commitTimeouts),
		CommitDuration:        p.NewHistogram(commitDuration),
		LifecycleOperations:   p.NewCounter(lifecycleOperations),
		EventSourcesConnected: p.NewGauge(eventSourcesConnected),
	}
}

// Disabled returns metrics that record nothing
func Disabled() *ConnectorMetrics {
	return NewConnectorMetrics(&disabled.Provider{})
}
