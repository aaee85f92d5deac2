/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"testing"

	promprovider "github.com/hyperledger-archives/composer-sub009/pkg/common/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnectorMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	m := NewConnectorMetrics(promprovider.NewProvider(reg))

	m.QueriesReceived.With("channel", "c", "fcn", "ping").Add(1)
	m.QueryFailovers.With("channel", "c", "peer", "peer0").Add(1)
	m.CommitsRejected.With("channel", "c", "code", "MVCC_READ_CONFLICT").Add(1)
	m.LifecycleOperations.With("channel", "c", "operation", "deploy", "outcome", "skipped").Add(1)
	m.EventSourcesConnected.With("channel", "c").Set(2)
	m.CommitDuration.With("channel", "c").Observe(0.2)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["connector_query_received"])
	assert.True(t, names["connector_query_failovers"])
	assert.True(t, names["connector_commit_rejected"])
	assert.True(t, names["connector_lifecycle_operations"])
	assert.True(t, names["connector_event_sources_connected"])
	assert.True(t, names["connector_commit_duration"])
}

func TestDisabled(t *testing.T) {
	m := Disabled()
	assert.NotPanics(t, func() {
		m.QueriesFailed.With("channel", "c", "fcn", "f").Add(1)
		m.QueryDuration.With("channel", "c", "fcn", "f").Observe(1)
	})
}
