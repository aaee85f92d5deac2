/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package disabled

import (
	"testing"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/metrics"
	"github.com/stretchr/testify/assert"
)

func TestDisabledProvider(t *testing.T) {
	var p metrics.Provider = &Provider{}

	c := p.NewCounter(metrics.CounterOpts{})
	assert.Equal(t, c, c.With("a", "b"))
	c.Add(1)

	g := p.NewGauge(metrics.GaugeOpts{})
	assert.Equal(t, g, g.With("a", "b"))
	g.Set(1)
	g.Add(1)

	h := p.NewHistogram(metrics.HistogramOpts{})
	assert.Equal(t, h, h.With("a", "b"))
	h.Observe(1)
}
