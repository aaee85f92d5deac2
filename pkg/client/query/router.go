/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package query routes read-only chaincode queries to a single peer, reusing
// the last peer that answered and failing over in order when it does not.
package query

import (
	reqContext "context"
	"sync"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("connector/query")

const noSticky = -1

// Router sends queries to the query-capable peers of a channel.
type Router struct {
	channel     fab.Channel
	chaincodeID string
	peers       []fab.Peer
	timeout     time.Duration
	metrics     *metrics.ConnectorMetrics

	mutex       sync.Mutex
	stickyIndex int
}

// Option configures a Router
type Option func(*Router)

// WithTimeout bounds each single-peer attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Router) {
		r.timeout = timeout
	}
}

// WithMetrics records query metrics
func WithMetrics(m *metrics.ConnectorMetrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// NewRouter creates a router over the channel's chaincodeQuery peers. Peers of
// the caller's organization (mspID) are tried before the others.
func NewRouter(channel fab.Channel, chaincodeID, mspID string, opts ...Option) *Router {
	r := &Router{
		channel:     channel,
		chaincodeID: chaincodeID,
		peers:       orderPeers(fab.PeersInRole(channel.Peers(), fab.ChaincodeQueryRole), mspID),
		metrics:     metrics.Disabled(),
		stickyIndex: noSticky,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// orderPeers partitions peers into own-organization peers followed by the rest,
// preserving discovery order within each partition.
func orderPeers(peers []fab.Peer, mspID string) []fab.Peer {
	ordered := make([]fab.Peer, 0, len(peers))
	var others []fab.Peer
	for _, p := range peers {
		if p.MSPID() == mspID {
			ordered = append(ordered, p)
		} else {
			others = append(others, p)
		}
	}
	return append(ordered, others...)
}

// Peers returns the query peers in the order they are tried.
func (r *Router) Peers() []fab.Peer {
	return r.peers
}

// Query evaluates fcn on one peer and returns its payload.
func (r *Router) Query(ctx reqContext.Context, txID fab.TransactionID, fcn string, args [][]byte) ([]byte, error) {
	return r.QueryChaincode(ctx, txID, r.chaincodeID, fcn, args)
}

// QueryChaincode is Query against chaincodeID instead of the router's
// chaincode. An empty chaincodeID selects the router's chaincode.
func (r *Router) QueryChaincode(ctx reqContext.Context, txID fab.TransactionID, chaincodeID, fcn string, args [][]byte) ([]byte, error) {
	if chaincodeID == "" {
		chaincodeID = r.chaincodeID
	}
	if len(r.peers) == 0 {
		return nil, status.New(status.ClientStatus, status.NoPeersFound.ToInt32(), "No peers have been provided that can be used to query the chaincode", nil)
	}

	channel := r.channel.Name()
	r.metrics.QueriesReceived.With("channel", channel, "fcn", fcn).Add(1)
	start := time.Now()
	defer func() {
		r.metrics.QueryDuration.With("channel", channel, "fcn", fcn).Observe(time.Since(start).Seconds())
	}()

	request := fab.ChaincodeInvokeRequest{
		ChaincodeID: chaincodeID,
		TxnID:       txID,
		Fcn:         fcn,
		Args:        args,
	}

	failed := noSticky
	var lastErr error
	if sticky := r.sticky(); sticky != noSticky {
		payload, err := r.queryPeer(ctx, sticky, request)
		if err == nil {
			return payload, nil
		}
		logger.Warnf("Sticky peer [%s] failed, trying other peers: %s", r.peers[sticky].Name(), err)
		r.failedOver(sticky)
		failed = sticky
		lastErr = err
	}

	for i := range r.peers {
		if i == failed {
			continue
		}
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		payload, err := r.queryPeer(ctx, i, request)
		if err == nil {
			r.setSticky(i)
			return payload, nil
		}
		logger.Warnf("Query to peer [%s] failed: %s", r.peers[i].Name(), err)
		r.metrics.QueryFailovers.With("channel", channel, "peer", r.peers[i].Name()).Add(1)
		lastErr = err
	}

	r.metrics.QueriesFailed.With("channel", channel, "fcn", fcn).Add(1)
	return nil, status.New(status.ClientStatus, status.PeersUnavailable.ToInt32(),
		"No peers available to query. last error was "+lastErr.Error(), []interface{}{lastErr})
}

// queryPeer sends the query to a single peer. An error-valued payload is
// returned as an error.
func (r *Router) queryPeer(ctx reqContext.Context, index int, request fab.ChaincodeInvokeRequest) ([]byte, error) {
	peer := r.peers[index]
	request.Targets = []fab.Peer{peer}

	if r.timeout > 0 {
		var cancel reqContext.CancelFunc
		ctx, cancel = reqContext.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	responses, err := r.channel.QueryByChaincode(ctx, request)
	if err != nil {
		return nil, errors.WithMessage(err, "query to "+peer.Name()+" failed")
	}
	if len(responses) == 0 || responses[0] == nil {
		return nil, errors.New("No payloads were returned from the query request")
	}
	if responses[0].Err != nil {
		return nil, responses[0].Err
	}

	logger.Debugf("Query [%s] answered by peer [%s]", request.Fcn, peer.Name())
	return responses[0].Payload, nil
}

func (r *Router) sticky() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.stickyIndex
}

func (r *Router) setSticky(index int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.stickyIndex = index
}

// failedOver clears the sticky peer unless a concurrent query already moved it.
func (r *Router) failedOver(index int) {
	r.mutex.Lock()
	if r.stickyIndex == index {
		r.stickyIndex = noSticky
	}
	r.mutex.Unlock()
	r.metrics.QueryFailovers.With("channel", r.channel.Name(), "peer", r.peers[index].Name()).Add(1)
}
