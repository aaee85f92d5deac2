/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package query

import (
	reqContext "context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	promprovider "github.com/hyperledger-archives/composer-sub009/pkg/common/metrics/prometheus"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger-archives/composer-sub009/pkg/fab/mocks"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const txID = fab.TransactionID("tx1")

func newChannel(names ...string) *mocks.MockChannel {
	var peers []fab.Peer
	for _, n := range names {
		peers = append(peers, mocks.NewMockPeer(n, "grpc://"+n+":7051"))
	}
	return mocks.NewMockChannel("composerchannel", peers...)
}

func TestNoPeers(t *testing.T) {
	ch := mocks.NewMockChannel("composerchannel",
		mocks.NewMockPeerInOrg("peer0", "Org1MSP", fab.EndorsingPeerRole))
	r := NewRouter(ch, "mynet", "Org1MSP")

	_, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.Error(t, err)
	assert.True(t, status.Is(err, status.ClientStatus, status.NoPeersFound.ToInt32()))
	assert.Contains(t, err.Error(), "No peers have been provided")
	assert.Empty(t, ch.Calls())
}

func TestQueryChaincode(t *testing.T) {
	ch := newChannel("peerA")
	ch.SetQuery("peerA", mocks.QueryBehavior{Payload: []byte("a")})
	r := NewRouter(ch, "mynet", "Org1MSP")

	_, err := r.QueryChaincode(reqContext.Background(), txID, "othernet", "ping", nil)
	require.NoError(t, err)
	_, err = r.QueryChaincode(reqContext.Background(), txID, "", "ping", nil)
	require.NoError(t, err)

	require.Len(t, ch.QueryRequests, 2)
	assert.Equal(t, "othernet", ch.QueryRequests[0].ChaincodeID)
	assert.Equal(t, "mynet", ch.QueryRequests[1].ChaincodeID)
}

func TestPeerOrdering(t *testing.T) {
	ch := mocks.NewMockChannel("composerchannel",
		mocks.NewMockPeerInOrg("peer0.org2", "Org2MSP", fab.ChaincodeQueryRole),
		mocks.NewMockPeerInOrg("peer0.org1", "Org1MSP", fab.ChaincodeQueryRole),
		mocks.NewMockPeerInOrg("peer1.org2", "Org2MSP", fab.ChaincodeQueryRole),
		mocks.NewMockPeerInOrg("peer1.org1", "Org1MSP", fab.ChaincodeQueryRole),
		mocks.NewMockPeerInOrg("orderer-ish", "Org1MSP", fab.EventSourceRole),
	)
	r := NewRouter(ch, "mynet", "Org1MSP")

	var names []string
	for _, p := range r.Peers() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"peer0.org1", "peer1.org1", "peer0.org2", "peer1.org2"}, names)
}

func TestStickyPeerReused(t *testing.T) {
	ch := newChannel("peerA", "peerB")
	ch.SetQuery("peerA", mocks.QueryBehavior{Payload: []byte("a")})
	ch.SetQuery("peerB", mocks.QueryBehavior{Payload: []byte("b")})
	r := NewRouter(ch, "mynet", "Org1MSP")

	payload, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), payload)

	ch.ResetQueryCalls()
	payload, err = r.Query(reqContext.Background(), txID, "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), payload)
	assert.Equal(t, []string{"peerA"}, ch.Calls())
}

func TestFailoverMovesSticky(t *testing.T) {
	ch := newChannel("peerA", "peerB")
	ch.SetQuery("peerA", mocks.QueryBehavior{Err: errors.New("connection refused")})
	ch.SetQuery("peerB", mocks.QueryBehavior{Payload: []byte("b")})
	r := NewRouter(ch, "mynet", "Org1MSP")

	payload, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), payload)
	assert.Equal(t, []string{"peerA", "peerB"}, ch.Calls())

	ch.ResetQueryCalls()
	_, err = r.Query(reqContext.Background(), txID, "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"peerB"}, ch.Calls())
}

func TestStickyFailureSkipsFailedPeer(t *testing.T) {
	ch := newChannel("peerA", "peerB", "peerC")
	ch.SetQuery("peerA", mocks.QueryBehavior{Err: errors.New("down")})
	ch.SetQuery("peerB", mocks.QueryBehavior{Payload: []byte("b")})
	ch.SetQuery("peerC", mocks.QueryBehavior{Payload: []byte("c")})
	r := NewRouter(ch, "mynet", "Org1MSP")

	_, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.NoError(t, err)

	ch.SetQuery("peerA", mocks.QueryBehavior{Payload: []byte("a")})
	ch.SetQuery("peerB", mocks.QueryBehavior{PayloadErr: errors.New("chaincode panic")})
	ch.ResetQueryCalls()

	payload, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), payload)
	assert.Equal(t, []string{"peerB", "peerA"}, ch.Calls())
}

func TestAllPeersFail(t *testing.T) {
	ch := newChannel("peerA", "peerB")
	ch.SetQuery("peerA", mocks.QueryBehavior{Err: errors.New("first failure")})
	ch.SetQuery("peerB", mocks.QueryBehavior{PayloadErr: errors.New("the last reason")})
	r := NewRouter(ch, "mynet", "Org1MSP")

	_, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.Error(t, err)
	assert.True(t, status.Is(err, status.ClientStatus, status.PeersUnavailable.ToInt32()))
	assert.True(t, strings.HasPrefix(err.(*status.Status).Message, "No peers available to query. last error was"))
	assert.Contains(t, err.Error(), "the last reason")
	assert.Equal(t, []string{"peerA", "peerB"}, ch.Calls())
}

func TestSinglePeerNoResults(t *testing.T) {
	ch := newChannel("peerA")
	ch.SetQuery("peerA", mocks.QueryBehavior{NoResults: true})
	r := NewRouter(ch, "mynet", "Org1MSP")

	_, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No payloads were returned from the query request")
}

func TestQueryRequest(t *testing.T) {
	ch := newChannel("peerA")
	ch.SetQuery("peerA", mocks.QueryBehavior{Payload: []byte("ok")})
	r := NewRouter(ch, "mynet", "Org1MSP", WithTimeout(time.Second))

	_, err := r.Query(reqContext.Background(), txID, "getAsset", [][]byte{[]byte("a1")})
	require.NoError(t, err)
	require.Len(t, ch.QueryRequests, 1)
	req := ch.QueryRequests[0]
	assert.Equal(t, "mynet", req.ChaincodeID)
	assert.Equal(t, txID, req.TxnID)
	assert.Equal(t, "getAsset", req.Fcn)
	assert.Equal(t, [][]byte{[]byte("a1")}, req.Args)
}

func TestCancelledContextStopsFailover(t *testing.T) {
	ch := newChannel("peerA", "peerB")
	ch.SetQuery("peerA", mocks.QueryBehavior{Err: errors.New("down")})
	ch.SetQuery("peerB", mocks.QueryBehavior{Payload: []byte("b")})
	r := NewRouter(ch, "mynet", "Org1MSP")

	ctx, cancel := reqContext.WithCancel(reqContext.Background())
	cancel()
	_, err := r.Query(ctx, txID, "ping", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
	assert.Empty(t, ch.Calls())
}

func TestConcurrentQueries(t *testing.T) {
	ch := newChannel("peerA", "peerB")
	ch.SetQuery("peerA", mocks.QueryBehavior{Payload: []byte("a")})
	ch.SetQuery("peerB", mocks.QueryBehavior{Payload: []byte("b")})
	r := NewRouter(ch, "mynet", "Org1MSP")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Query(reqContext.Background(), txID, "ping", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, r.sticky())
}

func TestFailoverMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	ch := newChannel("peerA", "peerB")
	ch.SetQuery("peerA", mocks.QueryBehavior{Err: errors.New("down")})
	ch.SetQuery("peerB", mocks.QueryBehavior{Payload: []byte("b")})
	r := NewRouter(ch, "mynet", "Org1MSP", WithMetrics(metrics.NewConnectorMetrics(promprovider.NewProvider(reg))))

	_, err := r.Query(reqContext.Background(), txID, "ping", nil)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var failovers float64
	for _, mf := range families {
		if mf.GetName() == "connector_query_failovers" {
			for _, m := range mf.GetMetric() {
				failovers += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(1), failovers)
}
