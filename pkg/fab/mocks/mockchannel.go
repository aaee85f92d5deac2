/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	reqContext "context"
	"sync"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

// QueryBehavior is what a peer answers to a query. Err is a transport
// failure; PayloadErr is an error-valued payload.
type QueryBehavior struct {
	Payload    []byte
	PayloadErr error
	Err        error
	NoResults  bool
}

// MockChannel is a mock fab.Channel. Unset results produce an error so a
// test notices unexpected calls.
type MockChannel struct {
	mutex sync.Mutex

	MockName  string
	MockPeers []fab.Peer

	Queries       map[string]QueryBehavior
	QueryCalls    []string
	QueryRequests []fab.ChaincodeInvokeRequest

	InitializeErrs  map[string]error
	InitializeCalls []string

	ProposalResult   *fab.ProposalResult
	ProposalErr      error
	ProposalRequests []fab.ChaincodeInvokeRequest

	InstantiateResult   *fab.ProposalResult
	InstantiateErr      error
	InstantiateRequests []fab.ChaincodeDeployRequest

	UpgradeResult   *fab.ProposalResult
	UpgradeErr      error
	UpgradeRequests []fab.ChaincodeDeployRequest

	TransactionStatus   common.Status
	TransactionErr      error
	TransactionRequests []fab.TransactionRequest
	// OnSendTransaction runs after a transaction is accepted, for example to
	// make commit sources emit events.
	OnSendTransaction func(req fab.TransactionRequest)

	Instantiated    *pb.ChaincodeQueryResponse
	InstantiatedErr error
}

// NewMockChannel returns a channel whose transactions are accepted by the orderer
func NewMockChannel(name string, peers ...fab.Peer) *MockChannel {
	return &MockChannel{
		MockName:          name,
		MockPeers:         peers,
		Queries:           make(map[string]QueryBehavior),
		InitializeErrs:    make(map[string]error),
		TransactionStatus: common.Status_SUCCESS,
		Instantiated:      &pb.ChaincodeQueryResponse{},
	}
}

// Name returns the channel name
func (c *MockChannel) Name() string {
	return c.MockName
}

// Peers returns the channel peers
func (c *MockChannel) Peers() []fab.Peer {
	return c.MockPeers
}

// Initialize records the target and returns its configured error
func (c *MockChannel) Initialize(ctx reqContext.Context, target fab.Peer) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.InitializeCalls = append(c.InitializeCalls, target.Name())
	return c.InitializeErrs[target.Name()]
}

// SendInstantiateProposal records the request
func (c *MockChannel) SendInstantiateProposal(ctx reqContext.Context, req fab.ChaincodeDeployRequest) (*fab.ProposalResult, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.InstantiateRequests = append(c.InstantiateRequests, req)
	return resultOrError(c.InstantiateResult, c.InstantiateErr, req.TxnID)
}

// SendUpgradeProposal records the request
func (c *MockChannel) SendUpgradeProposal(ctx reqContext.Context, req fab.ChaincodeDeployRequest) (*fab.ProposalResult, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.UpgradeRequests = append(c.UpgradeRequests, req)
	return resultOrError(c.UpgradeResult, c.UpgradeErr, req.TxnID)
}

// SendTransactionProposal records the request
func (c *MockChannel) SendTransactionProposal(ctx reqContext.Context, req fab.ChaincodeInvokeRequest) (*fab.ProposalResult, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.ProposalRequests = append(c.ProposalRequests, req)
	return resultOrError(c.ProposalResult, c.ProposalErr, req.TxnID)
}

func resultOrError(result *fab.ProposalResult, err error, txID fab.TransactionID) (*fab.ProposalResult, error) {
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("no proposal result configured")
	}
	r := *result
	r.Proposal = &fab.TransactionProposal{TxnID: txID, Proposal: &pb.Proposal{}}
	return &r, nil
}

// SendTransaction records the request and answers with TransactionStatus
func (c *MockChannel) SendTransaction(ctx reqContext.Context, req fab.TransactionRequest) (*fab.TransactionResponse, error) {
	c.mutex.Lock()
	c.TransactionRequests = append(c.TransactionRequests, req)
	status, err, hook := c.TransactionStatus, c.TransactionErr, c.OnSendTransaction
	c.mutex.Unlock()

	if err != nil {
		return nil, err
	}
	if hook != nil && status == common.Status_SUCCESS {
		hook(req)
	}
	return &fab.TransactionResponse{Orderer: "orderer.example.com", Status: status}, nil
}

// QueryByChaincode answers with the behavior configured for the single target
func (c *MockChannel) QueryByChaincode(ctx reqContext.Context, req fab.ChaincodeInvokeRequest) ([]*fab.QueryResponse, error) {
	if len(req.Targets) != 1 {
		return nil, errors.Errorf("expected exactly one target, got %d", len(req.Targets))
	}
	name := req.Targets[0].Name()

	c.mutex.Lock()
	c.QueryCalls = append(c.QueryCalls, name)
	c.QueryRequests = append(c.QueryRequests, req)
	b, ok := c.Queries[name]
	c.mutex.Unlock()

	if !ok {
		return nil, errors.Errorf("no query behavior for %s", name)
	}
	if b.Err != nil {
		return nil, b.Err
	}
	if b.NoResults {
		return nil, nil
	}
	return []*fab.QueryResponse{{Endorser: name, Payload: b.Payload, Err: b.PayloadErr}}, nil
}

// QueryInstantiatedChaincodes returns Instantiated
func (c *MockChannel) QueryInstantiatedChaincodes(ctx reqContext.Context) (*pb.ChaincodeQueryResponse, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.Instantiated, c.InstantiatedErr
}

// SetQuery configures the answer of peer to queries
func (c *MockChannel) SetQuery(peer string, b QueryBehavior) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.Queries[peer] = b
}

// ResetQueryCalls clears recorded query targets
func (c *MockChannel) ResetQueryCalls() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.QueryCalls = nil
	c.QueryRequests = nil
}

// Calls returns the recorded query targets
func (c *MockChannel) Calls() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]string(nil), c.QueryCalls...)
}
