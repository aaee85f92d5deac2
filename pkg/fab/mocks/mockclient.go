/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	reqContext "context"
	"fmt"
	"sync"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

// MockClient is a mock fab.Client
type MockClient struct {
	mutex sync.Mutex
	txNum int

	TxIDErr error

	InstallResponses []*fab.ProposalResponse
	InstallErr       error
	InstallRequests  []fab.ChaincodeInstallRequest

	Installed    map[string]*pb.ChaincodeQueryResponse
	InstalledErr error
}

// NewMockClient returns a new mock client
func NewMockClient() *MockClient {
	return &MockClient{Installed: make(map[string]*pb.ChaincodeQueryResponse)}
}

// NewTransactionID returns tx1, tx2, ...
func (c *MockClient) NewTransactionID() (fab.TransactionID, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.TxIDErr != nil {
		return fab.EmptyTransactionID, c.TxIDErr
	}
	c.txNum++
	return fab.TransactionID(fmt.Sprintf("tx%d", c.txNum)), nil
}

// InstallChaincode records the request and returns InstallResponses
func (c *MockClient) InstallChaincode(ctx reqContext.Context, req fab.ChaincodeInstallRequest) ([]*fab.ProposalResponse, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.InstallRequests = append(c.InstallRequests, req)
	if c.InstallErr != nil {
		return nil, c.InstallErr
	}
	return c.InstallResponses, nil
}

// QueryInstalledChaincodes returns what is configured for the peer
func (c *MockClient) QueryInstalledChaincodes(ctx reqContext.Context, peer fab.Peer) (*pb.ChaincodeQueryResponse, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.InstalledErr != nil {
		return nil, c.InstalledErr
	}
	resp, ok := c.Installed[peer.Name()]
	if !ok {
		return nil, errors.Errorf("peer %s not known", peer.Name())
	}
	return resp, nil
}
