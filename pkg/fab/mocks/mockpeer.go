/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
)

// AllRoles are the roles a default mock peer is assigned
var AllRoles = []string{fab.EndorsingPeerRole, fab.ChaincodeQueryRole, fab.LedgerQueryRole, fab.EventSourceRole}

// MockPeer is a mock fab.Peer.
type MockPeer struct {
	MockName  string
	MockURL   string
	MockMSP   string
	MockRoles []string
}

// NewMockPeer creates basic mock peer in Org1MSP with every role
func NewMockPeer(name string, url string) *MockPeer {
	return &MockPeer{MockName: name, MockMSP: "Org1MSP", MockURL: url, MockRoles: AllRoles}
}

// NewMockPeerInOrg creates a mock peer in the given MSP with the given roles
func NewMockPeerInOrg(name string, mspID string, roles ...string) *MockPeer {
	return &MockPeer{MockName: name, MockMSP: mspID, MockURL: "grpc://" + name + ":7051", MockRoles: roles}
}

// Name returns the mock peer's mock name
func (p *MockPeer) Name() string {
	return p.MockName
}

// URL returns the mock peer's URL
func (p *MockPeer) URL() string {
	return p.MockURL
}

// MSPID gets the Peer mspID.
func (p *MockPeer) MSPID() string {
	return p.MockMSP
}

// InRole reports whether the mock peer has role
func (p *MockPeer) InRole(role string) bool {
	for _, r := range p.MockRoles {
		if r == role {
			return true
		}
	}
	return false
}
