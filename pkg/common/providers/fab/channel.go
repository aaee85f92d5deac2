/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	reqContext "context"

	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// Client is the part of the network SDK bound to the caller's identity.
type Client interface {
	// NewTransactionID creates a transaction ID signed by the current identity.
	NewTransactionID() (TransactionID, error)
	InstallChaincode(reqContext.Context, ChaincodeInstallRequest) ([]*ProposalResponse, error)
	QueryInstalledChaincodes(reqContext.Context, Peer) (*pb.ChaincodeQueryResponse, error)
}

// Channel is the part of the network SDK bound to one channel.
type Channel interface {
	Name() string
	Peers() []Peer

	// Initialize loads the channel configuration from the given ledger-query peer.
	Initialize(ctx reqContext.Context, target Peer) error

	SendInstantiateProposal(reqContext.Context, ChaincodeDeployRequest) (*ProposalResult, error)
	SendUpgradeProposal(reqContext.Context, ChaincodeDeployRequest) (*ProposalResult, error)
	SendTransactionProposal(reqContext.Context, ChaincodeInvokeRequest) (*ProposalResult, error)
	SendTransaction(reqContext.Context, TransactionRequest) (*TransactionResponse, error)

	QueryByChaincode(reqContext.Context, ChaincodeInvokeRequest) ([]*QueryResponse, error)
	QueryInstantiatedChaincodes(reqContext.Context) (*pb.ChaincodeQueryResponse, error)
}
