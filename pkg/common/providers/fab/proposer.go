/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// TransactionID provides the identifier of a Fabric transaction proposal.
type TransactionID string

// EmptyTransactionID represents a non-existing transaction (usually due to error).
const EmptyTransactionID = TransactionID("")

// ChaincodeInvokeRequest contains the parameters for sending a transaction proposal
// or a query. An empty Targets list lets the SDK choose the channel's endorsers.
type ChaincodeInvokeRequest struct {
	ChaincodeID string
	TxnID       TransactionID
	Fcn         string
	Args        [][]byte
	Targets     []Peer
}

// ChaincodeInstallRequest requests installation of a chaincode package.
type ChaincodeInstallRequest struct {
	ChaincodeID      string
	ChaincodeVersion string
	ChaincodePath    string
	ChaincodeType    string
	Package          []byte
	TxnID            TransactionID
	Targets          []Peer
}

// ChaincodeDeployRequest requests instantiation or upgrade of a chaincode.
type ChaincodeDeployRequest struct {
	ChaincodeID      string
	ChaincodeVersion string
	ChaincodeType    string
	TxnID            TransactionID
	Fcn              string
	Args             [][]byte
	Policy           *common.SignaturePolicyEnvelope
	Targets          []Peer
}

// TransactionProposal contains a marshalled transaction proposal.
type TransactionProposal struct {
	TxnID TransactionID
	*pb.Proposal
}

// ProposalResponse is the outcome of sending a proposal to one endorser. Either
// Err is set, or the embedded structured response is.
type ProposalResponse struct {
	Endorser string
	Err      error
	*pb.ProposalResponse
}

// ProposalResult is what an SDK returns for a proposal sent to several endorsers.
type ProposalResult struct {
	Proposal  *TransactionProposal
	Responses []*ProposalResponse
}

// TransactionRequest asks the ordering service to order endorsed responses.
type TransactionRequest struct {
	Proposal  *TransactionProposal
	Responses []*ProposalResponse
}

// TransactionResponse is the ordering service's answer to a broadcast.
type TransactionResponse struct {
	Orderer string
	Status  common.Status
}

// QueryResponse is one peer's answer to a query. An error-valued payload is
// reported through Err, distinct from the transport error of the call itself.
type QueryResponse struct {
	Endorser string
	Payload  []byte
	Err      error
}
