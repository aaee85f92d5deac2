/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package invoke provides the handlers for performing chaincode invocations.
package invoke

import (
	reqContext "context"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
)

// Opts allows the user to specify more advanced options
type Opts struct {
	CommitTimeout   time.Duration // per commit source
	RequiredSources int           // confirmations needed
}

// Request contains the parameters to execute transaction. Version, type and
// policy only apply to instantiate and upgrade proposals.
type Request struct {
	ChaincodeID      string
	ChaincodeVersion string
	ChaincodeType    string
	Fcn              string
	Args             [][]byte
	Policy           *common.SignaturePolicyEnvelope
	Targets          []fab.Peer
}

//Response contains response parameters for query and execute transaction
type Response struct {
	Payload       []byte
	TransactionID fab.TransactionID
	Proposal      *fab.TransactionProposal
	Responses     []*fab.ProposalResponse
	// Agreed is false when endorsers returned different write sets.
	Agreed bool
}

//Handler for chaining transaction executions
type Handler interface {
	Handle(context *RequestContext, clientContext *ClientContext)
}

//ClientContext contains context parameters for handler execution
type ClientContext struct {
	Channel      fab.Channel
	EventSources []fab.EventSource
	Metrics      *metrics.ConnectorMetrics
}

//RequestContext contains request, opts, response parameters for handler execution
type RequestContext struct {
	Request  Request
	Opts     Opts
	TxnID    fab.TransactionID
	Response Response
	Error    error
	Ctx      reqContext.Context
}
