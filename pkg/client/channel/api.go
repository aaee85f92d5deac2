/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package channel

import (
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/retry"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/pkg/errors"
)

// opts allows the user to specify more advanced options
type requestOptions struct {
	Targets []fab.Peer // targets
	Timeout time.Duration
	Retry   retry.Opts
	TxnID   fab.TransactionID
}

// RequestOption func for each Opts argument
type RequestOption func(opts *requestOptions) error

// Request contains the parameters to query and execute an invocation
// transaction. Queries always go to the chaincode of the client's router.
type Request struct {
	ChaincodeID      string
	ChaincodeVersion string
	ChaincodeType    string
	Fcn              string
	Args             [][]byte
	Policy           *common.SignaturePolicyEnvelope
}

//Response contains response parameters for query and execute an invocation transaction
type Response struct {
	Payload       []byte
	TransactionID fab.TransactionID
	Proposal      *fab.TransactionProposal
	Responses     []*fab.ProposalResponse
	Agreed        bool
}

//WithTimeout bounds the whole request, including retries
func WithTimeout(timeout time.Duration) RequestOption {
	return func(o *requestOptions) error {
		o.Timeout = timeout
		return nil
	}
}

//WithTargets encapsulates ProposalProcessors to Option
func WithTargets(targets ...fab.Peer) RequestOption {
	return func(o *requestOptions) error {
		o.Targets = targets
		return nil
	}
}

// WithRetry option to configure retries. Every retry uses a new transaction ID.
func WithRetry(retryOpt retry.Opts) RequestOption {
	return func(o *requestOptions) error {
		o.Retry = retryOpt
		return nil
	}
}

// WithTxnID uses the given transaction ID for the first attempt
func WithTxnID(txnID fab.TransactionID) RequestOption {
	return func(o *requestOptions) error {
		if txnID == fab.EmptyTransactionID {
			return errors.New("empty transaction ID")
		}
		o.TxnID = txnID
		return nil
	}
}
