/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package invoke

import (
	"fmt"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/commit"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/endorsement"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("connector")

// proposalSender sends one kind of proposal to the channel's endorsers
type proposalSender func(requestContext *RequestContext, clientContext *ClientContext) (*fab.ProposalResult, error)

//EndorsementHandler for handling endorse transactions
type EndorsementHandler struct {
	next Handler
	name string
	send proposalSender
}

//Handle for endorsing transactions
func (e *EndorsementHandler) Handle(requestContext *RequestContext, clientContext *ClientContext) {
	if requestContext.TxnID == fab.EmptyTransactionID {
		requestContext.Error = status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), "transaction ID is required", nil)
		return
	}
	requestContext.Response.TransactionID = requestContext.TxnID

	logger.Debugf("Sending %s proposal [%s] for chaincode [%s]", e.name, requestContext.TxnID, requestContext.Request.ChaincodeID)
	result, err := e.send(requestContext, clientContext)
	if err != nil {
		requestContext.Error = errors.WithMessage(err, "sending "+e.name+" proposal failed")
		return
	}

	requestContext.Response.Proposal = result.Proposal
	requestContext.Response.Responses = result.Responses

	//Delegate to next step if any
	if e.next != nil {
		e.next.Handle(requestContext, clientContext)
	}
}

func sendTransactionProposal(requestContext *RequestContext, clientContext *ClientContext) (*fab.ProposalResult, error) {
	r := requestContext.Request
	return clientContext.Channel.SendTransactionProposal(requestContext.Ctx, fab.ChaincodeInvokeRequest{
		ChaincodeID: r.ChaincodeID,
		TxnID:       requestContext.TxnID,
		Fcn:         r.Fcn,
		Args:        r.Args,
		Targets:     r.Targets,
	})
}

func deployRequest(requestContext *RequestContext) fab.ChaincodeDeployRequest {
	r := requestContext.Request
	return fab.ChaincodeDeployRequest{
		ChaincodeID:      r.ChaincodeID,
		ChaincodeVersion: r.ChaincodeVersion,
		ChaincodeType:    r.ChaincodeType,
		TxnID:            requestContext.TxnID,
		Fcn:              r.Fcn,
		Args:             r.Args,
		Policy:           r.Policy,
		Targets:          r.Targets,
	}
}

func sendInstantiateProposal(requestContext *RequestContext, clientContext *ClientContext) (*fab.ProposalResult, error) {
	return clientContext.Channel.SendInstantiateProposal(requestContext.Ctx, deployRequest(requestContext))
}

func sendUpgradeProposal(requestContext *RequestContext, clientContext *ClientContext) (*fab.ProposalResult, error) {
	return clientContext.Channel.SendUpgradeProposal(requestContext.Ctx, deployRequest(requestContext))
}

//EndorsementValidationHandler for transaction proposal response filtering
type EndorsementValidationHandler struct {
	next Handler
}

//Handle for Filtering proposal response
func (f *EndorsementValidationHandler) Handle(requestContext *RequestContext, clientContext *ClientContext) {
	result, err := endorsement.Validate(requestContext.Response.Responses, endorsement.WithContentAgreement())
	if err != nil {
		requestContext.Error = err
		return
	}
	if len(result.Valid) == 0 {
		requestContext.Error = status.New(status.EndorserClientStatus, status.NoResponses.ToInt32(), "No valid responses from any peers", nil)
		return
	}

	requestContext.Response.Responses = result.Valid
	requestContext.Response.Agreed = result.Agreed
	requestContext.Response.Payload = result.Valid[0].Response.GetPayload()

	//Delegate to next step if any
	if f.next != nil {
		f.next.Handle(requestContext, clientContext)
	}
}

//CommitTxHandler for committing transactions
type CommitTxHandler struct {
	next Handler
}

//Handle handles commit tx
func (c *CommitTxHandler) Handle(requestContext *RequestContext, clientContext *ClientContext) {
	txnID := requestContext.TxnID

	opts := []commit.Option{
		commit.WithTimeout(requestContext.Opts.CommitTimeout),
		commit.WithRequiredSources(requestContext.Opts.RequiredSources),
	}
	if clientContext.Metrics != nil {
		opts = append(opts, commit.WithMetrics(clientContext.Metrics, clientContext.Channel.Name()))
	}

	// Listen before ordering so that no commit event is missed.
	watcher := commit.NewWatcher(txnID, clientContext.EventSources, opts...)
	if err := watcher.StartListening(); err != nil {
		requestContext.Error = errors.WithMessage(err, "error registering for TxStatus event")
		return
	}

	response, err := clientContext.Channel.SendTransaction(requestContext.Ctx, fab.TransactionRequest{
		Proposal:  requestContext.Response.Proposal,
		Responses: requestContext.Response.Responses,
	})
	if err != nil {
		watcher.Cancel()
		requestContext.Error = errors.WithMessage(err, "SendTransaction failed")
		return
	}
	if response == nil {
		watcher.Cancel()
		requestContext.Error = status.New(status.ClientStatus, status.OrdererRejected.ToInt32(),
			fmt.Sprintf("No response from orderer for transaction '%s'", txnID), nil)
		return
	}
	logger.Debugf("Received response from orderer [%s] for transaction [%s]: %s", response.Orderer, txnID, response.Status)
	if response.Status != common.Status_SUCCESS {
		watcher.Cancel()
		requestContext.Error = status.New(status.OrdererServerStatus, int32(response.Status),
			fmt.Sprintf("Failed to send peer responses for transaction '%s' to orderer. Response status '%s'", txnID, response.Status),
			[]interface{}{response.Orderer})
		return
	}

	if err := watcher.Wait(requestContext.Ctx); err != nil {
		if !requestContext.Response.Agreed {
			logger.Warn("Peers do not agree, Read Write sets differ")
		}
		requestContext.Error = err
		return
	}

	//Delegate to next step if any
	if c.next != nil {
		c.next.Handle(requestContext, clientContext)
	}
}

//NewExecuteHandler returns execute handler with chain of EndorsementHandler, EndorsementValidationHandler and CommitHandler
func NewExecuteHandler(next ...Handler) Handler {
	return &EndorsementHandler{
		name: "transaction",
		send: sendTransactionProposal,
		next: NewEndorsementValidationHandler(NewCommitHandler(next...)),
	}
}

//NewInstantiateHandler returns a handler that instantiates a chaincode and waits for the commit
func NewInstantiateHandler(next ...Handler) Handler {
	return &EndorsementHandler{
		name: "instantiate",
		send: sendInstantiateProposal,
		next: NewEndorsementValidationHandler(NewCommitHandler(next...)),
	}
}

//NewUpgradeHandler returns a handler that upgrades a chaincode and waits for the commit
func NewUpgradeHandler(next ...Handler) Handler {
	return &EndorsementHandler{
		name: "upgrade",
		send: sendUpgradeProposal,
		next: NewEndorsementValidationHandler(NewCommitHandler(next...)),
	}
}

//NewEndorsementValidationHandler returns a handler that validates an endorsement
func NewEndorsementValidationHandler(next ...Handler) *EndorsementValidationHandler {
	return &EndorsementValidationHandler{next: getNext(next)}
}

//NewCommitHandler returns a handler that commits transaction propsal responses
func NewCommitHandler(next ...Handler) *CommitTxHandler {
	return &CommitTxHandler{next: getNext(next)}
}

func getNext(next []Handler) Handler {
	if len(next) > 0 {
		return next[0]
	}
	return nil
}
