/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package channel enables access to a business network deployed on a channel.
package channel

import (
	reqContext "context"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/channel/invoke"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/commit"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/query"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/retry"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("connector")

// Client enables access to a channel on a Fabric network.
//
// Queries are evaluated by a single peer chosen by the query router.
// Transactions are endorsed, ordered and confirmed by the channel's commit
// sources before Execute returns.
type Client struct {
	client          fab.Client
	channel         fab.Channel
	router          *query.Router
	eventSources    []fab.EventSource
	metrics         *metrics.ConnectorMetrics
	commitTimeout   time.Duration
	requiredSources int
}

// ClientOption describes a functional parameter for the New constructor
type ClientOption func(*Client) error

// WithCommitTimeout sets how long each commit source is given per transaction
func WithCommitTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) error {
		client.commitTimeout = timeout
		return nil
	}
}

// WithRequiredSources sets how many commit sources must confirm a transaction
func WithRequiredSources(required int) ClientOption {
	return func(client *Client) error {
		if required < 0 {
			return errors.Errorf("invalid number of required event sources: %d", required)
		}
		client.requiredSources = required
		return nil
	}
}

// WithMetrics records commit metrics
func WithMetrics(m *metrics.ConnectorMetrics) ClientOption {
	return func(client *Client) error {
		client.metrics = m
		return nil
	}
}

// New returns a Client instance.
func New(client fab.Client, channel fab.Channel, router *query.Router, eventSources []fab.EventSource, opts ...ClientOption) (*Client, error) {
	channelClient := &Client{
		client:          client,
		channel:         channel,
		router:          router,
		eventSources:    eventSources,
		metrics:         metrics.Disabled(),
		commitTimeout:   commit.DefaultTimeout,
		requiredSources: commit.DefaultRequiredSources,
	}

	for _, param := range opts {
		if err := param(channelClient); err != nil {
			return nil, errors.WithMessage(err, "option failed")
		}
	}

	return channelClient, nil
}

// Query chaincode using request and optional options provided
func (cc *Client) Query(ctx reqContext.Context, request Request, options ...RequestOption) (Response, error) {
	if request.Fcn == "" {
		return Response{}, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), "functionName not specified", nil)
	}
	o, err := cc.prepareOptsFromOptions(options...)
	if err != nil {
		return Response{}, err
	}
	txnID, err := cc.transactionID(o, 1)
	if err != nil {
		return Response{}, err
	}
	if o.Timeout > 0 {
		var cancel reqContext.CancelFunc
		ctx, cancel = reqContext.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	payload, err := cc.router.QueryChaincode(ctx, txnID, request.ChaincodeID, request.Fcn, request.Args)
	if err != nil {
		return Response{}, err
	}
	return Response{Payload: payload, TransactionID: txnID}, nil
}

// Execute prepares and executes transaction using request and optional options provided
func (cc *Client) Execute(ctx reqContext.Context, request Request, options ...RequestOption) (Response, error) {
	return cc.InvokeHandler(ctx, invoke.NewExecuteHandler(), request, options...)
}

//InvokeHandler invokes handler using request and options provided
func (cc *Client) InvokeHandler(ctx reqContext.Context, handler invoke.Handler, request Request, options ...RequestOption) (Response, error) {
	if request.ChaincodeID == "" || request.Fcn == "" {
		return Response{}, status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), "ChaincodeID and Fcn are required", nil)
	}

	//Read execute tx options
	o, err := cc.prepareOptsFromOptions(options...)
	if err != nil {
		return Response{}, err
	}
	if o.Timeout > 0 {
		var cancel reqContext.CancelFunc
		ctx, cancel = reqContext.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	var retryHandler retry.Handler
	if o.Retry.Attempts > 0 {
		retryHandler = retry.New(o.Retry)
	}
	invoker := retry.NewInvoker(retryHandler, retry.WithBeforeRetry(func(err error) {
		logger.Infof("Retrying on error %s", err)
	}))

	resp, err := invoker.Invoke(ctx, func(ctx reqContext.Context, attempt int) (interface{}, error) {
		txnID, err := cc.transactionID(o, attempt)
		if err != nil {
			return nil, err
		}
		requestContext := cc.prepareRequestContext(ctx, request, o, txnID)

		//Perform action through handler
		handler.Handle(requestContext, cc.clientContext())
		if requestContext.Error != nil {
			return nil, requestContext.Error
		}
		return Response(requestContext.Response), nil
	})
	if err != nil {
		return Response{}, err
	}
	return resp.(Response), nil
}

// transactionID uses the caller's ID on the first attempt and a new one otherwise
func (cc *Client) transactionID(o requestOptions, attempt int) (fab.TransactionID, error) {
	if attempt == 1 && o.TxnID != fab.EmptyTransactionID {
		return o.TxnID, nil
	}
	txnID, err := cc.client.NewTransactionID()
	if err != nil {
		return fab.EmptyTransactionID, errors.WithMessage(err, "failed to create transaction ID")
	}
	return txnID, nil
}

func (cc *Client) clientContext() *invoke.ClientContext {
	return &invoke.ClientContext{
		Channel:      cc.channel,
		EventSources: cc.eventSources,
		Metrics:      cc.metrics,
	}
}

//prepareRequestContext prepares the context object for handlers
func (cc *Client) prepareRequestContext(ctx reqContext.Context, request Request, o requestOptions, txnID fab.TransactionID) *invoke.RequestContext {
	return &invoke.RequestContext{
		Request: invoke.Request{
			ChaincodeID:      request.ChaincodeID,
			ChaincodeVersion: request.ChaincodeVersion,
			ChaincodeType:    request.ChaincodeType,
			Fcn:              request.Fcn,
			Args:             request.Args,
			Policy:           request.Policy,
			Targets:          o.Targets,
		},
		Opts: invoke.Opts{
			CommitTimeout:   cc.commitTimeout,
			RequiredSources: cc.requiredSources,
		},
		TxnID: txnID,
		Ctx:   ctx,
	}
}

func (cc *Client) prepareOptsFromOptions(options ...RequestOption) (requestOptions, error) {
	txnOpts := requestOptions{}
	for _, option := range options {
		if err := option(&txnOpts); err != nil {
			return txnOpts, errors.WithMessage(err, "Failed to read opts")
		}
	}
	return txnOpts, nil
}
