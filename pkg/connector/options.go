/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connector

import (
	"github.com/hyperledger-archives/composer-sub009/pkg/client/lifecycle"
	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/retry"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
)

// Option configures a Connection
type Option func(c *Connection)

// WithMetrics records connection metrics to m
func WithMetrics(m *metrics.ConnectorMetrics) Option {
	return func(c *Connection) {
		c.metrics = m
	}
}

type invokeOptions struct {
	commit bool
	txnID  fab.TransactionID
	retry  *retry.Opts
}

// InvokeOption changes how InvokeChainCode submits a transaction
type InvokeOption func(o *invokeOptions)

// WithCommit(false) evaluates the function on a query peer without ordering it.
func WithCommit(commit bool) InvokeOption {
	return func(o *invokeOptions) {
		o.commit = commit
	}
}

// WithTransactionID uses txnID for the first attempt
func WithTransactionID(txnID fab.TransactionID) InvokeOption {
	return func(o *invokeOptions) {
		o.txnID = txnID
	}
}

// WithRetry overrides the retry options of the connection profile
func WithRetry(opts retry.Opts) InvokeOption {
	return func(o *invokeOptions) {
		o.retry = &opts
	}
}

type deployOptions struct {
	policy lifecycle.PolicySource
	txnID  fab.TransactionID
}

// DeployOption configures Deploy, Start and Upgrade
type DeployOption func(o *deployOptions)

// WithEndorsementPolicy sets the endorsement policy. See lifecycle.PolicySource
// for the accepted forms.
func WithEndorsementPolicy(policy interface{}) DeployOption {
	return func(o *deployOptions) {
		o.policy.Policy = policy
	}
}

// WithEndorsementPolicyFile reads the endorsement policy from a file
func WithEndorsementPolicyFile(name string) DeployOption {
	return func(o *deployOptions) {
		o.policy.File = name
	}
}

// WithDeployTransactionID uses txnID for the instantiate or upgrade transaction
func WithDeployTransactionID(txnID fab.TransactionID) DeployOption {
	return func(o *deployOptions) {
		o.txnID = txnID
	}
}

func deployRequest(args [][]byte, opts []DeployOption) lifecycle.DeployRequest {
	o := deployOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return lifecycle.DeployRequest{Args: args, Policy: o.policy, TxnID: o.txnID}
}
