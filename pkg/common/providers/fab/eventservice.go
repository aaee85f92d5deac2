/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

import (
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// EventSource is a peer-side channel that reports transaction validation
// results once blocks are committed.
type EventSource interface {
	// URL identifies the source in logs and errors.
	URL() string

	// IsConnected reports whether the source can currently deliver events.
	IsConnected() bool

	Connect() error
	Close() error

	// RegisterTxStatusEvent subscribes to the commit status of one transaction.
	// The registration must be released with Unregister.
	RegisterTxStatusEvent(txID string) (*TxStatusReg, error)

	// Unregister removes the given registration.
	Unregister(reg *TxStatusReg)
}

// TxStatusReg is a subscription to one transaction's commit status. Eventch
// delivers the status event. Disconnectch delivers the cause when the source
// drops while the registration is live.
type TxStatusReg struct {
	TxID         string
	Eventch      chan *TxStatusEvent
	Disconnectch chan error
}

// NewTxStatusReg returns a registration with buffered channels.
func NewTxStatusReg(txID string) *TxStatusReg {
	return &TxStatusReg{
		TxID:         txID,
		Eventch:      make(chan *TxStatusEvent, 1),
		Disconnectch: make(chan error, 1),
	}
}

// TxStatusEvent contains the data for a transaction status event
type TxStatusEvent struct {
	// TxID is the ID of the transaction in which the event was set
	TxID string
	// TxValidationCode is the status code of the commit
	TxValidationCode pb.TxValidationCode
	// BlockNumber contains the block number in which the
	// transaction was committed
	BlockNumber uint64
	// SourceURL specifies the URL of the peer that produced the event
	SourceURL string
}
