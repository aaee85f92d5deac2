/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"sync"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// Responder acts on a fresh registration, for example by sending an event
type Responder func(src *MockEventSource, reg *fab.TxStatusReg)

// MockEventSource implements a mock commit source
type MockEventSource struct {
	mutex sync.Mutex

	MockURL     string
	Connected   bool
	ConnectErr  error
	CloseErr    error
	RegisterErr error
	Responder   Responder

	// TxStatusRegCh receives every registration
	TxStatusRegCh chan *fab.TxStatusReg

	registered   int
	unregistered int
	closed       bool
}

// NewMockEventSource returns a connected source that never answers unless a
// Responder is set.
func NewMockEventSource(url string) *MockEventSource {
	return &MockEventSource{
		MockURL:       url,
		Connected:     true,
		TxStatusRegCh: make(chan *fab.TxStatusReg, 16),
	}
}

// RespondWith sends an event with code after delay
func RespondWith(code pb.TxValidationCode, delay time.Duration) Responder {
	return func(src *MockEventSource, reg *fab.TxStatusReg) {
		time.Sleep(delay)
		reg.Eventch <- &fab.TxStatusEvent{TxID: reg.TxID, TxValidationCode: code, SourceURL: src.MockURL}
	}
}

// DisconnectWith drops the connection after delay
func DisconnectWith(err error, delay time.Duration) Responder {
	return func(src *MockEventSource, reg *fab.TxStatusReg) {
		time.Sleep(delay)
		src.mutex.Lock()
		src.Connected = false
		src.mutex.Unlock()
		reg.Disconnectch <- err
	}
}

// URL returns the source URL
func (m *MockEventSource) URL() string {
	return m.MockURL
}

// IsConnected reports the Connected flag
func (m *MockEventSource) IsConnected() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.Connected
}

// Connect sets Connected unless ConnectErr is set
func (m *MockEventSource) Connect() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.Connected = true
	return nil
}

// Close disconnects the source
func (m *MockEventSource) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Connected = false
	m.closed = true
	return m.CloseErr
}

// RegisterTxStatusEvent registers for transaction status events.
func (m *MockEventSource) RegisterTxStatusEvent(txID string) (*fab.TxStatusReg, error) {
	m.mutex.Lock()
	if m.RegisterErr != nil {
		m.mutex.Unlock()
		return nil, m.RegisterErr
	}
	m.registered++
	responder := m.Responder
	m.mutex.Unlock()

	reg := fab.NewTxStatusReg(txID)
	select {
	case m.TxStatusRegCh <- reg:
	default:
	}
	if responder != nil {
		go responder(m, reg)
	}
	return reg, nil
}

// Unregister removes the given registration.
func (m *MockEventSource) Unregister(reg *fab.TxStatusReg) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.unregistered++
}

// Registrations returns the number of registrations and unregistrations
func (m *MockEventSource) Registrations() (registered, unregistered int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.registered, m.unregistered
}

// Closed reports whether Close was called
func (m *MockEventSource) Closed() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.closed
}
