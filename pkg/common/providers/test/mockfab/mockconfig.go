/*
Copyright SecureKey Technologies Inc., Unchain B.V. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mockfab

import (
	"github.com/golang/mock/gomock"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/pkg/errors"
)

// ChannelName is the name of default mock channels
const ChannelName = "composerchannel"

// errorMessage is returned by failing mock calls
const errorMessage = "default error message"

// DefaultMockChannel returns a mock channel named ChannelName with the given peers
func DefaultMockChannel(mockCtrl *gomock.Controller, peers ...fab.Peer) *MockChannel {
	channel := NewMockChannel(mockCtrl)

	channel.EXPECT().Name().Return(ChannelName).AnyTimes()
	channel.EXPECT().Peers().Return(peers).AnyTimes()

	return channel
}

// ConnectedMockEventSource returns a mock commit source that is connected and
// accepts registrations for txID.
func ConnectedMockEventSource(mockCtrl *gomock.Controller, url string, txID string) (*MockEventSource, *fab.TxStatusReg) {
	source := NewMockEventSource(mockCtrl)
	reg := fab.NewTxStatusReg(txID)

	source.EXPECT().URL().Return(url).AnyTimes()
	source.EXPECT().IsConnected().Return(true).AnyTimes()
	source.EXPECT().RegisterTxStatusEvent(txID).Return(reg, nil)
	source.EXPECT().Unregister(reg)

	return source, reg
}

// BadConnectMockEventSource returns a disconnected mock commit source that
// fails to reconnect.
func BadConnectMockEventSource(mockCtrl *gomock.Controller, url string) *MockEventSource {
	source := NewMockEventSource(mockCtrl)

	source.EXPECT().URL().Return(url).AnyTimes()
	source.EXPECT().IsConnected().Return(false).AnyTimes()
	source.EXPECT().Connect().Return(errors.New(errorMessage)).AnyTimes()

	return source
}
