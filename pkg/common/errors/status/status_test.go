/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"fmt"
	"testing"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/multi"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	grpccodes "google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

func TestStatusConstructors(t *testing.T) {
	s := New(ClientStatus, NoPeersFound.ToInt32(), "test", nil)
	assert.NotNil(t, s, "Expected status to be constructed")
	assert.EqualValues(t, NoPeersFound, ToSDKStatusCode(s.Code))
	assert.Equal(t, ClientStatus, s.Group)
	assert.Equal(t, "test", s.Message, "Expected test message")

	s = NewFromGRPCStatus(nil)
	assert.Nil(t, s)
	s = NewFromGRPCStatus(grpcstatus.New(grpccodes.DeadlineExceeded, "test"))
	assert.NotNil(t, s, "Expected status to be constructed")
	assert.EqualValues(t, grpccodes.DeadlineExceeded, ToGRPCStatusCode(s.Code))
	assert.Equal(t, GRPCTransportStatus, s.Group)
	assert.Equal(t, "test", s.Message, "Expected test message")
}

func TestNewFromProposalResponse(t *testing.T) {
	assert.Nil(t, NewFromProposalResponse(nil, ""))
	assert.Nil(t, NewFromProposalResponse(&pb.ProposalResponse{}, ""))

	s := NewFromProposalResponse(&pb.ProposalResponse{
		Response: &pb.Response{
			Status:  int32(common.Status_BAD_REQUEST),
			Message: "test",
		}}, "localhost")
	assert.NotNil(t, s, "Expected status to be constructed")
	assert.EqualValues(t, common.Status_BAD_REQUEST, ToFabricCommonStatusCode(s.Code))
	assert.Equal(t, EndorserServerStatus, s.Group)
	assert.Equal(t, "test", s.Message, "Expected test message")
	assert.Equal(t, "localhost", s.Details[0].(string))

	s = NewFromProposalResponse(&pb.ProposalResponse{
		Response: &pb.Response{
			Status:  500,
			Message: "transaction returned with failure",
			Payload: []byte("asset 42 does not exist"),
		}}, "peer0")
	assert.Equal(t, "asset 42 does not exist", s.Message, "payload should become the message")
}

func TestFromError(t *testing.T) {
	s := New(ClientStatus, NoPeersFound.ToInt32(), "test", nil)
	derivedStatus, ok := FromError(s)
	assert.True(t, ok)
	assert.Equal(t, s, derivedStatus)

	s1 := errors.Wrap(s, "test")
	derivedStatus, ok = FromError(s1)
	assert.True(t, ok)
	assert.Equal(t, s, derivedStatus)

	s1 = errors.WithMessage(s, "deploy failed")
	derivedStatus, ok = FromError(s1)
	assert.True(t, ok)
	assert.Equal(t, s, derivedStatus)

	s, ok = FromError(nil)
	assert.True(t, ok)
	assert.EqualValues(t, OK.ToInt32(), s.Code)

	_, ok = FromError(fmt.Errorf("Test"))
	assert.False(t, ok)

	errs := multi.Errors{}
	errs = append(errs, fmt.Errorf("Test"))
	s, ok = FromError(errs)
	assert.True(t, ok)
	assert.Equal(t, ClientStatus, s.Group)
	assert.EqualValues(t, MultipleErrors.ToInt32(), s.Code)
	assert.Equal(t, errs.Error(), s.Message)

	s, ok = FromError(grpcstatus.Error(grpccodes.Unavailable, "connection refused"))
	assert.True(t, ok)
	assert.Equal(t, GRPCTransportStatus, s.Group)
	assert.EqualValues(t, grpccodes.Unavailable, s.Code)
}

func TestIs(t *testing.T) {
	err := errors.WithMessage(New(EventServerStatus, CommitTimeout.ToInt32(), "no event", nil), "invoke")
	assert.True(t, Is(err, EventServerStatus, CommitTimeout.ToInt32()))
	assert.False(t, Is(err, ClientStatus, CommitTimeout.ToInt32()))
	assert.False(t, Is(fmt.Errorf("plain"), ClientStatus, Unknown.ToInt32()))
}

func TestStatusToError(t *testing.T) {
	s := New(EndorserClientStatus, NoResponses.ToInt32(), "test", nil)
	assert.Equal(t, "Endorser Client Status Code: (30) NO_RESPONSES. Description: test", s.Error())
}

func TestStatusCodeConversion(t *testing.T) {
	c := ToFabricCommonStatusCode(int32(common.Status_FORBIDDEN))
	assert.EqualValues(t, c, common.Status_FORBIDDEN)

	c1 := ToTransactionValidationCode(int32(pb.TxValidationCode_BAD_COMMON_HEADER))
	assert.EqualValues(t, c1, pb.TxValidationCode_BAD_COMMON_HEADER)

	assert.Equal(t, CodeName[OK.ToInt32()], OK.String())
	assert.Equal(t, "25999", Code(25999).String())
}

func TestStatusCodeString(t *testing.T) {
	s := Status{Group: GRPCTransportStatus, Code: int32(grpccodes.Aborted)}
	assert.Equal(t, grpccodes.Aborted.String(), s.codeString())

	s = Status{Group: OrdererServerStatus, Code: int32(common.Status_BAD_REQUEST)}
	assert.Equal(t, common.Status_BAD_REQUEST.String(), s.codeString())

	s = Status{Group: ClientStatus, Code: int32(VersionIncompatible)}
	assert.Equal(t, VersionIncompatible.String(), s.codeString())

	s = Status{Group: EventServerStatus, Code: int32(pb.TxValidationCode_MVCC_READ_CONFLICT)}
	assert.Equal(t, pb.TxValidationCode_MVCC_READ_CONFLICT.String(), s.codeString())

	s = Status{Group: EventServerStatus, Code: CommitTimeout.ToInt32()}
	assert.Equal(t, CommitTimeout.String(), s.codeString())

	s = Status{Code: int32(45779)}
	assert.Equal(t, Unknown.String(), s.codeString())
}

func TestStatusGroupString(t *testing.T) {
	assert.Equal(t, UnknownStatus.String(), Group(73777).String())
}
