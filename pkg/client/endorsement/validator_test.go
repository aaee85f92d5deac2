/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package endorsement

import (
	"testing"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	"github.com/hyperledger-archives/composer-sub009/pkg/fab/mocks"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmpty(t *testing.T) {
	for _, responses := range [][]*fab.ProposalResponse{nil, {}} {
		_, err := Validate(responses)
		require.Error(t, err)
		s, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, status.EndorserClientStatus, s.Group)
		assert.EqualValues(t, status.NoResponses, s.Code)
	}
}

func TestValidateSuccess(t *testing.T) {
	responses := []*fab.ProposalResponse{
		mocks.NewProposalResponse("peer0", 200, []byte("a"), []byte("rw")),
		mocks.NewProposalResponse("peer1", 200, []byte("a"), []byte("rw")),
	}

	result, err := Validate(responses)
	require.NoError(t, err)
	assert.Len(t, result.Valid, 2)
	assert.Equal(t, 0, result.Ignored)
	assert.True(t, result.Agreed)

	result, err = Validate(responses, WithContentAgreement())
	require.NoError(t, err)
	assert.True(t, result.Agreed)
}

func TestValidateIgnorablePattern(t *testing.T) {
	installed := errors.New("chaincode mynet:0.1.0 exists")

	result, err := Validate([]*fab.ProposalResponse{mocks.NewErrorResponse("peer0", installed)},
		WithIgnorablePattern(AlreadyInstalledPattern))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Ignored)
	assert.Empty(t, result.Valid)

	_, err = Validate([]*fab.ProposalResponse{mocks.NewErrorResponse("peer0", installed)})
	assert.True(t, err == installed, "error must be returned unmodified")
}

func TestValidateErrorNotMatchingPattern(t *testing.T) {
	cause := errors.New("access denied")
	responses := []*fab.ProposalResponse{
		mocks.NewErrorResponse("peer0", errors.New("chaincode mynet:0.1.0 exists")),
		mocks.NewErrorResponse("peer1", cause),
	}

	_, err := Validate(responses, WithIgnorablePattern(AlreadyInstalledPattern))
	assert.True(t, err == cause)
}

func TestValidateBadStatus(t *testing.T) {
	responses := []*fab.ProposalResponse{
		mocks.NewProposalResponse("peer0", 200, []byte("a"), nil),
		mocks.NewProposalResponse("peer1", 500, []byte("Error: asset does not exist"), nil),
	}

	_, err := Validate(responses)
	require.Error(t, err)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.EndorserServerStatus, s.Group)
	assert.EqualValues(t, 500, s.Code)
	assert.Equal(t, "Error: asset does not exist", s.Message)
	assert.Equal(t, "peer1", s.Details[0])
}

func TestValidateEmptyStructuredResponse(t *testing.T) {
	_, err := Validate([]*fab.ProposalResponse{{Endorser: "peer0", ProposalResponse: &pb.ProposalResponse{}}})
	assert.True(t, status.Is(err, status.EndorserClientStatus, status.NoResponses.ToInt32()))
}

func TestValidateNilResponse(t *testing.T) {
	_, err := Validate([]*fab.ProposalResponse{nil, nil}, WithIgnorablePattern(AlreadyInstalledPattern))
	assert.True(t, status.Is(err, status.EndorserClientStatus, status.NoResponses.ToInt32()))

	_, err = Validate([]*fab.ProposalResponse{mocks.NewProposalResponse("peer0", 200, []byte("a"), nil), nil})
	assert.True(t, status.Is(err, status.EndorserClientStatus, status.NoResponses.ToInt32()))
}

func TestValidateDisagreementIsWarning(t *testing.T) {
	responses := []*fab.ProposalResponse{
		mocks.NewProposalResponse("peer0", 200, []byte("a"), []byte("rw-1")),
		mocks.NewProposalResponse("peer1", 200, []byte("a"), []byte("rw-2")),
	}

	result, err := Validate(responses, WithContentAgreement())
	require.NoError(t, err)
	assert.False(t, result.Agreed)
	assert.Len(t, result.Valid, 2)

	result, err = Validate(responses)
	require.NoError(t, err)
	assert.True(t, result.Agreed, "agreement is only checked on request")
}

func TestWriteSetFallsBackToPayload(t *testing.T) {
	r := &fab.ProposalResponse{ProposalResponse: &pb.ProposalResponse{
		Response: &pb.Response{Status: 200},
		Payload:  []byte{0xff, 0xff, 0xff},
	}}
	assert.Equal(t, []byte{0xff, 0xff, 0xff}, writeSet(r))
}
