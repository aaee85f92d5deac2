/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/golang/protobuf/proto"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// NewProposalResponse returns a structured endorsement whose proposal
// payload carries results as the proposed write set.
func NewProposalResponse(endorser string, status int32, payload []byte, results []byte) *fab.ProposalResponse {
	action, err := proto.Marshal(&pb.ChaincodeAction{
		Results:  results,
		Response: &pb.Response{Status: status, Payload: payload},
	})
	if err != nil {
		panic(err)
	}
	prp, err := proto.Marshal(&pb.ProposalResponsePayload{
		ProposalHash: []byte("hash"),
		Extension:    action,
	})
	if err != nil {
		panic(err)
	}

	return &fab.ProposalResponse{
		Endorser: endorser,
		ProposalResponse: &pb.ProposalResponse{
			Response: &pb.Response{Status: status, Payload: payload},
			Payload:  prp,
		},
	}
}

// NewErrorResponse returns an error-valued endorsement
func NewErrorResponse(endorser string, err error) *fab.ProposalResponse {
	return &fab.ProposalResponse{Endorser: endorser, Err: err}
}

// NewProposalResult wraps responses with a proposal for txID
func NewProposalResult(txID fab.TransactionID, responses ...*fab.ProposalResponse) *fab.ProposalResult {
	return &fab.ProposalResult{
		Proposal:  &fab.TransactionProposal{TxnID: txID, Proposal: &pb.Proposal{}},
		Responses: responses,
	}
}

// NewChaincodeQueryResponse lists instantiated chaincodes as name:version:path triples
func NewChaincodeQueryResponse(infos ...*pb.ChaincodeInfo) *pb.ChaincodeQueryResponse {
	return &pb.ChaincodeQueryResponse{Chaincodes: infos}
}
