/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package endorsement validates the responses endorsers return for a proposal.
package endorsement

import (
	"bytes"
	"net/http"
	"regexp"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

var logger = logging.NewLogger("connector/endorsement")

// AlreadyInstalledPattern matches the error peers return when a chaincode
// package with the same name and version is already installed.
var AlreadyInstalledPattern = regexp.MustCompile(`chaincode .+ exists`)

// Result summarizes a validated batch
type Result struct {
	// Valid holds the structured successful responses in input order.
	Valid []*fab.ProposalResponse
	// Ignored counts error responses matched by the ignorable pattern.
	Ignored int
	// Agreed is false when content agreement was requested and write sets differed.
	Agreed bool
}

type options struct {
	ignorable        *regexp.Regexp
	contentAgreement bool
}

// Option configures validation
type Option func(*options)

// WithIgnorablePattern tolerates error responses whose message matches p.
func WithIgnorablePattern(p *regexp.Regexp) Option {
	return func(o *options) {
		o.ignorable = p
	}
}

// WithContentAgreement compares the proposed write sets of every valid response.
func WithContentAgreement() Option {
	return func(o *options) {
		o.contentAgreement = true
	}
}

// Validate checks a batch of endorsement responses.
//
// An error-valued response is returned unmodified unless it matches the
// ignorable pattern. A structured response with a status other than 200 fails
// with an EndorserServerStatus error carrying the response payload. Disagreeing
// write sets are logged and reported in Result.Agreed, never returned as an
// error.
func Validate(responses []*fab.ProposalResponse, opts ...Option) (*Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if len(responses) == 0 {
		return nil, status.New(status.EndorserClientStatus, status.NoResponses.ToInt32(), "No results were returned from the request", nil)
	}

	result := &Result{Agreed: true}
	for _, r := range responses {
		if r == nil {
			return nil, status.New(status.EndorserClientStatus, status.NoResponses.ToInt32(), "an endorser returned no response", nil)
		}
		if r.Err != nil {
			if o.ignorable != nil && o.ignorable.MatchString(r.Err.Error()) {
				logger.Warnf("Ignoring response from endorser [%s]: %s", r.Endorser, r.Err)
				result.Ignored++
				continue
			}
			return nil, r.Err
		}
		if r.ProposalResponse == nil || r.Response == nil {
			return nil, status.New(status.EndorserClientStatus, status.NoResponses.ToInt32(), "endorser "+r.Endorser+" returned an empty response", nil)
		}
		if r.Response.Status != http.StatusOK {
			logger.Debugf("Endorser [%s] returned status %d", r.Endorser, r.Response.Status)
			return nil, status.NewFromProposalResponse(r.ProposalResponse, r.Endorser)
		}
		result.Valid = append(result.Valid, r)
	}

	if o.contentAgreement && !writeSetsAgree(result.Valid) {
		logger.Warn("Peers do not agree, Read Write sets differ")
		result.Agreed = false
	}

	return result, nil
}

func writeSetsAgree(responses []*fab.ProposalResponse) bool {
	if len(responses) < 2 {
		return true
	}
	first := writeSet(responses[0])
	for _, r := range responses[1:] {
		if !bytes.Equal(first, writeSet(r)) {
			logger.Debugf("Write set from [%s] differs from [%s]", r.Endorser, responses[0].Endorser)
			return false
		}
	}
	return true
}

// writeSet extracts the simulation results from a response. When the payload
// cannot be decoded the raw payload is compared instead.
func writeSet(r *fab.ProposalResponse) []byte {
	prp := &pb.ProposalResponsePayload{}
	if err := proto.Unmarshal(r.Payload, prp); err != nil {
		return r.Payload
	}
	action := &pb.ChaincodeAction{}
	if err := proto.Unmarshal(prp.Extension, action); err != nil {
		return r.Payload
	}
	return action.Results
}
