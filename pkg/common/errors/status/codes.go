/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"strconv"

	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	grpcCodes "google.golang.org/grpc/codes"
)

// Code represents a status code
type Code uint32

const (
	// OK is returned on success.
	OK Code = 0

	// Unknown represents status codes that are uncategorized or unknown to the connector
	Unknown Code = 1

	// ConnectionFailed is returned when a network connection attempt fails
	ConnectionFailed Code = 2

	// EndorsementMismatch is returned when endorsements disagree
	EndorsementMismatch Code = 3

	// Timeout operation timed out
	Timeout Code = 5

	// NoPeersFound no query-capable peers were configured
	NoPeersFound Code = 6

	// MultipleErrors multiple errors occurred
	MultipleErrors Code = 7

	// GenericTransient is generally used by tests to indicate that a retry is possible
	GenericTransient Code = 12

	// NoResponses a proposal produced no responses at all
	NoResponses Code = 30

	// PeersUnavailable every query-capable peer failed
	PeersUnavailable Code = 31

	// CommitTimeout a commit source produced no event before its deadline
	CommitTimeout Code = 32

	// InsufficientConfirmations fewer commit sources confirmed than required
	InsufficientConfirmations Code = 33

	// VersionIncompatible runtime and client versions are not compatible
	VersionIncompatible Code = 34

	// PolicyParseFailed an endorsement policy could not be parsed
	PolicyParseFailed Code = 35

	// InvalidArgument malformed caller input
	InvalidArgument Code = 36

	// OrdererRejected the ordering service did not accept a transaction
	OrdererRejected Code = 37
)

// CodeName maps the codes in this packages to human-readable strings
var CodeName = map[int32]string{
	0:  "OK",
	1:  "UNKNOWN",
	2:  "CONNECTION_FAILED",
	3:  "ENDORSEMENT_MISMATCH",
	5:  "TIMEOUT",
	6:  "NO_PEERS_FOUND",
	7:  "MULTIPLE_ERRORS",
	12: "GENERIC_TRANSIENT",
	30: "NO_RESPONSES",
	31: "PEERS_UNAVAILABLE",
	32: "COMMIT_TIMEOUT",
	33: "INSUFFICIENT_CONFIRMATIONS",
	34: "VERSION_INCOMPATIBLE",
	35: "POLICY_PARSE_FAILED",
	36: "INVALID_ARGUMENT",
	37: "ORDERER_REJECTED",
}

// ToInt32 cast to int32
func (c Code) ToInt32() int32 {
	return int32(c)
}

// String representation of the code
func (c Code) String() string {
	if s, ok := CodeName[c.ToInt32()]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// ToSDKStatusCode cast to connector status code
func ToSDKStatusCode(c int32) Code {
	return Code(c)
}

// ToGRPCStatusCode cast to gRPC status code
func ToGRPCStatusCode(c int32) grpcCodes.Code {
	return grpcCodes.Code(c)
}

// ToFabricCommonStatusCode cast to common.Status
func ToFabricCommonStatusCode(c int32) common.Status {
	return common.Status(c)
}

// ToTransactionValidationCode cast to transaction validation status code
func ToTransactionValidationCode(c int32) pb.TxValidationCode {
	return pb.TxValidationCode(c)
}
