/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	grpcCodes "google.golang.org/grpc/codes"
)

// Backoff defaults applied to a submit when the profile enables retries
// without specifying them.
const (
	DefaultAttempts       = 3
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 60 * time.Second
	DefaultBackoffFactor  = 2.0
)

// DefaultOpts default retry options
var DefaultOpts = Opts{
	Attempts:       DefaultAttempts,
	InitialBackoff: DefaultInitialBackoff,
	MaxBackoff:     DefaultMaxBackoff,
	BackoffFactor:  DefaultBackoffFactor,
	RetryableCodes: DefaultRetryableCodes,
}

// DefaultRetryableCodes lists the failures after which resubmitting a
// business network transaction can succeed. Read conflicts are included
// since a retry is a new transaction simulated against fresher state.
var DefaultRetryableCodes = map[status.Group][]status.Code{
	status.GRPCTransportStatus: {
		status.Code(grpcCodes.Unavailable),
	},
	status.EndorserServerStatus: {
		status.Code(common.Status_SERVICE_UNAVAILABLE),
		status.Code(common.Status_INTERNAL_SERVER_ERROR),
	},
	status.OrdererServerStatus: {
		status.Code(common.Status_SERVICE_UNAVAILABLE),
	},
	status.EventServerStatus: {
		status.Code(pb.TxValidationCode_MVCC_READ_CONFLICT),
		status.Code(pb.TxValidationCode_PHANTOM_READ_CONFLICT),
	},
}

// TestRetryableCodes only matches status.GenericTransient.
var TestRetryableCodes = map[status.Group][]status.Code{
	status.TestStatus: {status.GenericTransient},
}

// FillDefaults returns o with every zero field other than Attempts taken
// from DefaultOpts. Options with no attempts are returned unchanged.
func FillDefaults(o Opts) Opts {
	if o.Attempts <= 0 {
		return o
	}
	if o.InitialBackoff == 0 {
		o.InitialBackoff = DefaultInitialBackoff
	}
	if o.MaxBackoff == 0 {
		o.MaxBackoff = DefaultMaxBackoff
	}
	if o.BackoffFactor == 0 {
		o.BackoffFactor = DefaultBackoffFactor
	}
	if o.RetryableCodes == nil {
		o.RetryableCodes = DefaultRetryableCodes
	}
	return o
}
