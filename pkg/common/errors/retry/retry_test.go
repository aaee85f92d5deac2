/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"fmt"
	"testing"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/assert"
)

func TestRetryRequired(t *testing.T) {
	attempts := 3
	transientErr := status.New(status.EventServerStatus,
		int32(pb.TxValidationCode_MVCC_READ_CONFLICT), "", nil)
	nonTransientErr := status.New(status.EndorserServerStatus,
		int32(common.Status_BAD_REQUEST), "", nil)
	unknownErr := fmt.Errorf("Unknown")

	r := New(Opts{
		Attempts:       attempts,
		BackoffFactor:  2,
		InitialBackoff: 1 * time.Millisecond,
		MaxBackoff:     1 * time.Second,
	})
	for i := 1; i <= attempts; i++ {
		_, ok := r.Required(transientErr)
		assert.True(t, ok, "Expected retry to be required on transient error")
	}
	_, ok := r.Required(transientErr)
	assert.False(t, ok, "Expected retry to not be required after exhausting attempts")

	_, ok = WithDefaults().Required(nonTransientErr)
	assert.False(t, ok, "Expected retry to not be required on non-transient error")
	_, ok = WithAttempts(2).Required(unknownErr)
	assert.False(t, ok, "Expected retry to not be required on unknown error")
}

func TestCommitRejectionsAreRetryable(t *testing.T) {
	r := WithDefaults()
	_, ok := r.Required(status.New(status.EventServerStatus, int32(pb.TxValidationCode_PHANTOM_READ_CONFLICT), "", nil))
	assert.True(t, ok)
	_, ok = r.Required(status.New(status.EventServerStatus, int32(pb.TxValidationCode_ENDORSEMENT_POLICY_FAILURE), "", nil))
	assert.False(t, ok, "policy failures are not transient")
	_, ok = r.Required(status.New(status.EventServerStatus, status.CommitTimeout.ToInt32(), "", nil))
	assert.False(t, ok, "a commit timeout may still commit, so it must not be resubmitted")
}

func TestBackoffPeriod(t *testing.T) {
	testBackoffFactor := 3.34
	testInitialBackoff := 2 * time.Second
	floatInitBackoff := float64(testInitialBackoff)
	testMaxBackoff := 30 * time.Second
	r := New(Opts{
		Attempts:       10,
		BackoffFactor:  testBackoffFactor,
		InitialBackoff: testInitialBackoff,
		MaxBackoff:     testMaxBackoff,
	})
	i := r.(*impl)
	assert.Equal(t, testInitialBackoff, i.backoffPeriod(), "Expected initial backoff on first attempt")
	i.retries = 1
	assert.Equal(t, time.Duration(floatInitBackoff*testBackoffFactor), i.backoffPeriod(),
		"Expected initial backoff multiplied by backoff factor on second attempt")
	i.retries = 2
	assert.Equal(t, time.Duration(floatInitBackoff*testBackoffFactor*testBackoffFactor),
		i.backoffPeriod(), "Expected exponential backoff")
	i.retries = 3
	assert.Equal(t, testMaxBackoff, i.backoffPeriod(), "Expected max backoff")
}

func TestFillDefaults(t *testing.T) {
	assert.Equal(t, Opts{}, FillDefaults(Opts{}), "disabled retries stay disabled")

	o := FillDefaults(Opts{Attempts: 5, MaxBackoff: time.Second})
	assert.Equal(t, 5, o.Attempts)
	assert.Equal(t, time.Second, o.MaxBackoff)
	assert.Equal(t, DefaultInitialBackoff, o.InitialBackoff)
	assert.Equal(t, DefaultBackoffFactor, o.BackoffFactor)
	assert.Equal(t, DefaultRetryableCodes, o.RetryableCodes)
}
