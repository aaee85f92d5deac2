/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"context"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/multi"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/pkg/errors"
)

var logger = logging.NewLogger("connector/retry")

// Invocation is the function to be invoked. attempt starts at 1.
type Invocation func(ctx context.Context, attempt int) (interface{}, error)

// BeforeRetryHandler is a function that's invoked before
// a retry attempt.
type BeforeRetryHandler func(error)

// RetryableInvoker manages invocations that could return
// errors and retries the invocation on transient errors.
type RetryableInvoker struct {
	handler     Handler
	beforeRetry BeforeRetryHandler
}

// InvokerOpt is an invoker option
type InvokerOpt func(invoker *RetryableInvoker)

// WithBeforeRetry specifies a function to call before a retry attempt
func WithBeforeRetry(beforeRetry BeforeRetryHandler) InvokerOpt {
	return func(invoker *RetryableInvoker) {
		invoker.beforeRetry = beforeRetry
	}
}

// NewInvoker creates a new RetryableInvoker. A nil handler never retries.
func NewInvoker(handler Handler, opts ...InvokerOpt) *RetryableInvoker {
	invoker := &RetryableInvoker{
		handler: handler,
	}
	for _, opt := range opts {
		opt(invoker)
	}
	return invoker
}

// Invoke invokes the given function and performs retries according to the
// retry options. Backoff waits are abandoned when ctx is done.
func (ri *RetryableInvoker) Invoke(ctx context.Context, invocation Invocation) (interface{}, error) {
	var lastErr error

	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			logger.Debugf("Retry attempt #%d on error [%s]", attempt, lastErr)
		}

		retval, err := invocation(ctx, attempt)
		if err == nil {
			if attempt > 1 {
				logger.Debugf("Success on attempt #%d after error [%s]", attempt, lastErr)
			}
			return retval, nil
		}

		backoff, ok := ri.resolveRetry(err)
		if !ok {
			logger.Debugf("... retry for err [%s] is NOT warranted after %d attempt(s).", err, attempt)
			return nil, err
		}
		logger.Debugf("... retry for err [%s] is warranted, backing off %s", err, backoff)
		lastErr = err

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, errors.WithMessage(err, "retry abandoned: "+ctx.Err().Error())
		}
	}
}

func (ri *RetryableInvoker) resolveRetry(err error) (time.Duration, bool) {
	if ri.handler == nil {
		return 0, false
	}
	errs, ok := errors.Cause(err).(multi.Errors)
	if !ok {
		errs = multi.Errors{err}
	}
	for _, e := range errs {
		if backoff, ok := ri.handler.Required(e); ok {
			if ri.beforeRetry != nil {
				ri.beforeRetry(err)
			}
			return backoff, true
		}
	}
	return 0, false
}
