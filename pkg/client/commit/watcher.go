/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package commit waits for commit sources to report the validation result of
// a transaction.
//
// Listening is split from waiting so that every registration exists before
// the transaction reaches the orderer:
//
//	w := commit.NewWatcher(txID, sources, commit.WithTimeout(timeout))
//	if err := w.StartListening(); err != nil { ... }
//	if _, err := channel.SendTransaction(ctx, req); err != nil {
//		w.Cancel()
//		...
//	}
//	err := w.Wait(ctx)
package commit

import (
	reqContext "context"
	"fmt"
	"sync"
	"time"

	"github.com/hyperledger-archives/composer-sub009/pkg/client/metrics"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/errors/status"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/logging"
	"github.com/hyperledger-archives/composer-sub009/pkg/common/providers/fab"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var logger = logging.NewLogger("connector/commit")

const (
	// DefaultTimeout is how long each source is given to report the commit.
	DefaultTimeout = 300 * time.Second
	// DefaultRequiredSources is the number of confirmations needed by default.
	DefaultRequiredSources = 1
)

// State of one commit source for one transaction
type State int

const (
	// Idle sources have not been registered
	Idle State = iota
	// Listening sources await an event
	Listening
	// Confirmed sources reported the transaction valid
	Confirmed
	// Rejected sources reported the transaction invalid
	Rejected
	// TimedOut sources reported nothing before the deadline
	TimedOut
	// Disconnected sources dropped their connection while listening
	Disconnected
	// Cancelled sources were released because the confirmation was abandoned
	Cancelled
)

var stateNames = [...]string{"idle", "listening", "confirmed", "rejected", "timed-out", "disconnected", "cancelled"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s >= Confirmed
}

type sourceState struct {
	source fab.EventSource
	reg    *fab.TxStatusReg
	state  State
}

// Watcher confirms the commit of one transaction across several sources.
type Watcher struct {
	txID     string
	timeout  time.Duration
	required int
	channel  string
	metrics  *metrics.ConnectorMetrics

	mutex   sync.Mutex
	sources []*sourceState
	started bool
	cancel  reqContext.CancelFunc
	done    chan struct{}
	err     error
}

// Option configures a Watcher
type Option func(*Watcher)

// WithTimeout sets the per-source deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(w *Watcher) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// WithRequiredSources sets how many sources must confirm. Zero makes the
// confirmation succeed even when no source is connected.
func WithRequiredSources(required int) Option {
	return func(w *Watcher) {
		if required >= 0 {
			w.required = required
		}
	}
}

// WithMetrics records commit metrics labelled with the channel name.
func WithMetrics(m *metrics.ConnectorMetrics, channel string) Option {
	return func(w *Watcher) {
		w.metrics = m
		w.channel = channel
	}
}

// NewWatcher creates a watcher for txID. Nothing is registered until
// StartListening is called.
func NewWatcher(txID fab.TransactionID, sources []fab.EventSource, opts ...Option) *Watcher {
	w := &Watcher{
		txID:     string(txID),
		timeout:  DefaultTimeout,
		required: DefaultRequiredSources,
		metrics:  metrics.Disabled(),
		done:     make(chan struct{}),
	}
	for _, s := range sources {
		w.sources = append(w.sources, &sourceState{source: s})
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Confirm starts listening and waits in one step. Use it only when the
// transaction was ordered after the sources were registered by other means.
func Confirm(ctx reqContext.Context, txID fab.TransactionID, sources []fab.EventSource, timeout time.Duration, required int) error {
	w := NewWatcher(txID, sources, WithTimeout(timeout), WithRequiredSources(required))
	if err := w.StartListening(); err != nil {
		return err
	}
	return w.Wait(ctx)
}

// StartListening registers with every connected source and starts one
// goroutine per registration. Disconnected sources are skipped. It fails
// when no source could be registered and confirmations are required, so
// the transaction must not be ordered.
func (w *Watcher) StartListening() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.started {
		return errors.New("commit watcher already started")
	}
	w.started = true

	ctx, cancel := reqContext.WithCancel(reqContext.Background())
	w.cancel = cancel
	group, gctx := errgroup.WithContext(ctx)

	listening := 0
	for _, s := range w.sources {
		if !s.source.IsConnected() {
			logger.Debugf("Skipping disconnected commit source [%s]", s.source.URL())
			continue
		}
		reg, err := s.source.RegisterTxStatusEvent(w.txID)
		if err != nil {
			logger.Warnf("Failed to register for transaction [%s] with commit source [%s]: %s", w.txID, s.source.URL(), err)
			continue
		}
		s.reg = reg
		s.state = Listening
		listening++

		s := s
		group.Go(func() error {
			return w.listen(gctx, s)
		})
	}

	if listening == 0 && w.required > 0 {
		cancel()
		err := status.New(status.ClientStatus, status.InsufficientConfirmations.ToInt32(),
			fmt.Sprintf("No connected event sources for transaction '%s'", w.txID), nil)
		w.finish(err)
		return err
	}

	logger.Debugf("Listening for transaction [%s] on %d commit sources", w.txID, listening)
	start := time.Now()
	go func() {
		err := group.Wait()
		cancel()
		if err == nil {
			err = w.checkConfirmations()
		}
		w.metrics.CommitDuration.With("channel", w.channel).Observe(time.Since(start).Seconds())
		w.mutex.Lock()
		w.finish(err)
		w.mutex.Unlock()
	}()
	return nil
}

// finish records the verdict. The caller holds the mutex.
func (w *Watcher) finish(err error) {
	w.err = err
	if err == nil {
		w.metrics.CommitsConfirmed.With("channel", w.channel).Add(1)
	}
	close(w.done)
}

func (w *Watcher) listen(ctx reqContext.Context, s *sourceState) error {
	defer s.source.Unregister(s.reg)

	sctx, cancel := reqContext.WithTimeout(ctx, w.timeout)
	defer cancel()

	url := s.source.URL()
	select {
	case event := <-s.reg.Eventch:
		if event.TxValidationCode == pb.TxValidationCode_VALID {
			logger.Debugf("Commit source [%s] confirmed transaction [%s] in block %d", url, w.txID, event.BlockNumber)
			w.transition(s, Confirmed)
			return nil
		}
		w.transition(s, Rejected)
		w.metrics.CommitsRejected.With("channel", w.channel, "code", event.TxValidationCode.String()).Add(1)
		return status.New(status.EventServerStatus, int32(event.TxValidationCode),
			fmt.Sprintf("Peer %s has rejected transaction '%s' with code %s", url, w.txID, event.TxValidationCode), []interface{}{url})
	case err := <-s.reg.Disconnectch:
		logger.Warnf("Commit source [%s] disconnected while waiting for transaction [%s]: %v", url, w.txID, err)
		w.transition(s, Disconnected)
		return nil
	case <-sctx.Done():
		if ctx.Err() != nil {
			w.transition(s, Cancelled)
			return nil
		}
		w.transition(s, TimedOut)
		w.metrics.CommitTimeouts.With("channel", w.channel, "source", url).Add(1)
		return status.New(status.EventServerStatus, status.CommitTimeout.ToInt32(),
			fmt.Sprintf("Failed to receive commit notification from %s for transaction '%s' within the timeout period", url, w.txID), []interface{}{url})
	}
}

func (w *Watcher) transition(s *sourceState, state State) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !s.state.Terminal() {
		s.state = state
	}
}

func (w *Watcher) checkConfirmations() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	confirmed := 0
	for _, s := range w.sources {
		if s.state == Confirmed {
			confirmed++
		}
	}
	if confirmed < w.required {
		return status.New(status.ClientStatus, status.InsufficientConfirmations.ToInt32(),
			fmt.Sprintf("Insufficient commit confirmations for transaction '%s': %d of %d required", w.txID, confirmed, w.required), nil)
	}
	return nil
}

// Wait blocks until every listening source is terminal, the first rejection
// or timeout, or ctx is done. A done ctx abandons the confirmation.
func (w *Watcher) Wait(ctx reqContext.Context) error {
	w.mutex.Lock()
	started := w.started
	w.mutex.Unlock()
	if !started {
		return errors.New("commit watcher has not started listening")
	}

	select {
	case <-w.done:
	case <-ctx.Done():
		w.Cancel()
		<-w.done
		return errors.Wrapf(ctx.Err(), "waiting for commit of transaction '%s' abandoned", w.txID)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.err
}

// Cancel abandons the confirmation and releases every registration. It is a
// no-op before StartListening.
func (w *Watcher) Cancel() {
	w.mutex.Lock()
	cancel := w.cancel
	w.mutex.Unlock()
	if cancel != nil {
		cancel()
	}
}

// States returns the current state of each source keyed by URL.
func (w *Watcher) States() map[string]State {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	states := make(map[string]State, len(w.sources))
	for _, s := range w.sources {
		states[s.source.URL()] = s.state
	}
	return states
}
