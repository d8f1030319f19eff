//go:build windows

package dasync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Hong-Xiang/dynwinrt/call"
	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/types"
	"github.com/Hong-Xiang/dynwinrt/value"
)

// State is the future's lifecycle position.
type State uint8

const (
	StatePending State = iota
	StateReady
	StateFailed
)

var stateNames = [...]string{
	StatePending: "pending",
	StateReady:   "ready",
	StateFailed:  "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Future is a pollable view of a platform async operation. It owns the
// operation value and an async-info reference obtained at construction.
// Futures are not safe for concurrent use.
type Future struct {
	err    error
	op     value.Value
	info   value.Value
	out    value.Value
	result types.Desc
	state  State
	taken  bool
	closed bool
}

const (
	pollBackoffMin = time.Millisecond
	pollBackoffMax = 50 * time.Millisecond
)

// New builds a future over an async-operation value. The result descriptor
// names the type get-results produces on completion. On success the future
// takes ownership of op; on error ownership stays with the caller.
func New(op value.Value, result types.Desc) (*Future, error) {
	if op.Desc().Kind() != types.KindAsyncOp {
		return nil, errors.InvalidState(errors.PhaseAsync,
			"future requires an async-op value, got "+op.Desc().String())
	}
	info, err := op.Cast(types.IIDIAsyncInfo)
	if err != nil {
		return nil, err
	}
	return &Future{op: op, info: info, result: result}, nil
}

// State returns the current lifecycle position.
func (f *Future) State() State {
	return f.state
}

// Done reports whether the future reached a terminal state.
func (f *Future) Done() bool {
	return f.state != StatePending
}

// Poll performs at most one status query and the resulting transition.
// Polling a terminal future is a no-op; terminal states are absorbing. The
// returned error reports misuse only — a platform failure becomes the
// future's result, observable through Result.
func (f *Future) Poll() error {
	if f.closed {
		return errors.InvalidState(errors.PhaseAsync, "future is closed")
	}
	if f.state != StatePending {
		return nil
	}

	status, err := f.queryStatus()
	if err != nil {
		f.fail(err)
		return nil
	}
	if !status.Terminal() {
		return nil
	}

	Logger().Debug("async operation terminal", zap.Stringer("status", status))
	switch status {
	case types.AsyncCompleted:
		out, err := f.getResults()
		if err != nil {
			f.fail(err)
			return nil
		}
		f.out = out
		f.state = StateReady
	case types.AsyncCanceled:
		f.fail(errors.Canceled())
	default: // types.AsyncError
		f.fail(f.readError())
	}
	return nil
}

// Wait polls to a terminal state, yielding between polls with a capped
// backoff, and returns the final value. Context cancellation closes
// nothing; the caller decides whether to Close or keep polling later.
func (f *Future) Wait(ctx context.Context) (value.Value, error) {
	backoff := pollBackoffMin
	for {
		if err := f.Poll(); err != nil {
			return value.Value{}, err
		}
		if f.Done() {
			return f.Result()
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return value.Value{}, ctx.Err()
		case <-timer.C:
		}
		if backoff < pollBackoffMax {
			backoff *= 2
			if backoff > pollBackoffMax {
				backoff = pollBackoffMax
			}
		}
	}
}

// Result hands the terminal value to the caller, transferring ownership;
// it can succeed once. A failed future returns its error any number of
// times.
func (f *Future) Result() (value.Value, error) {
	if f.closed {
		return value.Value{}, errors.InvalidState(errors.PhaseAsync, "future is closed")
	}
	switch f.state {
	case StatePending:
		return value.Value{}, errors.InvalidState(errors.PhaseAsync, "future is not terminal yet")
	case StateFailed:
		return value.Value{}, f.err
	default:
		if f.taken {
			return value.Value{}, errors.InvalidState(errors.PhaseAsync, "result already taken")
		}
		f.taken = true
		out := f.out
		f.out = value.Value{}
		return out, nil
	}
}

// Cancel requests platform cancellation of the in-flight operation. The
// future still has to be polled to its terminal state afterwards.
func (f *Future) Cancel() error {
	if f.closed {
		return errors.InvalidState(errors.PhaseAsync, "future is closed")
	}
	obj, _ := f.info.Object()
	if hr := cancelOp(obj); hr.Failed() {
		return errors.PlatformStatus(errors.PhaseAsync, int32(hr))
	}
	return nil
}

// Close releases everything the future holds: an untaken result, the
// async-info reference, and the operation value last. It closes the
// platform operation but does not cancel it. Close is idempotent and no
// polls may follow it.
func (f *Future) Close() {
	if f.closed {
		return
	}
	f.closed = true
	if f.state == StateReady && !f.taken {
		f.out.Close()
	}
	if obj, ok := f.info.Object(); ok {
		closeOp(obj)
	}
	f.info.Close()
	f.op.Close()
}

func (f *Future) fail(err error) {
	f.state = StateFailed
	f.err = err
	Logger().Debug("async operation failed", zap.Error(err))
}

// queryStatus reads the status slot of the shared async-info interface.
func (f *Future) queryStatus() (types.AsyncStatus, error) {
	out, err := f.info.CallSingleOut(types.SlotAsyncInfoStatus, types.I32())
	if err != nil {
		return 0, err
	}
	n, _ := out.I32()
	return types.AsyncStatus(n), nil
}

// readError reads the platform error code after a terminal error status.
func (f *Future) readError() error {
	out, err := f.info.CallSingleOut(types.SlotAsyncInfoErrorCode, types.Status())
	if err != nil {
		return err
	}
	hr, _ := out.Status()
	return errors.PlatformStatus(errors.PhaseAsync, int32(hr))
}

func cancelOp(obj uintptr) types.HResult {
	return call.Call0(obj, types.SlotAsyncInfoCancel)
}

func closeOp(obj uintptr) types.HResult {
	return call.Call0(obj, types.SlotAsyncInfoClose)
}

// getResults queries the concrete operation interface the value names and
// dispatches its get-results slot.
func (f *Future) getResults() (value.Value, error) {
	concrete, err := f.op.Cast(f.op.Desc().IID())
	if err != nil {
		return value.Value{}, err
	}
	defer concrete.Close()
	return concrete.CallSingleOut(types.SlotAsyncOperationGetResults, f.result)
}
