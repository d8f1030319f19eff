// Package dasync bridges platform async-operation handles to pollable
// futures.
//
// A Future owns the async-operation value it was built from. Each poll
// queries the operation's status through the shared async-info interface;
// on terminal success it dispatches get-results on the concrete operation
// interface (whose identity the value carries) and stores the final value.
// Terminal states are absorbing: once a future is done, further polls are
// no-ops.
//
// Waiting yields between polls and honors context cancellation. Closing a
// future releases its references in deterministic order but does not cancel
// the platform operation; cancellation is an explicit separate call.
package dasync
