// Package errors provides structured error types for the dynwinrt library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the originating HRESULT,
// the runtime class or interface identity involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
//		Detail("argument 0: expected i32, got hstring").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.PlatformStatus(errors.PhaseDispatch, hr)
//	err := errors.NoInterface(iid)
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Phase and Kind only, so sentinel targets
// can be built with just those two fields.
package errors
