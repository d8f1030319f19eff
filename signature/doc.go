// Package signature models interfaces and methods as plain data.
//
// A Method is built by appending parameters in call order, each tagged with
// a direction, then finalizing with a vtable slot. Finalization precomputes
// the low-level call descriptor: the ordered ABI kinds the method presents
// to the indirect-call engine (receiver first, every out-parameter as a
// pointer, status-code return).
//
// An Interface carries an identity GUID, a kind (plain or extended, which
// fixes the first user-method slot at 3 or 6), and its ordered methods.
// Interface equality is by identity only: two descriptors with the same
// GUID describe the same contract and are interchangeable for dispatch.
package signature
