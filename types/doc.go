// Package types defines the descriptor-level type model of the engine:
// interface identities (GUIDs), platform status codes, and the closed set of
// parameter type descriptors that dispatch understands.
//
// A Desc names the high-level shape of one parameter or result. Every Desc
// reduces to exactly one abi.Kind via ABIKind; the dispatch layer relies on
// that mapping being total.
package types
