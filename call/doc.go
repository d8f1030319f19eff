// Package call contains the indirect-call primitives of the engine: vtable
// slot lookup on a component handle, fixed-arity fast-path wrappers for the
// common getter shapes, and the raw variadic invoke the descriptor-driven
// dispatch path is built on.
//
// Everything here works on raw machine words. Ownership and type discipline
// live one layer up, in the value and signature packages.
package call
