// Package abi defines the machine-level parameter kinds of the component
// calling convention and the caller-owned storage cells used for
// out-parameters.
//
// Every descriptor-level type reduces to exactly one Kind. A Cell is a
// kind-tagged storage slot sized to the widest kind (8 bytes); the callee
// writes it through its address, and the caller reads it back after a
// successful call with the accessor matching the kind. Cells never outlive
// the call that allocated them.
package abi
