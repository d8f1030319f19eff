// Package value implements the engine's tagged values and the ownership
// discipline that goes with them.
//
// A Value pairs a type descriptor with the platform resource it wraps. For
// reference-counted resources (component handles, platform strings) the
// value owns exactly one reference: Close releases it, Clone takes another.
// Construction from a raw word always adopts a reference the platform has
// already incremented; construction never increments on its own.
//
// All reference-count arithmetic in the engine happens in this package.
package value
