// Package comfake builds in-process fake components for tests: real
// vtables whose entries are Go callbacks, with a live reference count and
// a configurable QueryInterface map. The dispatch engine calls them the
// same way it calls platform components, so ownership and marshalling
// behavior can be verified without a live component registry.
package comfake
