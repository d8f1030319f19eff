// Package roapi wraps the platform's runtime activation entry points:
// per-thread runtime initialization and activation-factory acquisition by
// fully-qualified class name.
//
// Initialize must run on a thread before any dispatch happens there.
// Initialization is idempotent; the platform's already-initialized status is
// treated as success.
package roapi
