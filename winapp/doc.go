// Package winapp bootstraps the optional platform extension (the Windows
// App SDK) so classes it hosts become activatable.
//
// The bootstrap DLL is loaded from a caller-supplied path and its
// initialize entrypoint is invoked with a packed version word and a minimum
// package version quad. Where that path comes from (an environment
// variable, a config file) is the consumer's concern, not the engine's.
package winapp
