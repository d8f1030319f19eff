// Package hstring wraps the platform's reference-counted immutable UTF-16
// string resource.
//
// An HString owns exactly one reference. Delete releases it; Clone takes a
// new one. The zero HString is the platform's representation of the empty
// string and is always safe to read or delete.
package hstring
