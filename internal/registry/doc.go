// Package registry provides the store that completed toolchains are handed to.
//
// The Registry maps toolchain labels to sealed toolchain records and remembers
// which toolchain is the build's default. Declaration files may be evaluated
// concurrently, so inserts are serialized with a mutex while lookups take the
// read lock.
//
// Once a configuration pass is complete, Validate cross-checks references
// between toolchains so that a dependency on an undefined toolchain is
// reported before any build graph is generated.
package registry
