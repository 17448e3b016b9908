// internal/label/doc.go

/*
Package label provides a structured representation for toolchain and target
labels, based on the canonical format `//dir:name(//toolchain/dir:name)`.

A label names a directory relative to the source root and a name inside it.
Target labels may carry an explicit toolchain qualifier; when they do not, the
resolver fills in the build's default toolchain.

The package centralizes parsing and formatting so every component agrees on
one textual form.
*/
package label
