/*
Package builder evaluates toolchain declarations into sealed toolchain
records.

A declaration file is an HCL body. Attributes become bindings in the current
scope and blocks are function calls dispatched by block type:

	toolchain "name" { ... }   defines a toolchain
	tool "category" { ... }    defines one tool inside a toolchain
	toolchain_args { ... }     captures argument overrides for a toolchain
	import "file.hcli" {}      merges the bindings of another file

Bindings and calls run in source order, so a binding is only visible to the
statements that follow it. Each tool and toolchain is validated as soon as its
block finishes, and the first error aborts the whole evaluation.
*/
package builder
