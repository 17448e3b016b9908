// Package loader runs one configuration pass over a directory of declaration
// files.
//
// A pass evaluates the optional build-config file first. Its bindings seed
// the root scope of every other file, and it may name the default toolchain
// through default_toolchain. The remaining *.hcl files are then evaluated
// concurrently, each in its own scope, and every toolchain they define is
// inserted into a shared registry. Files may pull shared bindings from
// *.hcli files through import blocks; imported files are parsed once per
// pass.
package loader
