// Package describe renders the toolchains of a registry for people and
// scripts. YAML output is meant for tooling; HCL output mirrors the
// declaration syntax.
package describe
