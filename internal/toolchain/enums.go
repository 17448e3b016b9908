// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package toolchain

// DepsFormat is the dependency file format a compiler emits.
type DepsFormat int

const (
	DepsFormatNone DepsFormat = iota
	DepsFormatGCC
	DepsFormatMSVC
)

func (f DepsFormat) String() string {
	switch f {
	case DepsFormatGCC:
		return "gcc"
	case DepsFormatMSVC:
		return "msvc"
	}
	return "none"
}

// PrecompiledHeaderType selects how a compiler consumes precompiled headers.
type PrecompiledHeaderType int

const (
	PCHNone PrecompiledHeaderType = iota
	PCHGCC
	PCHMSVC
)

func (p PrecompiledHeaderType) String() string {
	switch p {
	case PCHGCC:
		return "gcc"
	case PCHMSVC:
		return "msvc"
	}
	return "none"
}
