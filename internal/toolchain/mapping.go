// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file maps source files and target output kinds onto the tool category
// that handles them. A downstream graph generator uses these lookups to pick
// the tool for each compile step and for each target's final output.
package toolchain

import "path"

// OutputKind is the kind of artifact a target produces.
type OutputKind int

const (
	OutputUnknown OutputKind = iota
	OutputGroup
	OutputExecutable
	OutputSharedLibrary
	OutputLoadableModule
	OutputStaticLibrary
	OutputSourceSet
	OutputCopyFiles
	OutputAction
	OutputActionForEach
	OutputBundleData
	OutputCreateBundle
)

var sourceExtensions = map[string]Category{
	".c":   CategoryCC,
	".cc":  CategoryCXX,
	".cpp": CategoryCXX,
	".cxx": CategoryCXX,
	".c++": CategoryCXX,
	".m":   CategoryObjC,
	".mm":  CategoryObjCXX,
	".rc":  CategoryRC,
	".s":   CategoryASM,
	".S":   CategoryASM,
	".asm": CategoryASM,
}

// CategoryForSourceFile returns the compiler category for a source file
// based on its extension, or CategoryNone for files nothing compiles.
func CategoryForSourceFile(file string) Category {
	if c, ok := sourceExtensions[path.Ext(file)]; ok {
		return c
	}
	return CategoryNone
}

// CategoryForOutput returns the tool that produces the final output of a
// target of kind k.
func CategoryForOutput(k OutputKind) Category {
	switch k {
	case OutputGroup, OutputSourceSet, OutputAction, OutputActionForEach,
		OutputBundleData, OutputCreateBundle:
		return CategoryStamp
	case OutputCopyFiles:
		return CategoryCopy
	case OutputExecutable:
		return CategoryLink
	case OutputSharedLibrary:
		return CategorySolink
	case OutputLoadableModule:
		return CategorySolinkModule
	case OutputStaticLibrary:
		return CategoryAlink
	}
	return CategoryNone
}
