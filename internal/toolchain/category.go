// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the tool categories and the name table used to map the
// label of a `tool` block onto a Category.
package toolchain

// Category is the kind of build step a Tool performs.
type Category int

const (
	CategoryNone Category = iota

	// Compilers.
	CategoryCC
	CategoryCXX
	CategoryObjC
	CategoryObjCXX
	CategoryRC
	CategoryASM

	// Linkers.
	CategoryAlink
	CategorySolink
	CategorySolinkModule
	CategoryLink

	// Other tools.
	CategoryStamp
	CategoryCopy
	CategoryCopyBundleData
	CategoryCompileXCAssets

	numCategories
)

var categoryNames = [numCategories]string{
	CategoryNone:            "",
	CategoryCC:              "cc",
	CategoryCXX:             "cxx",
	CategoryObjC:            "objc",
	CategoryObjCXX:          "objcxx",
	CategoryRC:              "rc",
	CategoryASM:             "asm",
	CategoryAlink:           "alink",
	CategorySolink:          "solink",
	CategorySolinkModule:    "solink_module",
	CategoryLink:            "link",
	CategoryStamp:           "stamp",
	CategoryCopy:            "copy",
	CategoryCopyBundleData:  "copy_bundle_data",
	CategoryCompileXCAssets: "compile_xcassets",
}

// CategoryByName maps a tool name to its Category. Unknown names return
// CategoryNone and false.
func CategoryByName(name string) (Category, bool) {
	if name == "" {
		return CategoryNone, false
	}
	for c := CategoryCC; c < numCategories; c++ {
		if categoryNames[c] == name {
			return c, true
		}
	}
	return CategoryNone, false
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return "<invalid>"
	}
	if c == CategoryNone {
		return "<none>"
	}
	return categoryNames[c]
}

// IsCompiler reports whether c compiles a single source file.
func (c Category) IsCompiler() bool {
	return c >= CategoryCC && c <= CategoryASM
}

// IsLinker reports whether c links object files into a binary or archive.
func (c Category) IsLinker() bool {
	return c >= CategoryAlink && c <= CategoryLink
}

// IsSharedLink reports whether c produces a shared object, the only
// categories where link_output, depend_output and runtime_link_output apply.
func (c Category) IsSharedLink() bool {
	return c == CategorySolink || c == CategorySolinkModule
}

// SynthesizesOutputs reports whether outputs are derived internally rather
// than declared.
func (c Category) SynthesizesOutputs() bool {
	switch c {
	case CategoryStamp, CategoryCopy, CategoryCopyBundleData, CategoryCompileXCAssets:
		return true
	}
	return false
}

// AllCategories returns every real category in declaration order.
func AllCategories() []Category {
	out := make([]Category, 0, numCategories-1)
	for c := CategoryCC; c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}
