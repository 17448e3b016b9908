// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package toolchain provides the in-memory model of toolchain declarations:
// the Tool records describing one build step each, and the Toolchain that
// groups them under a label.
//
// # Core Concepts
//
//   - Category: the kind of build step a Tool performs (cc, solink, stamp, ...).
//     It decides which placeholders and which fields are meaningful.
//
//   - Tool: the configuration of one category inside one toolchain. Tools are
//     populated by the builder through setters and then sealed.
//
//   - Toolchain: a label, the tools keyed by category, toolchain-level settings
//     and the argument overrides captured from `toolchain_args`.
//
// # Lifecycle
//
// A Toolchain is mutable only while its declaring block is being evaluated.
// SetupComplete seals every tool and freezes the toolchain; from then on the
// value is shared read-only, and any setter call panics.
package toolchain
