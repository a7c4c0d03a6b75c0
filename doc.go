// Copyright (c) 2026 The nanocol Authors
// SPDX-License-Identifier: MIT

// Package nanocol implements a columnar in-memory array library with
// lightweight compression.
//
// A value is represented as a tree of Array nodes: each node either
// holds raw buffers directly (a flat, "canonical" leaf) or is an
// encoded, smaller view over one or more child Arrays (a codec). The
// package provides the core vocabulary (DType, Scalar, Buffer,
// Validity), the codec set (Constant, Sparse, Patched, Frame-of-
// Reference, Dictionary, Run-End, Bit-Packed), canonicalization back to
// flat buffers, a small compute dispatch layer (scalar_at, slice,
// take, compare, and/or, filter), and a recursive, sample-driven
// Compress planner that picks and composes codecs.
//
// The on-disk IPC container, Parquet ingestion, logging, CLI tooling,
// benchmark harnesses, and the physical buffer allocator are explicit
// external collaborators, not responsibilities of this package — it
// consumes only a raw buffer abstraction, an external canonical sink,
// and a random source for sampling.
package nanocol
