// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

//go:build invariants || race

package buildutil

// Invariants is enabled when built with the invariants or race build tags. It
// turns the documented preconditions of the containers (valid positions,
// non-empty pops, block sizes handed back to Deallocate) into assertion
// panics, and enables the ring integrity walks in the list package.
const Invariants = true
