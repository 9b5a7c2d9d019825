// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package containertest holds the scaffolding shared by the container
// tests: an allocator that records element lifecycles, a resource with
// injectable failures, and a slice-backed model that randomized tests run
// side by side with the real containers.
package containertest
