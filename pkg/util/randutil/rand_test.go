// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package randutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTestRandHonorsSeed(t *testing.T) {
	t.Setenv("COCKROACH_RANDOM_SEED", "42")
	r1, seed := NewTestRand()
	require.Equal(t, int64(42), seed)
	r2, _ := NewTestRand()
	require.Equal(t, r1.Int63(), r2.Int63())

	_, seed = NewPseudoRand()
	require.NotZero(t, seed)
}
