// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package humanizeutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	testCases := []struct {
		value int64
		exp   string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{-1024, "-1.0 KiB"},
		{64 << 20, "64 MiB"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.exp, string(IBytes(tc.value)))
		v, err := ParseBytes(tc.exp)
		require.NoError(t, err)
		require.Equal(t, tc.value, v)
	}

	_, err := ParseBytes("")
	require.Error(t, err)
	_, err = ParseBytes("twelve")
	require.Error(t, err)
}
