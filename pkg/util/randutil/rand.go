// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package randutil

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/containers/pkg/util/log"
	"github.com/cockroachdb/redact"
)

// NewPseudoRand returns an instance of math/rand.Rand seeded from the current
// time, along with the seed used.
func NewPseudoRand() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return rand.New(rand.NewSource(seed)), seed
}

// NewTestRand returns an instance of math/rand.Rand seeded from
// COCKROACH_RANDOM_SEED if it is set, or from the current time otherwise.
// The seed is logged so that a failing run can be reproduced.
func NewTestRand() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	if s, ok := os.LookupEnv("COCKROACH_RANDOM_SEED"); ok {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = v
		}
	}
	log.Infof(context.Background(), "random seed: %d", redact.Safe(seed))
	return rand.New(rand.NewSource(seed)), seed
}
