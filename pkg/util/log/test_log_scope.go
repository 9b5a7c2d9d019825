// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/cockroachdb/containers/pkg/util/syncutil"
)

// TestLogScope represents the lifetime of a logging output redirection
// for a test. Entries are captured in memory and dumped through t.Log
// if the test fails.
type TestLogScope struct {
	prevOut       io.Writer
	prevVerbosity int32
	mu            struct {
		syncutil.Mutex
		buf bytes.Buffer
	}
}

// Scope redirects the logging output for the duration of a test.
//
// Use as follows:
//
//	defer log.Scope(t).Close(t)
func Scope(t testing.TB) *TestLogScope {
	t.Helper()
	sc := &TestLogScope{}
	sc.prevVerbosity = logging.verbosity.Load()
	sc.prevOut = setOutput(sc)
	return sc
}

// Write implements io.Writer.
func (sc *TestLogScope) Write(p []byte) (int, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.mu.buf.Write(p)
}

// Entries returns the captured log lines.
func (sc *TestLogScope) Entries() []string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	s := strings.TrimSuffix(sc.mu.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Close restores the previous output and verbosity.
func (sc *TestLogScope) Close(t testing.TB) {
	t.Helper()
	setOutput(sc.prevOut)
	SetVerbosity(sc.prevVerbosity)
	if t.Failed() {
		for _, e := range sc.Entries() {
			t.Log(e)
		}
	}
}
