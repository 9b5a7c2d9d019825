// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/containers/pkg/util/syncutil"
	"github.com/cockroachdb/redact"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int32

// Known severities.
const (
	Severity_INFO Severity = iota + 1
	Severity_WARNING
	Severity_ERROR
)

// Char returns the one-character prefix used in the log header.
func (s Severity) Char() byte {
	switch s {
	case Severity_INFO:
		return 'I'
	case Severity_WARNING:
		return 'W'
	case Severity_ERROR:
		return 'E'
	default:
		return '?'
	}
}

// logEntry is a single formatted log event before it is written out.
type logEntry struct {
	sev     Severity
	time    time.Time
	file    string
	line    int
	counter uint64
	tags    string
	msg     redact.RedactableString
}

// loggerT is the process-wide logger. All output goes to a single
// writer, stderr by default, behind a mutex.
type loggerT struct {
	// verbosity is the V level; read atomically on the hot path.
	verbosity atomic.Int32
	// logCounter numbers the entries.
	logCounter atomic.Uint64

	mu struct {
		syncutil.Mutex
		out        io.Writer
		redactable bool
		formatter  logFormatter
	}
}

var logging = func() *loggerT {
	l := &loggerT{}
	l.mu.out = os.Stderr
	l.mu.formatter = formatCrdbV1{}
	return l
}()

// SetVerbosity sets the global V level and returns the previous one.
func SetVerbosity(level int32) (old int32) {
	return logging.verbosity.Swap(level)
}

// SetRedactable configures whether the output keeps redaction markers
// around unsafe values.
func SetRedactable(redactable bool) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.redactable = redactable
}

// setOutput redirects the log output and returns the previous writer.
func setOutput(w io.Writer) io.Writer {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	old := logging.mu.out
	logging.mu.out = w
	return old
}

// outputLogEntry formats and writes the entry.
func (l *loggerT) outputLogEntry(entry logEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.mu.redactable {
		entry.msg = redact.RedactableString(entry.msg.StripMarkers())
	}
	buf := l.mu.formatter.formatEntry(entry)
	// Errors writing logs have nowhere to go.
	_, _ = l.mu.out.Write(buf.Bytes())
}

// callerInfo returns the basename and line of the caller depth frames
// above the exported logging function.
func callerInfo(depth int) (file string, line int) {
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return "???", 1
	}
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' {
			file = file[i+1:]
			break
		}
	}
	return file, line
}
