// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"strconv"
)

type logFormatter interface {
	// formatEntry formats a logEntry into a newly allocated buffer.
	formatEntry(entry logEntry) *bytes.Buffer
}

// formatCrdbV1 renders entries as:
//
//	I261019 14:03:05.123456 12 vector.go:45 [n1,vec] message
type formatCrdbV1 struct{}

func (formatCrdbV1) formatEntry(entry logEntry) *bytes.Buffer {
	var buf bytes.Buffer
	buf.WriteByte(entry.sev.Char())
	buf.WriteString(entry.time.UTC().Format("060102 15:04:05.000000"))
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatUint(entry.counter, 10))
	buf.WriteByte(' ')
	buf.WriteString(entry.file)
	buf.WriteByte(':')
	buf.WriteString(strconv.Itoa(entry.line))
	buf.WriteByte(' ')
	if entry.tags != "" {
		buf.WriteByte('[')
		buf.WriteString(entry.tags)
		buf.WriteString("] ")
	}
	buf.WriteString(string(entry.msg))
	if n := buf.Len(); n == 0 || buf.Bytes()[n-1] != '\n' {
		buf.WriteByte('\n')
	}
	return &buf
}
