// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	if tags := formatTags(ctx); tags != "" {
		buf.WriteByte('[')
		buf.WriteString(tags)
		buf.WriteString("] ")
	}
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

func formatTags(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return ""
	}
	return tags.String()
}

// addStructured creates a structured log entry and writes it to the
// main logger.
func addStructured(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) {
	file, line := callerInfo(depth + 1)
	entry := logEntry{
		sev:     sev,
		time:    now(),
		file:    file,
		line:    line,
		counter: logging.logCounter.Add(1),
		tags:    formatTags(ctx),
		msg:     redact.Sprintf(format, args...),
	}
	logging.outputLogEntry(entry)
}
