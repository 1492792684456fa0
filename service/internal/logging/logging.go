// Package logging builds the logrus loggers used by the service and the CLI.
package logging

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const timeFormat = "2006/01/02 15:04:05"

// TagKey is rendered as a "[tag] " prefix by CompactFormatter instead of as a
// key=value pair.
const TagKey = "tag"

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error") and format ("text", "json", "compact").
func New(w io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "compact":
		l.SetFormatter(&CompactFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: timeFormat})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return l, nil
}

// CompactFormatter writes: 2006/01/02 15:04:05 [tag] message key=value ...
// No level is written except for warnings and errors, which get a
// "WARN:"/"ERROR:" marker before the message. Remaining fields are sorted by
// key.
type CompactFormatter struct{}

// Format implements logrus.Formatter.
func (f *CompactFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(e.Time.Format(timeFormat))
	b.WriteByte(' ')

	if tag, ok := e.Data[TagKey].(string); ok && tag != "" {
		b.WriteByte('[')
		b.WriteString(tag)
		b.WriteString("] ")
	}
	switch e.Level {
	case logrus.WarnLevel:
		b.WriteString("WARN: ")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		b.WriteString("ERROR: ")
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != TagKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// Discard returns a logger that drops everything. Tests and library callers
// that pass no logger get this one.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
