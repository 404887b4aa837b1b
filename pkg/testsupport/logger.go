package testsupport

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Entry is a single log call captured by a RecordingLogger.
type Entry struct {
	Level   string
	Message string
	Args    []any
	Fields  map[string]any
}

// Arg returns the value that follows key in the entry args, if any.
func (e Entry) Arg(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}
	return nil, false
}

// RecordingLogger captures every entry in memory. Children created through
// WithFields share the same entry log.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  map[string]any
}

var (
	_ interfaces.Logger       = (*RecordingLogger)(nil)
	_ interfaces.FieldsLogger = (*RecordingLogger)(nil)
)

// NewRecordingLogger returns an empty recorder.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{
		mu:      &sync.Mutex{},
		entries: &[]Entry{},
		fields:  map[string]any{},
	}
}

func (r *RecordingLogger) Trace(msg string, args ...any) { r.record("trace", msg, args) }
func (r *RecordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *RecordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *RecordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *RecordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }
func (r *RecordingLogger) Fatal(msg string, args ...any) { r.record("fatal", msg, args) }

func (r *RecordingLogger) WithContext(context.Context) interfaces.Logger {
	return r
}

func (r *RecordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(r.fields)+len(fields))
	maps.Copy(merged, r.fields)
	maps.Copy(merged, fields)
	return &RecordingLogger{
		mu:      r.mu,
		entries: r.entries,
		fields:  merged,
	}
}

// Entries returns a copy of every captured entry.
func (r *RecordingLogger) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), (*r.entries)...)
}

// Messages returns the messages logged at level, in call order.
func (r *RecordingLogger) Messages(level string) []string {
	var out []string
	for _, entry := range r.Entries() {
		if entry.Level == level {
			out = append(out, entry.Message)
		}
	}
	return out
}

// Count returns how many entries were logged with msg.
func (r *RecordingLogger) Count(msg string) int {
	n := 0
	for _, entry := range r.Entries() {
		if entry.Message == msg {
			n++
		}
	}
	return n
}

func (r *RecordingLogger) record(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Fields:  maps.Clone(r.fields),
	})
}

// RecordingProvider returns the same recorder for every logger name and
// remembers which names were requested.
type RecordingProvider struct {
	Logger    *RecordingLogger
	Requested []string
}

// NewRecordingProvider returns a provider backed by a fresh recorder.
func NewRecordingProvider() *RecordingProvider {
	return &RecordingProvider{Logger: NewRecordingLogger()}
}

func (p *RecordingProvider) GetLogger(name string) interfaces.Logger {
	p.Requested = append(p.Requested, name)
	return p.Logger
}
