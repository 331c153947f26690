package testutil

import (
	"fmt"
	"sync"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []interface{}
}

// CapturingLogger records every call for later assertions.
type CapturingLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []interface{}
}

var _ types.Logger = (*CapturingLogger)(nil)

// NewCapturingLogger creates an empty capturing logger.
func NewCapturingLogger() *CapturingLogger {
	return &CapturingLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (l *CapturingLogger) record(level, msg string, fields []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all := append(append([]interface{}(nil), l.fields...), fields...)
	*l.entries = append(*l.entries, LogEntry{Level: level, Message: msg, Fields: all})
}

func (l *CapturingLogger) Debug(msg string, fields ...interface{}) { l.record("debug", msg, fields) }
func (l *CapturingLogger) Info(msg string, fields ...interface{})  { l.record("info", msg, fields) }
func (l *CapturingLogger) Warn(msg string, fields ...interface{})  { l.record("warn", msg, fields) }
func (l *CapturingLogger) Error(msg string, fields ...interface{}) { l.record("error", msg, fields) }
func (l *CapturingLogger) Fatal(msg string, fields ...interface{}) { l.record("fatal", msg, fields) }

func (l *CapturingLogger) WithField(key string, value interface{}) types.Logger {
	return &CapturingLogger{mu: l.mu, entries: l.entries, fields: append(append([]interface{}(nil), l.fields...), key, value)}
}

func (l *CapturingLogger) WithFields(fields map[string]interface{}) types.Logger {
	child := &CapturingLogger{mu: l.mu, entries: l.entries, fields: append([]interface{}(nil), l.fields...)}
	for k, v := range fields {
		child.fields = append(child.fields, k, v)
	}
	return child
}

// Entries returns the captured entries at level, or all when level is "".
func (l *CapturingLogger) Entries(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []LogEntry
	for _, e := range *l.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s %v", e.Level, e.Message, e.Fields)
}

// FixedRandom returns the configured values in order, repeating the last.
type FixedRandom struct {
	mu     sync.Mutex
	values []int
	index  int
}

var _ types.RandomSource = (*FixedRandom)(nil)

// NewFixedRandom creates a random source replaying values.
func NewFixedRandom(values ...int) *FixedRandom {
	if len(values) == 0 {
		values = []int{0}
	}
	return &FixedRandom{values: values}
}

func (r *FixedRandom) Next() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.values[r.index]
	if r.index < len(r.values)-1 {
		r.index++
	}
	return v
}
