package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/algovest/staking-deployer/pkg/common/iface"
)

// LogEntry is a single buffered log line
type LogEntry struct {
	Level   string
	Message string
}

// NoopLogger prints nothing and buffers every entry so tests can assert on them.
// It is safe for concurrent use.
type NoopLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

func NewNoopLogger() *NoopLogger {
	return &NoopLogger{
		entries: make([]LogEntry, 0),
	}
}

func (l *NoopLogger) Title(msg string, args ...any) {
	l.addEntry("TITLE", fmt.Sprintf("\n"+msg+"\n", args...))
}

func (l *NoopLogger) Info(msg string, args ...any) {
	l.add("INFO", msg, args...)
}

func (l *NoopLogger) Warn(msg string, args ...any) {
	l.add("WARN", msg, args...)
}

func (l *NoopLogger) Error(msg string, args ...any) {
	l.add("ERROR", msg, args...)
}

func (l *NoopLogger) Debug(msg string, args ...any) {
	l.add("DEBUG", msg, args...)
}

// add drops blank messages the same way the zap logger does
func (l *NoopLogger) add(level, msg string, args ...any) {
	msg = strings.Trim(msg, "\n")
	if msg == "" {
		return
	}
	l.addEntry(level, fmt.Sprintf(msg, args...))
}

func (l *NoopLogger) addEntry(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: message})
}

// GetEntries returns a copy of all buffered entries
func (l *NoopLogger) GetEntries() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// GetMessagesByLevel returns the messages logged at level, in order
func (l *NoopLogger) GetMessagesByLevel(level string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var messages []string
	for _, entry := range l.entries {
		if entry.Level == level {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

func (l *NoopLogger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func (l *NoopLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

// Contains reports whether any entry contains text
func (l *NoopLogger) Contains(text string) bool {
	return l.ContainsLevel("", text)
}

// ContainsLevel reports whether an entry at level contains text. An empty level matches all.
func (l *NoopLogger) ContainsLevel(level, text string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, entry := range l.entries {
		if (level == "" || entry.Level == level) && strings.Contains(entry.Message, text) {
			return true
		}
	}
	return false
}

// NoopProgressTracker discards progress updates
type NoopProgressTracker struct{}

func NewNoopProgressTracker() *NoopProgressTracker {
	return &NoopProgressTracker{}
}

func (n *NoopProgressTracker) ProgressRows() []iface.ProgressRow { return []iface.ProgressRow{} }

func (n *NoopProgressTracker) Set(string, int, string) {}

func (n *NoopProgressTracker) Render() {}

func (n *NoopProgressTracker) Clear() {}
