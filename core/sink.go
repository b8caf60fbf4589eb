package core

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Sink is the process-wide event sink. Implementations must serialize Emit calls
// so that lines from concurrently running tasks are never interleaved mid-line.
// The relative order of lines from different goroutines is timing-dependent.
type Sink interface {
	// Emit writes one line. Implementations add their own framing (timestamp,
	// trailing newline); callers pass the bare message.
	Emit(line string)
}

// =============================================================================
// StampedSink: wall-clock timestamped lines on a writer
// =============================================================================

// StampedSink prepends a wall-clock HH:MM:SS timestamp to each line and writes it
// atomically, newline-terminated, to the underlying writer.
type StampedSink struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewStampedSink creates a StampedSink writing to w.
func NewStampedSink(w io.Writer) *StampedSink {
	return &StampedSink{w: w, now: time.Now}
}

// NewStdoutSink creates a StampedSink writing to standard output.
func NewStdoutSink() *StampedSink {
	return NewStampedSink(os.Stdout)
}

// Emit writes the timestamped line. Write errors have no failure mode to expose
// to callers and are dropped.
func (s *StampedSink) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "%s %s\n", s.now().Format("15:04:05"), line)
}

// =============================================================================
// MemorySink: capture sink for tests and inspection
// =============================================================================

// MemorySink records emitted lines in memory, without timestamps, preserving
// arrival order. Useful for asserting on engine output.
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit records the line.
func (s *MemorySink) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

// Lines returns a copy of the recorded lines in arrival order.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of recorded lines.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Reset discards all recorded lines.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// NopSink discards all lines.
type NopSink struct{}

// NewNopSink creates a NopSink.
func NewNopSink() *NopSink {
	return &NopSink{}
}

// Emit discards the line.
func (s *NopSink) Emit(line string) {}
