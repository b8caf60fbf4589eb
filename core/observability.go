package core

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting engine execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast to avoid perturbing the timing
// properties the strategies demonstrate.
type Metrics interface {
	// RecordTaskDuration records one task execution under the given policy.
	RecordTaskDuration(policy Policy, taskID string, duration time.Duration)

	// RecordSpawn records that the engine spawned one unit of work onto its
	// own goroutine under the given policy.
	RecordSpawn(policy Policy)

	// RecordInterruption records a swallowed delay interruption.
	RecordInterruption(policy Policy)

	// RecordStrategyDuration records the wall time of one full engine call
	// under the given policy. For detached runs this covers only the spawn loop.
	RecordStrategyDuration(policy Policy, duration time.Duration)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(policy Policy, taskID string, duration time.Duration) {}

// RecordSpawn is a no-op.
func (m *NilMetrics) RecordSpawn(policy Policy) {}

// RecordInterruption is a no-op.
func (m *NilMetrics) RecordInterruption(policy Policy) {}

// RecordStrategyDuration is a no-op.
func (m *NilMetrics) RecordStrategyDuration(policy Policy, duration time.Duration) {}

// =============================================================================
// Execution records and engine stats
// =============================================================================

// ExecutionRecord captures one completed task execution.
type ExecutionRecord struct {
	RunID       string
	TaskID      string
	Policy      Policy
	Declared    time.Duration
	StartedAt   time.Time
	FinishedAt  time.Time
	Interrupted bool
}

// EngineStats represents runtime observability state for an engine.
type EngineStats struct {
	RunsStarted      int64
	RunsDrained      int64
	TasksExecuted    int64
	UnitsSpawned     int64
	Interruptions    int64
	LastStrategyWall time.Duration
}

// engineCounters backs EngineStats with lock-free counters.
type engineCounters struct {
	runsStarted      atomic.Int64
	runsDrained      atomic.Int64
	tasksExecuted    atomic.Int64
	unitsSpawned     atomic.Int64
	interruptions    atomic.Int64
	lastStrategyWall atomic.Duration
}

func (c *engineCounters) snapshot() EngineStats {
	return EngineStats{
		RunsStarted:      c.runsStarted.Load(),
		RunsDrained:      c.runsDrained.Load(),
		TasksExecuted:    c.tasksExecuted.Load(),
		UnitsSpawned:     c.unitsSpawned.Load(),
		Interruptions:    c.interruptions.Load(),
		LastStrategyWall: c.lastStrategyWall.Load(),
	}
}

// =============================================================================
// Execution history ring
// =============================================================================

const defaultHistoryCapacity = 100

type executionHistory struct {
	mu    sync.Mutex
	items []ExecutionRecord
	head  int
	count int
}

func newExecutionHistory(capacity int) executionHistory {
	if capacity < 1 {
		capacity = defaultHistoryCapacity
	}
	return executionHistory{items: make([]ExecutionRecord, capacity)}
}

func (h *executionHistory) Add(record ExecutionRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return
	}

	h.items[h.head] = record
	h.head = (h.head + 1) % len(h.items)
	if h.count < len(h.items) {
		h.count++
	}
}

// Recent returns up to limit records, most recent first.
func (h *executionHistory) Recent(limit int) []ExecutionRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return nil
	}

	if limit <= 0 || limit > h.count {
		limit = h.count
	}

	out := make([]ExecutionRecord, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (h.head - 1 - i + len(h.items)) % len(h.items)
		out = append(out, h.items[idx])
	}
	return out
}

func (h *executionHistory) Last() (ExecutionRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return ExecutionRecord{}, false
	}

	idx := (h.head - 1 + len(h.items)) % len(h.items)
	return h.items[idx], true
}
