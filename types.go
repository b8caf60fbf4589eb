package taskstrat

import "github.com/aritram1/go-task-strategies/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the taskstrat package for most use cases.

// Task is an immutable unit of work with an identifier and a declared duration
type Task = core.Task

// Policy selects one of the four execution strategies
type Policy = core.Policy

// Engine executes ordered task lists under a policy
type Engine = core.Engine

// EngineConfig holds engine collaborators (Sink, Logger, Metrics, history capacity)
type EngineConfig = core.EngineConfig

// StrategyRun is the ephemeral record of one strategy execution
type StrategyRun = core.StrategyRun

// ExecutionHandle references one in-flight unit of work
type ExecutionHandle = core.ExecutionHandle

// RunMode distinguishes awaited from detached (fire-and-forget) runs
type RunMode = core.RunMode

// RunState is the lifecycle state of a StrategyRun
type RunState = core.RunState

// Sink is the serialized line sink for task events
type Sink = core.Sink

// Logger is the structured diagnostics logger
type Logger = core.Logger

// Field is a key-value pair for structured logging
type Field = core.Field

// Metrics records engine execution metrics
type Metrics = core.Metrics

// ExecutionRecord captures one completed task execution
type ExecutionRecord = core.ExecutionRecord

// EngineStats is a snapshot of engine counters
type EngineStats = core.EngineStats

// Policy constants
const (
	PolicySequential Policy = core.PolicySequential
	PolicyDetached   Policy = core.PolicyDetached
	PolicyLockstep   Policy = core.PolicyLockstep
	PolicyBatched    Policy = core.PolicyBatched
)

// Run mode constants
const (
	RunModeAwaited  RunMode = core.RunModeAwaited
	RunModeDetached RunMode = core.RunModeDetached
)

// Run state constants
const (
	RunStateIdle    RunState = core.RunStateIdle
	RunStateRunning RunState = core.RunStateRunning
	RunStateDrained RunState = core.RunStateDrained
)

// Task construction and parsing
var (
	NewTask       = core.NewTask
	MustTask      = core.MustTask
	ParseTask     = core.ParseTask
	ParseTaskList = core.ParseTaskList
)

// Engine construction
var (
	NewEngine           = core.NewEngine
	DefaultEngineConfig = core.DefaultEngineConfig
)

// Policy helpers
var (
	AllPolicies = core.AllPolicies
	ParsePolicy = core.ParsePolicy
)

// Sinks
var (
	NewStampedSink = core.NewStampedSink
	NewStdoutSink  = core.NewStdoutSink
	NewMemorySink  = core.NewMemorySink
	NewNopSink     = core.NewNopSink
)

// Loggers
var (
	NewNoOpLogger        = core.NewNoOpLogger
	NewZapLogger         = core.NewZapLogger
	NewDevelopmentLogger = core.NewDevelopmentLogger
	F                    = core.F
)
