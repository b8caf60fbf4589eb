package core

// EngineConfig holds configuration options for an Engine.
// All collaborators are optional; if not provided, defaults are used.
type EngineConfig struct {
	// Sink receives the timestamped task event lines. Defaults to a
	// StampedSink on standard output.
	Sink Sink

	// Logger receives engine diagnostics. Defaults to NoOpLogger.
	Logger Logger

	// Metrics records execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// HistoryCapacity bounds the execution history ring. Defaults to 100.
	HistoryCapacity int
}

// DefaultEngineConfig returns a config with default collaborators.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Sink:            NewStdoutSink(),
		Logger:          NewNoOpLogger(),
		Metrics:         &NilMetrics{},
		HistoryCapacity: defaultHistoryCapacity,
	}
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.Sink == nil {
		c.Sink = NewStdoutSink()
	}
	if c.Logger == nil {
		c.Logger = NewNoOpLogger()
	}
	if c.Metrics == nil {
		c.Metrics = &NilMetrics{}
	}
	if c.HistoryCapacity < 1 {
		c.HistoryCapacity = defaultHistoryCapacity
	}
	return c
}
