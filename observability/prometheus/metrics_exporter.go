package prometheus

import (
	"errors"
	"fmt"
	"time"

	"github.com/aritram1/go-task-strategies/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	TaskDurationBuckets     []float64
	StrategyDurationBuckets []float64
}

// MetricsExporter adapts core.Metrics to Prometheus collectors.
// All series are labeled by policy so the four strategies can be compared.
type MetricsExporter struct {
	taskDurationSeconds     *prom.HistogramVec
	strategyDurationSeconds *prom.HistogramVec
	spawnTotal              *prom.CounterVec
	interruptionTotal       *prom.CounterVec
}

var _ core.Metrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for core.Metrics.
func NewMetricsExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "taskstrat"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	taskBuckets := opts.TaskDurationBuckets
	if len(taskBuckets) == 0 {
		taskBuckets = prom.DefBuckets
	}
	strategyBuckets := opts.StrategyDurationBuckets
	if len(strategyBuckets) == 0 {
		strategyBuckets = prom.DefBuckets
	}

	taskDurationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Task execution duration in seconds, per policy.",
		Buckets:   taskBuckets,
	}, []string{"policy"})
	strategyDurationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "strategy_duration_seconds",
		Help:      "Wall time of one engine call in seconds, per policy.",
		Buckets:   strategyBuckets,
	}, []string{"policy"})
	spawnVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "unit_spawn_total",
		Help:      "Total number of units spawned onto their own goroutine.",
	}, []string{"policy"})
	interruptionVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "delay_interruption_total",
		Help:      "Total number of swallowed delay interruptions.",
	}, []string{"policy"})

	var err error
	if taskDurationVec, err = registerCollector(reg, taskDurationVec); err != nil {
		return nil, err
	}
	if strategyDurationVec, err = registerCollector(reg, strategyDurationVec); err != nil {
		return nil, err
	}
	if spawnVec, err = registerCollector(reg, spawnVec); err != nil {
		return nil, err
	}
	if interruptionVec, err = registerCollector(reg, interruptionVec); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		taskDurationSeconds:     taskDurationVec,
		strategyDurationSeconds: strategyDurationVec,
		spawnTotal:              spawnVec,
		interruptionTotal:       interruptionVec,
	}, nil
}

// RecordTaskDuration records one task execution duration.
func (m *MetricsExporter) RecordTaskDuration(policy core.Policy, taskID string, duration time.Duration) {
	if m == nil {
		return
	}
	m.taskDurationSeconds.WithLabelValues(policy.String()).Observe(duration.Seconds())
}

// RecordSpawn records one spawned unit of work.
func (m *MetricsExporter) RecordSpawn(policy core.Policy) {
	if m == nil {
		return
	}
	m.spawnTotal.WithLabelValues(policy.String()).Inc()
}

// RecordInterruption records one swallowed delay interruption.
func (m *MetricsExporter) RecordInterruption(policy core.Policy) {
	if m == nil {
		return
	}
	m.interruptionTotal.WithLabelValues(policy.String()).Inc()
}

// RecordStrategyDuration records the wall time of one engine call.
func (m *MetricsExporter) RecordStrategyDuration(policy core.Policy, duration time.Duration) {
	if m == nil {
		return
	}
	m.strategyDurationSeconds.WithLabelValues(policy.String()).Observe(duration.Seconds())
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
