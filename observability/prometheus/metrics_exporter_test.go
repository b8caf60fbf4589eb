package prometheus

import (
	"context"
	"testing"
	"time"

	"github.com/aritram1/go-task-strategies/core"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestMetricsExporter_RecordMethods(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("taskstrat", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	exporter.RecordTaskDuration(core.PolicyBatched, "Bat-A", 250*time.Millisecond)
	exporter.RecordSpawn(core.PolicyBatched)
	exporter.RecordSpawn(core.PolicyBatched)
	exporter.RecordInterruption(core.PolicySequential)
	exporter.RecordStrategyDuration(core.PolicyBatched, 300*time.Millisecond)

	spawns := testutil.ToFloat64(exporter.spawnTotal.WithLabelValues("batched"))
	if spawns != 2 {
		t.Fatalf("spawn total = %v, want 2", spawns)
	}

	interruptions := testutil.ToFloat64(exporter.interruptionTotal.WithLabelValues("sequential"))
	if interruptions != 1 {
		t.Fatalf("interruption total = %v, want 1", interruptions)
	}

	taskCount, err := histogramSampleCount(exporter.taskDurationSeconds.WithLabelValues("batched"))
	if err != nil {
		t.Fatalf("histogramSampleCount failed: %v", err)
	}
	if taskCount != 1 {
		t.Fatalf("task duration sample count = %d, want 1", taskCount)
	}

	strategyCount, err := histogramSampleCount(exporter.strategyDurationSeconds.WithLabelValues("batched"))
	if err != nil {
		t.Fatalf("histogramSampleCount failed: %v", err)
	}
	if strategyCount != 1 {
		t.Fatalf("strategy duration sample count = %d, want 1", strategyCount)
	}
}

func TestMetricsExporter_AlreadyRegisteredReuse(t *testing.T) {
	reg := prom.NewRegistry()
	first, err := NewMetricsExporter("taskstrat", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("first NewMetricsExporter failed: %v", err)
	}
	second, err := NewMetricsExporter("taskstrat", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("second NewMetricsExporter failed: %v", err)
	}

	first.RecordSpawn(core.PolicyDetached)
	second.RecordSpawn(core.PolicyDetached)

	spawns := testutil.ToFloat64(second.spawnTotal.WithLabelValues("detached"))
	if spawns != 2 {
		t.Fatalf("spawn total = %v, want 2 across reused collectors", spawns)
	}
}

func TestMetricsExporter_EngineIntegration(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewMetricsExporter("taskstrat", reg, ExporterOptions{})
	if err != nil {
		t.Fatalf("NewMetricsExporter failed: %v", err)
	}

	engine := core.NewEngine(core.EngineConfig{
		Sink:    core.NewNopSink(),
		Metrics: exporter,
	})

	tasks := []core.Task{
		core.MustTask("A", 5*time.Millisecond),
		core.MustTask("B", 5*time.Millisecond),
	}
	engine.RunBatched(context.Background(), tasks)

	spawns := testutil.ToFloat64(exporter.spawnTotal.WithLabelValues("batched"))
	if spawns != 2 {
		t.Fatalf("spawn total = %v, want 2", spawns)
	}

	taskCount, err := histogramSampleCount(exporter.taskDurationSeconds.WithLabelValues("batched"))
	if err != nil {
		t.Fatalf("histogramSampleCount failed: %v", err)
	}
	if taskCount != 2 {
		t.Fatalf("task duration sample count = %d, want 2", taskCount)
	}
}

func histogramSampleCount(observer prom.Observer) (uint64, error) {
	collector, ok := observer.(prom.Collector)
	if !ok {
		return 0, nil
	}

	metricCh := make(chan prom.Metric, 1)
	collector.Collect(metricCh)
	close(metricCh)
	for metric := range metricCh {
		msg := &dto.Metric{}
		if err := metric.Write(msg); err != nil {
			return 0, err
		}
		if msg.Histogram != nil {
			return msg.Histogram.GetSampleCount(), nil
		}
	}
	return 0, nil
}
