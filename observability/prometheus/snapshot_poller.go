package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/aritram1/go-task-strategies/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// EngineSnapshotProvider provides current engine stats snapshots.
type EngineSnapshotProvider interface {
	Stats() core.EngineStats
}

// SnapshotPoller periodically exports engine Stats() snapshots into Prometheus gauges.
type SnapshotPoller struct {
	interval time.Duration

	enginesMu sync.RWMutex
	engines   map[string]EngineSnapshotProvider

	runsStarted      *prom.GaugeVec
	runsDrained      *prom.GaugeVec
	tasksExecuted    *prom.GaugeVec
	unitsSpawned     *prom.GaugeVec
	interruptions    *prom.GaugeVec
	lastStrategyWall *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	runsStarted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskstrat",
		Name:      "engine_runs_started",
		Help:      "Strategy runs started, snapshot per engine.",
	}, []string{"engine"})
	runsDrained := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskstrat",
		Name:      "engine_runs_drained",
		Help:      "Strategy runs fully drained, snapshot per engine.",
	}, []string{"engine"})
	tasksExecuted := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskstrat",
		Name:      "engine_tasks_executed",
		Help:      "Tasks executed, snapshot per engine.",
	}, []string{"engine"})
	unitsSpawned := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskstrat",
		Name:      "engine_units_spawned",
		Help:      "Units spawned onto their own goroutine, snapshot per engine.",
	}, []string{"engine"})
	interruptions := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskstrat",
		Name:      "engine_interruptions",
		Help:      "Swallowed delay interruptions, snapshot per engine.",
	}, []string{"engine"})
	lastStrategyWall := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "taskstrat",
		Name:      "engine_last_strategy_wall_seconds",
		Help:      "Wall time of the most recent engine call in seconds.",
	}, []string{"engine"})

	var err error
	if runsStarted, err = registerCollector(reg, runsStarted); err != nil {
		return nil, err
	}
	if runsDrained, err = registerCollector(reg, runsDrained); err != nil {
		return nil, err
	}
	if tasksExecuted, err = registerCollector(reg, tasksExecuted); err != nil {
		return nil, err
	}
	if unitsSpawned, err = registerCollector(reg, unitsSpawned); err != nil {
		return nil, err
	}
	if interruptions, err = registerCollector(reg, interruptions); err != nil {
		return nil, err
	}
	if lastStrategyWall, err = registerCollector(reg, lastStrategyWall); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:         interval,
		engines:          make(map[string]EngineSnapshotProvider),
		runsStarted:      runsStarted,
		runsDrained:      runsDrained,
		tasksExecuted:    tasksExecuted,
		unitsSpawned:     unitsSpawned,
		interruptions:    interruptions,
		lastStrategyWall: lastStrategyWall,
	}, nil
}

// AddEngine adds or replaces an engine snapshot provider by name.
func (p *SnapshotPoller) AddEngine(name string, provider EngineSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	if name == "" {
		name = "engine"
	}
	p.enginesMu.Lock()
	p.engines[name] = provider
	p.enginesMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.enginesMu.RLock()
	defer p.enginesMu.RUnlock()

	for name, provider := range p.engines {
		stats := provider.Stats()
		p.runsStarted.WithLabelValues(name).Set(float64(stats.RunsStarted))
		p.runsDrained.WithLabelValues(name).Set(float64(stats.RunsDrained))
		p.tasksExecuted.WithLabelValues(name).Set(float64(stats.TasksExecuted))
		p.unitsSpawned.WithLabelValues(name).Set(float64(stats.UnitsSpawned))
		p.interruptions.WithLabelValues(name).Set(float64(stats.Interruptions))
		p.lastStrategyWall.WithLabelValues(name).Set(stats.LastStrategyWall.Seconds())
	}
}
