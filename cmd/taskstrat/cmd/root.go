package cmd

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	taskstrat "github.com/aritram1/go-task-strategies"
	"github.com/aritram1/go-task-strategies/core"
	obsprom "github.com/aritram1/go-task-strategies/observability/prometheus"
)

// rootCmd represents the taskstrat command
var rootCmd = &cobra.Command{
	Use:   "taskstrat",
	Short: "Run a fixed task batch under four execution strategies",
	Long: `taskstrat runs a batch of named, timed tasks under four execution
strategies in turn: sequential, detached (fire-and-forget), lockstep
(spawn-then-await per task), and batched (spawn all, then await all).

Each task prints a timestamped Started and Finished line; section banners make
the output attributable per strategy. With no arguments, the fixed default
batch A=1s, B=1.1s, C=1.2s, D=1.5s is used.`,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	tasksFlag   string
	configFlag  string
	metricsAddr string
	verbose     bool
	settleFlag  time.Duration
)

func init() {
	rootCmd.Flags().StringVarP(&tasksFlag, "tasks", "t", "",
		`task batch as comma-separated "id=duration" pairs, e.g. "A=1s,B=1100ms"`)
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "",
		"TOML config file with batch and settings")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address during the run")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging of engine internals")
	rootCmd.Flags().DurationVar(&settleFlag, "settle", 2*time.Second,
		"grace period for detached tasks to finish printing before exit")
}

// Execute runs the root command. The demonstration itself has no error exit
// path; only flag and config parse failures exit non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tasks := taskstrat.DefaultBatch()
	settle := settleFlag
	addr := metricsAddr

	if configFlag != "" {
		config, err := LoadConfig(configFlag)
		if err != nil {
			return err
		}
		if len(config.Task) > 0 {
			if tasks, err = config.Tasks(); err != nil {
				return err
			}
		}
		if settle, err = config.SettleDuration(settleFlag); err != nil {
			return err
		}
		if addr == "" {
			addr = config.MetricsAddr
		}
	}

	// Flags win over the config file.
	if tasksFlag != "" {
		parsed, err := core.ParseTaskList(tasksFlag)
		if err != nil {
			return err
		}
		tasks = parsed
	}

	engineConfig := core.EngineConfig{Sink: core.NewStdoutSink()}
	if verbose {
		engineConfig.Logger = core.NewDevelopmentLogger()
	}

	if addr == "" {
		runDemo(ctx, engineConfig, tasks, settle)
		return nil
	}

	// Serve metrics for the duration of the run, then shut the server down.
	registry := prometheus.NewRegistry()
	exporter, err := obsprom.NewMetricsExporter("taskstrat", registry, obsprom.ExporterOptions{})
	if err != nil {
		return err
	}
	engineConfig.Metrics = exporter

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		runDemo(gctx, engineConfig, tasks, settle)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func runDemo(ctx context.Context, engineConfig core.EngineConfig, tasks []core.Task, settle time.Duration) {
	runner := taskstrat.NewRunner(engineConfig)
	runs := runner.RunAll(ctx, tasks)

	// The detached run returned before its tasks finished. Give them a bounded
	// grace period to print their Finished lines; timing out is not an error.
	settleCtx, cancel := context.WithTimeout(ctx, settle)
	defer cancel()
	_ = taskstrat.Settle(settleCtx, runs)
}
