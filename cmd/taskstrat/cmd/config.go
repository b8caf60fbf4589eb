package cmd

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"

	"github.com/aritram1/go-task-strategies/core"
)

// TaskConfig is one [[task]] entry in the config file.
type TaskConfig struct {
	ID       string `toml:"id"`
	Duration string `toml:"duration"`
}

// Config is the optional TOML configuration surface. Everything it carries can
// also be given via flags; flags win over the file.
type Config struct {
	// Settle is the grace period for detached tasks to finish before exit,
	// as a Go duration string.
	Settle string `toml:"settle"`

	// MetricsAddr serves Prometheus metrics on this address during the run.
	MetricsAddr string `toml:"metrics_addr"`

	// Task is the ordered batch; when empty the fixed default batch is used.
	Task []TaskConfig `toml:"task"`
}

// LoadConfig reads and decodes a TOML config file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, errors.Annotatef(err, "config file %q", path)
	}
	return &config, nil
}

// Tasks converts the [[task]] entries into the ordered batch.
func (c *Config) Tasks() ([]core.Task, error) {
	tasks := make([]core.Task, 0, len(c.Task))
	for _, tc := range c.Task {
		duration, err := time.ParseDuration(tc.Duration)
		if err != nil {
			return nil, errors.Annotatef(err, "task %q duration", tc.ID)
		}
		task, err := core.NewTask(tc.ID, duration)
		if err != nil {
			return nil, errors.Trace(err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// SettleDuration parses the settle grace period, or returns fallback when unset.
func (c *Config) SettleDuration(fallback time.Duration) (time.Duration, error) {
	if c.Settle == "" {
		return fallback, nil
	}
	settle, err := time.ParseDuration(c.Settle)
	if err != nil {
		return 0, errors.Annotatef(err, "settle %q", c.Settle)
	}
	return settle, nil
}
