package config

import "time"

// PipelineConfig controls the worker pool and queue polling behavior.
type PipelineConfig struct {
	WorkerCount          int           `yaml:"worker_count"`
	PollInterval         time.Duration `yaml:"poll_interval"`
	PollIntervalJitter   time.Duration `yaml:"poll_interval_jitter"`
	MaxRetries           int           `yaml:"max_retries"`
	StageTimeout         time.Duration `yaml:"stage_timeout"`
	OrphanSweepInterval  time.Duration `yaml:"orphan_sweep_interval"`
	OrphanThreshold      time.Duration `yaml:"orphan_threshold"`
	GracefulShutdownWait time.Duration `yaml:"graceful_shutdown_wait"`
}

// DefaultPipelineConfig returns the baseline pipeline configuration,
// merged under any user-supplied overrides.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		WorkerCount:          5,
		PollInterval:         5 * time.Second,
		PollIntervalJitter:   500 * time.Millisecond,
		MaxRetries:           3,
		StageTimeout:         2 * time.Minute,
		OrphanSweepInterval:  30 * time.Second,
		OrphanThreshold:      5 * time.Minute,
		GracefulShutdownWait: 20 * time.Second,
	}
}
