// Package config loads the worker's YAML configuration file, expands
// environment variable references in it, and merges the result over
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Config is the fully resolved worker configuration: pipeline/queue
// behavior, storage backend selection, LLM client settings, and
// redaction toggles. Database connectivity is loaded separately from
// the environment by the database package, since it carries secrets
// that should never round-trip through a YAML file on disk.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Storage  StorageConfig  `yaml:"storage"`
	LLM      LLMConfig      `yaml:"llm"`
	Redact   RedactConfig   `yaml:"redact"`
}

// fileConfig mirrors Config; fields the YAML file leaves out stay at
// their zero value, and mergo (WithOverride) copies only non-zero
// values over the defaults. A field set explicitly to its zero value
// (false, 0, "") therefore does not override a non-zero default.
type fileConfig struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Storage  StorageConfig  `yaml:"storage"`
	LLM      LLMConfig      `yaml:"llm"`
	Redact   RedactConfig   `yaml:"redact"`
}

// Load reads configPath, expands ${VAR} references against the
// process environment, and merges the result over DefaultConfig().
// A missing file is not an error: the built-in defaults are returned
// as they are, without validation. Environment variables reach this
// configuration only through ${VAR} references inside the file.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, NewLoadError(configPath, err)
	}

	expanded := os.ExpandEnv(string(data))

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
		return nil, NewLoadError(configPath, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
	}

	userCfg := Config(fc)
	if err := mergo.Merge(&cfg, userCfg, mergo.WithOverride); err != nil {
		return nil, NewLoadError(configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the built-in baseline configuration.
func DefaultConfig() Config {
	return Config{
		Pipeline: DefaultPipelineConfig(),
		Storage:  DefaultStorageConfig(),
		LLM:      DefaultLLMConfig(),
		Redact:   DefaultRedactConfig(),
	}
}

// Validate checks every sub-component of the resolved configuration.
func (c Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.Pipeline.WorkerCount <= 0 {
		return NewValidationError("pipeline", "worker_count", ErrInvalidValue)
	}
	return nil
}

// ResolveConfigPath joins configDir with the conventional file name,
// unless configDir already points directly at a YAML file.
func ResolveConfigPath(configDir string) string {
	if filepath.Ext(configDir) == ".yaml" || filepath.Ext(configDir) == ".yml" {
		return configDir
	}
	return filepath.Join(configDir, "screeningworker.yaml")
}
