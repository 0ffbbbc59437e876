package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/blueprintfitness/internal/execution"
	"github.com/2beens/blueprintfitness/internal/setconfig"

	"github.com/BurntSushi/toml"
)

var ErrEnvNotConfigured = errors.New("environment not configured")

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// http
	AllowedOrigins []string `toml:"allowed_origins"`
	MCPEnabled     bool     `toml:"mcp_enabled"`
	// duration estimates, in seconds
	TimePerRep     float64 `toml:"time_per_rep"`
	BaseTimePerSet float64 `toml:"base_time_per_set"`

	Execution execution.Options `toml:"execution"`
}

// Timing returns the duration estimate parameters, defaulted where unset.
func (c *Config) Timing() setconfig.Timing {
	timing := setconfig.DefaultTiming()
	if c.TimePerRep > 0 {
		timing.TimePerRep = c.TimePerRep
	}
	if c.BaseTimePerSet > 0 {
		timing.BaseTimePerSet = c.BaseTimePerSet
	}
	return timing
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvNotConfigured, env)
	}
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	return cfg, nil
}
