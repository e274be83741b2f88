package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultHTTPPort       = 8080
	DefaultLookupTimeout  = 10 * time.Second
	DefaultWorkers        = 8
	DefaultReportTTL      = time.Hour
	DefaultStreamInterval = 5 * time.Second

	DefaultPyPIBaseURL = "https://pypi.org/pypi"
	DefaultNPMBaseURL  = "https://registry.npmjs.org"
	DefaultOSVBaseURL  = "https://api.osv.dev"
)

// Config is the top-level service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Registry RegistryConfig `yaml:"registry"`
	Vuln     VulnConfig     `yaml:"vuln"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Reports  ReportsConfig  `yaml:"reports"`
	Alerts   AlertsConfig   `yaml:"alerts"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// HTTPPort is the port the JSON API, /metrics and /ws/stream listen on.
	HTTPPort int `yaml:"http_port"`
}

// RegistryConfig holds the package-registry client settings.
type RegistryConfig struct {
	// Timeout bounds one registry lookup. There are no retries.
	Timeout time.Duration `yaml:"timeout"`

	// PyPIBaseURL is the PyPI JSON API base (package metadata is fetched
	// from {base}/{name}/json).
	PyPIBaseURL string `yaml:"pypi_base_url"`

	// NPMBaseURL is the npm registry base (metadata from {base}/{name}).
	NPMBaseURL string `yaml:"npm_base_url"`
}

// VulnConfig holds the vulnerability-database client settings.
type VulnConfig struct {
	// Timeout bounds one OSV query. There are no retries.
	Timeout time.Duration `yaml:"timeout"`

	// OSVBaseURL is the OSV API base (queries go to {base}/v1/query).
	OSVBaseURL string `yaml:"osv_base_url"`
}

// AnalyzerConfig holds batch-processing settings.
type AnalyzerConfig struct {
	// Workers is the maximum number of dependencies looked up concurrently
	// within one batch.
	Workers int `yaml:"workers"`
}

// ReportsConfig holds settings for the in-memory report store and the
// WebSocket stream.
type ReportsConfig struct {
	// TTL is how long a finished analysis report is retained.
	TTL time.Duration `yaml:"ttl"`

	// StreamInterval is how often the WebSocket hub broadcasts the current
	// report list to connected clients.
	StreamInterval time.Duration `yaml:"stream_interval"`
}

// AlertsConfig holds alerting rules and webhook delivery targets.
type AlertsConfig struct {
	Rules    []AlertRule     `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AlertRule defines a threshold condition evaluated against every completed
// analysis report.
type AlertRule struct {
	// Name is the human-readable alert identifier.
	Name string `yaml:"name"`

	// Condition is an expression like "overall_health_score < 60" or
	// "vulnerable_count > 0".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Cooldown suppresses re-fires for this duration after an alert fires.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable holding the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Default returns a Config pre-populated with default values. It is valid
// without any config file — the CLI uses it for one-shot checks.
func Default() *Config {
	return &Config{
		Server: ServerConfig{HTTPPort: DefaultHTTPPort},
		Registry: RegistryConfig{
			Timeout:     DefaultLookupTimeout,
			PyPIBaseURL: DefaultPyPIBaseURL,
			NPMBaseURL:  DefaultNPMBaseURL,
		},
		Vuln: VulnConfig{
			Timeout:    DefaultLookupTimeout,
			OSVBaseURL: DefaultOSVBaseURL,
		},
		Analyzer: AnalyzerConfig{Workers: DefaultWorkers},
		Reports: ReportsConfig{
			TTL:            DefaultReportTTL,
			StreamInterval: DefaultStreamInterval,
		},
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535")
	}
	if cfg.Registry.Timeout <= 0 {
		return fmt.Errorf("registry.timeout must be positive")
	}
	if cfg.Vuln.Timeout <= 0 {
		return fmt.Errorf("vuln.timeout must be positive")
	}
	if cfg.Registry.PyPIBaseURL == "" {
		return fmt.Errorf("registry.pypi_base_url is required")
	}
	if cfg.Registry.NPMBaseURL == "" {
		return fmt.Errorf("registry.npm_base_url is required")
	}
	if cfg.Vuln.OSVBaseURL == "" {
		return fmt.Errorf("vuln.osv_base_url is required")
	}
	if cfg.Analyzer.Workers <= 0 {
		return fmt.Errorf("analyzer.workers must be positive")
	}
	if cfg.Reports.TTL <= 0 {
		return fmt.Errorf("reports.ttl must be positive")
	}
	if cfg.Reports.StreamInterval <= 0 {
		return fmt.Errorf("reports.stream_interval must be positive")
	}
	for i, rule := range cfg.Alerts.Rules {
		if rule.Name == "" {
			return fmt.Errorf("alerts.rules[%d]: name is required", i)
		}
		if rule.Condition == "" {
			return fmt.Errorf("alerts.rules[%d] %q: condition is required", i, rule.Name)
		}
		switch rule.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("alerts.rules[%d] %q: unknown severity %q", i, rule.Name, rule.Severity)
		}
	}
	for i, wh := range cfg.Alerts.Webhooks {
		switch wh.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("alerts.webhooks[%d]: unknown type %q", i, wh.Type)
		}
	}
	return nil
}
