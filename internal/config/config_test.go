package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 8080
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Registry.Timeout != DefaultLookupTimeout {
		t.Errorf("registry.timeout: got %v, want %v", cfg.Registry.Timeout, DefaultLookupTimeout)
	}
	if cfg.Registry.PyPIBaseURL != DefaultPyPIBaseURL {
		t.Errorf("pypi_base_url: got %q, want %q", cfg.Registry.PyPIBaseURL, DefaultPyPIBaseURL)
	}
	if cfg.Vuln.OSVBaseURL != DefaultOSVBaseURL {
		t.Errorf("osv_base_url: got %q, want %q", cfg.Vuln.OSVBaseURL, DefaultOSVBaseURL)
	}
	if cfg.Analyzer.Workers != DefaultWorkers {
		t.Errorf("workers: got %d, want %d", cfg.Analyzer.Workers, DefaultWorkers)
	}
	if cfg.Reports.TTL != DefaultReportTTL {
		t.Errorf("reports.ttl: got %v, want %v", cfg.Reports.TTL, DefaultReportTTL)
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9090
registry:
  timeout: 5s
  pypi_base_url: "http://pypi.test/pypi"
  npm_base_url: "http://npm.test"
vuln:
  timeout: 3s
  osv_base_url: "http://osv.test"
analyzer:
  workers: 4
reports:
  ttl: 30m
  stream_interval: 2s
alerts:
  rules:
    - name: low-score
      condition: "overall_health_score < 60"
      severity: warning
      cooldown: 10m
  webhooks:
    - type: slack
      url_env: SLACK_WEBHOOK_URL
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 9090 {
		t.Errorf("http_port: got %d, want 9090", cfg.Server.HTTPPort)
	}
	if cfg.Registry.Timeout != 5*time.Second {
		t.Errorf("registry.timeout: got %v, want 5s", cfg.Registry.Timeout)
	}
	if cfg.Registry.NPMBaseURL != "http://npm.test" {
		t.Errorf("npm_base_url: got %q", cfg.Registry.NPMBaseURL)
	}
	if cfg.Reports.TTL != 30*time.Minute {
		t.Errorf("reports.ttl: got %v, want 30m", cfg.Reports.TTL)
	}
	if len(cfg.Alerts.Rules) != 1 || cfg.Alerts.Rules[0].Name != "low-score" {
		t.Errorf("alerts.rules: got %+v", cfg.Alerts.Rules)
	}
	if cfg.Alerts.Rules[0].Cooldown != 10*time.Minute {
		t.Errorf("rule cooldown: got %v, want 10m", cfg.Alerts.Rules[0].Cooldown)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "zero timeout",
			yaml:    "registry:\n  timeout: -1s\n",
			wantErr: "registry.timeout",
		},
		{
			name:    "bad port",
			yaml:    "server:\n  http_port: 99999\n",
			wantErr: "server.http_port",
		},
		{
			name:    "rule without condition",
			yaml:    "alerts:\n  rules:\n    - name: broken\n",
			wantErr: "condition is required",
		},
		{
			name:    "unknown webhook type",
			yaml:    "alerts:\n  webhooks:\n    - type: carrier-pigeon\n",
			wantErr: "unknown type",
		},
		{
			name:    "unknown rule severity",
			yaml:    "alerts:\n  rules:\n    - name: r\n      condition: \"vulnerable_count > 0\"\n      severity: fatal\n",
			wantErr: "unknown severity",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeConfig(t, tt.yaml)
			_, err := Load(p)
			if err == nil {
				t.Fatal("Load: expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestWebhookConfig_URL(t *testing.T) {
	t.Setenv("PHA_TEST_WEBHOOK", "http://hooks.test/abc")
	wh := WebhookConfig{Type: "http", URLEnv: "PHA_TEST_WEBHOOK"}
	if got := wh.URL(); got != "http://hooks.test/abc" {
		t.Errorf("URL() = %q", got)
	}
	if got := (WebhookConfig{}).URL(); got != "" {
		t.Errorf("URL() with empty env = %q, want empty", got)
	}
}
