package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Ade-Adebayo/package-health-agent/internal/config"
	"github.com/Ade-Adebayo/package-health-agent/internal/metrics"
)

// PyPIClient looks up package metadata from the PyPI JSON API.
type PyPIClient struct {
	baseURL string
	client  *http.Client
}

// NewPyPI creates a PyPI client with the configured base URL and timeout.
func NewPyPI(cfg config.RegistryConfig) *PyPIClient {
	return &PyPIClient{
		baseURL: cfg.PyPIBaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// pypiResponse is the subset of the PyPI JSON API response the client reads.
// The releases map keys are every known version string; only info.version
// (the current release) drives the outdated check.
type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	Releases map[string]json.RawMessage `json:"releases"`
}

// Lookup fetches {base}/{name}/json and derives the registry Info.
// PyPI carries no deprecation signal, so Deprecated is always false here.
func (c *PyPIClient) Lookup(ctx context.Context, name, declaredVersion string) Info {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, name)

	var resp pypiResponse
	if err := getJSON(ctx, c.client, url, &resp); err != nil {
		slog.Warn("registry: pypi lookup degraded", "package", name, "err", err)
		metrics.LookupFailures.WithLabelValues("pypi").Inc()
		return Info{}
	}
	if resp.Info.Version == "" {
		slog.Warn("registry: pypi response missing current version", "package", name)
		metrics.LookupFailures.WithLabelValues("pypi").Inc()
		return Info{}
	}

	info := Info{LatestVersion: resp.Info.Version}
	if declaredVersion != "" {
		info.Outdated = declaredVersion != resp.Info.Version
		info.UpdateSeverity = updateSeverity(declaredVersion, resp.Info.Version)
	}
	return info
}
