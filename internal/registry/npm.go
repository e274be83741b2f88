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

// NPMClient looks up package metadata from the npm registry.
type NPMClient struct {
	baseURL string
	client  *http.Client
}

// NewNPM creates an npm registry client with the configured base URL and timeout.
func NewNPM(cfg config.RegistryConfig) *NPMClient {
	return &NPMClient{
		baseURL: cfg.NPMBaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// npmResponse is the subset of an npm registry packument the client reads.
// The deprecated marker is kept raw: the registry emits either a bool or a
// free-form message string.
type npmResponse struct {
	DistTags   map[string]string `json:"dist-tags"`
	Deprecated json.RawMessage   `json:"deprecated"`
}

// Lookup fetches {base}/{name} and derives the registry Info.
// A packument without a "latest" dist-tag still yields the deprecation flag;
// the outdated check needs both versions present.
func (c *NPMClient) Lookup(ctx context.Context, name, declaredVersion string) Info {
	url := fmt.Sprintf("%s/%s", c.baseURL, name)

	var resp npmResponse
	if err := getJSON(ctx, c.client, url, &resp); err != nil {
		slog.Warn("registry: npm lookup degraded", "package", name, "err", err)
		metrics.LookupFailures.WithLabelValues("npm").Inc()
		return Info{}
	}

	latest := resp.DistTags["latest"]
	info := Info{
		LatestVersion: latest,
		Deprecated:    deprecatedMarker(resp.Deprecated),
	}
	if declaredVersion != "" && latest != "" {
		info.Outdated = declaredVersion != latest
		info.UpdateSeverity = updateSeverity(declaredVersion, latest)
	}
	return info
}

// deprecatedMarker interprets the raw deprecation field. Absent, null, false
// and the empty string all mean "not deprecated"; true or a non-empty
// deprecation message mean "deprecated".
func deprecatedMarker(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s != ""
	}
	// Any other non-null JSON value is treated as a deprecation marker.
	return true
}
