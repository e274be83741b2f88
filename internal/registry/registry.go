package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ade-Adebayo/package-health-agent/internal/config"
	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// Info is the outcome of one registry lookup for one dependency.
// The zero value is the degraded "no data" result: no latest version, not
// outdated, not deprecated.
type Info struct {
	// LatestVersion is the registry's current published version, empty when
	// the lookup failed or the registry had no usable version.
	LatestVersion string

	// Outdated is true only when both the declared and the latest version
	// are present and differ.
	Outdated bool

	// Deprecated reflects an explicit registry deprecation marker. PyPI
	// carries no such signal, so it is always false for python packages.
	Deprecated bool

	// UpdateSeverity classifies the declared→latest gap as "major", "minor"
	// or "patch" when both versions parse as semver. Informational only —
	// Outdated is decided by strict string inequality, not by this field.
	UpdateSeverity string
}

// Client looks up the latest published metadata for a single package.
// Implementations absorb all lookup failures; Lookup is total.
type Client interface {
	Lookup(ctx context.Context, name, declaredVersion string) Info
}

// New returns the registry client for the given ecosystem.
func New(eco types.Ecosystem, cfg config.RegistryConfig) (Client, error) {
	switch eco {
	case types.EcosystemPython:
		return NewPyPI(cfg), nil
	case types.EcosystemNPM:
		return NewNPM(cfg), nil
	default:
		return nil, fmt.Errorf("registry: unsupported ecosystem %q", eco)
	}
}

// getJSON performs an HTTP GET and decodes the JSON response body into v.
func getJSON(ctx context.Context, client *http.Client, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
