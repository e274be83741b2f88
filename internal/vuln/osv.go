package vuln

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Ade-Adebayo/package-health-agent/internal/config"
	"github.com/Ade-Adebayo/package-health-agent/internal/metrics"
	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// Defaults applied to advisory fields the source left empty.
const (
	DefaultSummary  = "No summary available"
	DefaultSeverity = "UNKNOWN"
)

// Client queries the OSV API.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates an OSV client with the configured base URL and timeout.
func New(cfg config.VulnConfig) *Client {
	return &Client{
		baseURL: cfg.OSVBaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// osvQuery is the request body for POST /v1/query.
type osvQuery struct {
	Package osvPackage `json:"package"`
}

type osvPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

// osvResponse is the subset of the OSV query response the client reads.
type osvResponse struct {
	Vulns []osvAdvisory `json:"vulns"`
}

type osvAdvisory struct {
	ID        string        `json:"id"`
	Summary   string        `json:"summary"`
	Severity  []osvSeverity `json:"severity"`
	Published string        `json:"published"`
}

type osvSeverity struct {
	Type  string `json:"type"`
	Score string `json:"score"`
}

// Lookup returns the known advisories for the package, in source order.
// Any failure yields an empty list, never an error.
func (c *Client) Lookup(ctx context.Context, name string, eco types.Ecosystem) []types.Vulnerability {
	body, err := json.Marshal(osvQuery{Package: osvPackage{
		Name:      name,
		Ecosystem: eco.VulnTag(),
	}})
	if err != nil {
		slog.Warn("vuln: encode osv query", "package", name, "err", err)
		return nil
	}

	url := c.baseURL + "/v1/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		slog.Warn("vuln: build osv request", "package", name, "err", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.degrade(name, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.degrade(name, fmt.Errorf("unexpected status %d", resp.StatusCode))
		return nil
	}

	var out osvResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.degrade(name, fmt.Errorf("decode json: %w", err))
		return nil
	}

	vulns := make([]types.Vulnerability, 0, len(out.Vulns))
	for _, adv := range out.Vulns {
		vulns = append(vulns, toVulnerability(adv))
	}
	return vulns
}

// toVulnerability maps one OSV advisory to the canonical shape, applying the
// documented field defaults.
func toVulnerability(adv osvAdvisory) types.Vulnerability {
	v := types.Vulnerability{
		ID:        adv.ID,
		Summary:   adv.Summary,
		Severity:  DefaultSeverity,
		Published: adv.Published,
	}
	if v.Summary == "" {
		v.Summary = DefaultSummary
	}
	if len(adv.Severity) > 0 && adv.Severity[0].Type != "" {
		v.Severity = adv.Severity[0].Type
	}
	return v
}

func (c *Client) degrade(name string, err error) {
	slog.Warn("vuln: osv lookup degraded", "package", name, "err", err)
	metrics.LookupFailures.WithLabelValues("osv").Inc()
}
