package health

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Ade-Adebayo/package-health-agent/internal/config"
	"github.com/Ade-Adebayo/package-health-agent/internal/metrics"
	"github.com/Ade-Adebayo/package-health-agent/internal/registry"
	"github.com/Ade-Adebayo/package-health-agent/internal/vuln"
	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// VulnSource is the vulnerability lookup consumed by the Analyzer.
// *vuln.Client satisfies it; tests substitute stubs.
type VulnSource interface {
	Lookup(ctx context.Context, name string, eco types.Ecosystem) []types.Vulnerability
}

// Analyzer runs the full evaluation pipeline over dependency batches.
// Both external lookups for a dependency run concurrently, and up to
// workers dependencies are in flight at once. Lookup failures degrade inside
// the clients, so Analyze always produces a complete report.
type Analyzer struct {
	registries map[types.Ecosystem]registry.Client
	vulns      VulnSource
	workers    int
}

// NewAnalyzer builds an Analyzer with real registry and OSV clients from cfg.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{
		registries: map[types.Ecosystem]registry.Client{
			types.EcosystemPython: registry.NewPyPI(cfg.Registry),
			types.EcosystemNPM:    registry.NewNPM(cfg.Registry),
		},
		vulns:   vuln.New(cfg.Vuln),
		workers: cfg.Analyzer.Workers,
	}
}

// Analyze evaluates every dependency in the batch and aggregates the results.
// The report's package order matches the input order. An empty batch yields
// an empty report with an overall score of 0.
func (a *Analyzer) Analyze(ctx context.Context, eco types.Ecosystem, deps []types.Dependency) *types.OverallHealth {
	start := time.Now()

	results := make([]types.PackageHealth, len(deps))
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup
	for i, dep := range deps {
		wg.Add(1)
		go func(i int, dep types.Dependency) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = a.Check(ctx, eco, dep)
		}(i, dep)
	}
	wg.Wait()

	report := aggregate(results)

	metrics.AnalysesTotal.WithLabelValues(string(eco)).Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	slog.Info("analysis complete",
		"ecosystem", eco,
		"packages", report.TotalPackages,
		"overall_score", report.OverallHealthScore,
		"duration", time.Since(start),
	)
	return report
}

// Check evaluates a single dependency: both external lookups, then scoring.
func (a *Analyzer) Check(ctx context.Context, eco types.Ecosystem, dep types.Dependency) types.PackageHealth {
	var vulns []types.Vulnerability
	done := make(chan struct{})
	go func() {
		defer close(done)
		vulns = a.vulns.Lookup(ctx, dep.Name, eco)
	}()

	info := a.registries[eco].Lookup(ctx, dep.Name, dep.Version)
	<-done

	if vulns == nil {
		vulns = []types.Vulnerability{}
	}
	score, rec := Evaluate(info.Outdated, len(vulns), info.Deprecated)

	metrics.PackagesScanned.Inc()
	return types.PackageHealth{
		Name:               dep.Name,
		CurrentVersion:     dep.Version,
		LatestVersion:      info.LatestVersion,
		IsOutdated:         info.Outdated,
		HasVulnerabilities: len(vulns) > 0,
		VulnerabilityCount: len(vulns),
		IsDeprecated:       info.Deprecated,
		UpdateSeverity:     info.UpdateSeverity,
		HealthScore:        score,
		Recommendation:     rec,
		Vulnerabilities:    vulns,
	}
}

// aggregate folds per-package results into the batch report.
// The overall score is integer floor division; the empty batch is guarded
// explicitly so it reports 0 instead of dividing by zero.
func aggregate(results []types.PackageHealth) *types.OverallHealth {
	report := &types.OverallHealth{
		TotalPackages: len(results),
		Packages:      results,
	}
	if report.Packages == nil {
		report.Packages = []types.PackageHealth{}
	}

	var sum int
	for _, r := range results {
		sum += r.HealthScore
		if r.IsOutdated {
			report.OutdatedCount++
		}
		if r.HasVulnerabilities {
			report.VulnerableCount++
		}
		if r.IsDeprecated {
			report.DeprecatedCount++
		}
	}
	if len(results) > 0 {
		report.OverallHealthScore = sum / len(results)
	}
	return report
}
