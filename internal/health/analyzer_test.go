package health

import (
	"context"
	"testing"

	"github.com/Ade-Adebayo/package-health-agent/internal/registry"
	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// --- stubs ------------------------------------------------------------------

// stubRegistry returns a fixed Info per package name; unknown names get the
// degraded zero Info, mimicking a failed lookup.
type stubRegistry struct {
	infos map[string]registry.Info
}

func (s *stubRegistry) Lookup(_ context.Context, name, _ string) registry.Info {
	return s.infos[name]
}

// stubVulns returns a fixed advisory list per package name.
type stubVulns struct {
	vulns map[string][]types.Vulnerability
}

func (s *stubVulns) Lookup(_ context.Context, name string, _ types.Ecosystem) []types.Vulnerability {
	return s.vulns[name]
}

func newTestAnalyzer(infos map[string]registry.Info, vulns map[string][]types.Vulnerability) *Analyzer {
	reg := &stubRegistry{infos: infos}
	return &Analyzer{
		registries: map[types.Ecosystem]registry.Client{
			types.EcosystemPython: reg,
			types.EcosystemNPM:    reg,
		},
		vulns:   &stubVulns{vulns: vulns},
		workers: 4,
	}
}

func advisories(n int) []types.Vulnerability {
	out := make([]types.Vulnerability, n)
	for i := range out {
		out[i] = types.Vulnerability{ID: "ADV", Summary: "No summary available", Severity: "UNKNOWN"}
	}
	return out
}

// --- tests ------------------------------------------------------------------

func TestAnalyze_HealthyPackage(t *testing.T) {
	a := newTestAnalyzer(
		map[string]registry.Info{"flask": {LatestVersion: "2.0.1"}},
		nil,
	)

	report := a.Analyze(context.Background(), types.EcosystemPython,
		[]types.Dependency{{Name: "flask", Version: "2.0.1"}})

	if report.TotalPackages != 1 {
		t.Fatalf("TotalPackages = %d, want 1", report.TotalPackages)
	}
	pkg := report.Packages[0]
	if pkg.IsOutdated {
		t.Error("IsOutdated = true, want false")
	}
	if pkg.HealthScore != 100 {
		t.Errorf("HealthScore = %d, want 100", pkg.HealthScore)
	}
	if report.OverallHealthScore != 100 {
		t.Errorf("OverallHealthScore = %d, want 100", report.OverallHealthScore)
	}
}

func TestAnalyze_OverallFloorDivision(t *testing.T) {
	// Scores 100, 50 and 30 → floor(180/3) = 60.
	a := newTestAnalyzer(
		map[string]registry.Info{
			"clean":  {LatestVersion: "1.0.0"},
			"risky":  {LatestVersion: "1.0.0"},
			"legacy": {LatestVersion: "9.0.0", Outdated: true},
		},
		map[string][]types.Vulnerability{
			"risky":  advisories(4), // 100 - 50 = 50
			"legacy": advisories(4), // 100 - 20 - 50 = 30
		},
	)

	report := a.Analyze(context.Background(), types.EcosystemPython, []types.Dependency{
		{Name: "clean", Version: "1.0.0"},
		{Name: "risky", Version: "1.0.0"},
		{Name: "legacy", Version: "1.0.0"},
	})

	if report.OverallHealthScore != 60 {
		t.Errorf("OverallHealthScore = %d, want 60", report.OverallHealthScore)
	}
	if report.VulnerableCount != 2 {
		t.Errorf("VulnerableCount = %d, want 2", report.VulnerableCount)
	}
	if report.OutdatedCount != 1 {
		t.Errorf("OutdatedCount = %d, want 1", report.OutdatedCount)
	}
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	a := newTestAnalyzer(nil, nil)
	report := a.Analyze(context.Background(), types.EcosystemPython, nil)

	if report.OverallHealthScore != 0 {
		t.Errorf("OverallHealthScore = %d, want 0 for empty batch", report.OverallHealthScore)
	}
	if report.TotalPackages != 0 {
		t.Errorf("TotalPackages = %d, want 0", report.TotalPackages)
	}
	if report.Packages == nil {
		t.Error("Packages = nil, want empty non-nil slice")
	}
}

func TestAnalyze_PreservesInputOrder(t *testing.T) {
	a := newTestAnalyzer(
		map[string]registry.Info{
			"zzz": {LatestVersion: "1.0.0"},
			"aaa": {LatestVersion: "1.0.0"},
			"mmm": {LatestVersion: "1.0.0"},
		},
		nil,
	)

	deps := []types.Dependency{{Name: "zzz"}, {Name: "aaa"}, {Name: "mmm"}}
	report := a.Analyze(context.Background(), types.EcosystemPython, deps)

	for i, dep := range deps {
		if report.Packages[i].Name != dep.Name {
			t.Errorf("packages[%d] = %q, want %q", i, report.Packages[i].Name, dep.Name)
		}
	}
}

func TestAnalyze_DegradedLookupNeverFailsBatch(t *testing.T) {
	// "ghost" is unknown to both stubs — the degraded zero results flow
	// through to a complete, healthy-looking PackageHealth.
	a := newTestAnalyzer(map[string]registry.Info{}, nil)

	report := a.Analyze(context.Background(), types.EcosystemNPM,
		[]types.Dependency{{Name: "ghost", Version: "1.0.0"}})

	pkg := report.Packages[0]
	if pkg.LatestVersion != "" {
		t.Errorf("LatestVersion = %q, want absent", pkg.LatestVersion)
	}
	if pkg.IsOutdated {
		t.Error("IsOutdated = true, want false after degraded lookup")
	}
	if pkg.VulnerabilityCount != 0 {
		t.Errorf("VulnerabilityCount = %d, want 0", pkg.VulnerabilityCount)
	}
	if len(pkg.Vulnerabilities) != 0 || pkg.Vulnerabilities == nil {
		t.Errorf("Vulnerabilities = %#v, want empty non-nil slice", pkg.Vulnerabilities)
	}
	if pkg.HealthScore != 100 {
		t.Errorf("HealthScore = %d, want 100", pkg.HealthScore)
	}
}

func TestCheck_DeprecatedPackage(t *testing.T) {
	a := newTestAnalyzer(
		map[string]registry.Info{
			"left-pad": {LatestVersion: "1.3.0", Outdated: true, Deprecated: true},
		},
		nil,
	)

	pkg := a.Check(context.Background(), types.EcosystemNPM,
		types.Dependency{Name: "left-pad", Version: "1.0.0"})

	if !pkg.IsDeprecated {
		t.Fatal("IsDeprecated = false, want true")
	}
	// −20 outdated, −30 deprecated.
	if pkg.HealthScore != 50 {
		t.Errorf("HealthScore = %d, want 50", pkg.HealthScore)
	}
	if pkg.HealthScore > 70 {
		t.Errorf("HealthScore = %d, deprecation must cost at least 30", pkg.HealthScore)
	}
	if got := pkg.Recommendation; got != Recommendation(true, 0, true) {
		t.Errorf("Recommendation = %q, want the deprecation message", got)
	}
}
