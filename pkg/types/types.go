package types

// Ecosystem identifies a package-distribution universe with its own registry
// and versioning conventions.
type Ecosystem string

const (
	EcosystemPython Ecosystem = "python"
	EcosystemNPM    Ecosystem = "npm"
)

// Valid reports whether e is one of the supported ecosystems.
func (e Ecosystem) Valid() bool {
	return e == EcosystemPython || e == EcosystemNPM
}

// VulnTag returns the ecosystem identifier used by the OSV vulnerability
// database ("PyPI" or "npm").
func (e Ecosystem) VulnTag() string {
	if e == EcosystemPython {
		return "PyPI"
	}
	return "npm"
}

// Dependency is one parsed dependency declaration. Version is empty when the
// declaration carried no version. Duplicates are allowed — each occurrence is
// evaluated independently.
type Dependency struct {
	Name    string
	Version string
}

// Vulnerability is a single advisory reported for a package. Order within a
// package's list is whatever the vulnerability source returned.
type Vulnerability struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Severity  string `json:"severity"`
	Published string `json:"published"`
}

// PackageHealth is the per-dependency result of the evaluation pipeline.
type PackageHealth struct {
	Name               string          `json:"name"`
	CurrentVersion     string          `json:"current_version,omitempty"`
	LatestVersion      string          `json:"latest_version,omitempty"`
	IsOutdated         bool            `json:"is_outdated"`
	HasVulnerabilities bool            `json:"has_vulnerabilities"`
	VulnerabilityCount int             `json:"vulnerability_count"`
	IsDeprecated       bool            `json:"is_deprecated"`
	UpdateSeverity     string          `json:"update_severity,omitempty"` // "major" | "minor" | "patch"
	HealthScore        int             `json:"health_score"`
	Recommendation     string          `json:"recommendation"`
	Vulnerabilities    []Vulnerability `json:"vulnerabilities"`
}

// OverallHealth is the aggregate result over one analyzed batch.
// Packages preserves the order the dependencies were parsed in, and
// OverallHealthScore is floor(average of all package scores), or 0 for an
// empty batch.
type OverallHealth struct {
	TotalPackages      int             `json:"total_packages"`
	OutdatedCount      int             `json:"outdated_count"`
	VulnerableCount    int             `json:"vulnerable_count"`
	DeprecatedCount    int             `json:"deprecated_count"`
	OverallHealthScore int             `json:"overall_health_score"`
	Packages           []PackageHealth `json:"packages"`
}
