package api

import "github.com/Ade-Adebayo/package-health-agent/pkg/types"

// PythonAnalyzeRequest is the body for POST /api/v1/analyze/python.
// Each entry is one requirements.txt line ("flask==2.0.1", "requests").
type PythonAnalyzeRequest struct {
	Packages []string `json:"packages"`
}

// NPMAnalyzeRequest is the body for POST /api/v1/analyze/npm. The maps mirror
// the dependencies and devDependencies blocks of a package.json; dev entries
// win on name collision.
type NPMAnalyzeRequest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// CheckPackageRequest is the body for POST /api/v1/check-package.
type CheckPackageRequest struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Ecosystem string `json:"ecosystem"`
}

// AnalyzeResponse is the payload for both analyze endpoints: the full report
// plus the ID under which it was retained.
type AnalyzeResponse struct {
	ReportID string `json:"report_id"`
	*types.OverallHealth
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	ReportCount  int    `json:"report_count"`
	AverageScore int    `json:"average_score"`
	ActiveAlerts int    `json:"active_alerts"`
}

// ReportSummary is one entry in GET /api/v1/reports.
type ReportSummary struct {
	ID                 string `json:"id"`
	Ecosystem          string `json:"ecosystem"`
	TotalPackages      int    `json:"total_packages"`
	OverallHealthScore int    `json:"overall_health_score"`
	CreatedAt          string `json:"created_at"` // RFC3339
}

// ReportResponse is the payload for GET /api/v1/reports/{id}.
type ReportResponse struct {
	ID        string               `json:"id"`
	Ecosystem string               `json:"ecosystem"`
	CreatedAt string               `json:"created_at"` // RFC3339
	Report    *types.OverallHealth `json:"report"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
