package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Ade-Adebayo/package-health-agent/internal/alerts"
	"github.com/Ade-Adebayo/package-health-agent/internal/depparse"
	"github.com/Ade-Adebayo/package-health-agent/internal/store"
	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// Analyzer is the evaluation pipeline behind the analysis endpoints.
// *health.Analyzer satisfies it; tests substitute stubs.
type Analyzer interface {
	Analyze(ctx context.Context, eco types.Ecosystem, deps []types.Dependency) *types.OverallHealth
	Check(ctx context.Context, eco types.Ecosystem, dep types.Dependency) types.PackageHealth
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	store    *store.Store
	analyzer Analyzer
	alerts   *alerts.Engine
	mux      *http.ServeMux
}

// New creates a Handler wired to the report store, the analysis pipeline and
// the alert engine, and registers all routes.
func New(st *store.Store, an Analyzer, eng *alerts.Engine) http.Handler {
	h := &Handler{store: st, analyzer: an, alerts: eng, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/analyze/python", h.analyzePython)
	h.mux.HandleFunc("/api/v1/analyze/npm", h.analyzeNPM)
	h.mux.HandleFunc("/api/v1/check-package", h.checkPackage)
	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/reports", h.listReports)
	h.mux.HandleFunc("/api/v1/reports/", h.getReport) // subtree — extracts {id}
	h.mux.HandleFunc("/api/v1/alerts", h.listAlerts)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// analyzePython handles POST /api/v1/analyze/python — a batch of
// requirements-style entries.
func (h *Handler) analyzePython(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req PythonAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	deps := depparse.Requirements(req.Packages)
	if len(deps) == 0 {
		jsonErr(w, http.StatusBadRequest, "no analyzable packages in request")
		return
	}
	h.runAnalysis(w, r, types.EcosystemPython, deps)
}

// analyzeNPM handles POST /api/v1/analyze/npm — package.json dependency maps.
func (h *Handler) analyzeNPM(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req NPMAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	deps := depparse.DependencyMaps(req.Dependencies, req.DevDependencies)
	if len(deps) == 0 {
		jsonErr(w, http.StatusBadRequest, "no analyzable packages in request")
		return
	}
	h.runAnalysis(w, r, types.EcosystemNPM, deps)
}

// checkPackage handles POST /api/v1/check-package — a single package lookup.
func (h *Handler) checkPackage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CheckPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		jsonErr(w, http.StatusBadRequest, "name is required")
		return
	}
	eco := types.Ecosystem(req.Ecosystem)
	if !eco.Valid() {
		jsonErr(w, http.StatusBadRequest, `ecosystem must be "python" or "npm"`)
		return
	}

	result := h.analyzer.Check(r.Context(), eco, types.Dependency{
		Name:    req.Name,
		Version: req.Version,
	})
	jsonResp(w, http.StatusOK, result)
}

// health returns GET /api/v1/health — liveness plus an aggregate over the
// reports currently retained.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	resp := HealthResponse{
		Status:       "ok",
		ReportCount:  len(entries),
		ActiveAlerts: len(h.alerts.Active()),
	}
	if len(entries) > 0 {
		var sum int
		for _, e := range entries {
			sum += e.Report.OverallHealthScore
		}
		resp.AverageScore = sum / len(entries)
	}
	jsonResp(w, http.StatusOK, resp)
}

// listReports returns GET /api/v1/reports — summaries of retained reports,
// newest first.
func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jsonResp(w, http.StatusOK, BuildSummaries(h.store))
}

// BuildSummaries maps the store's live entries to report summaries, newest
// first. Shared with the WebSocket hub.
func BuildSummaries(st *store.Store) []ReportSummary {
	entries := st.List()
	out := make([]ReportSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, ReportSummary{
			ID:                 e.ID,
			Ecosystem:          string(e.Ecosystem),
			TotalPackages:      e.Report.TotalPackages,
			OverallHealthScore: e.Report.OverallHealthScore,
			CreatedAt:          e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// getReport returns GET /api/v1/reports/{id} — one retained report in full.
func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/reports/")
	if id == "" {
		// Redirect bare /api/v1/reports/ to the list handler.
		h.listReports(w, r)
		return
	}

	e, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "report not found")
		return
	}
	jsonResp(w, http.StatusOK, ReportResponse{
		ID:        e.ID,
		Ecosystem: string(e.Ecosystem),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		Report:    e.Report,
	})
}

// listAlerts returns GET /api/v1/alerts — firing and recently resolved alerts.
func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.alerts.Active())
}

// --- helpers ----------------------------------------------------------------

// runAnalysis drives the shared tail of both analyze endpoints: evaluate the
// batch, retain the report, feed the alert engine, respond.
func (h *Handler) runAnalysis(w http.ResponseWriter, r *http.Request, eco types.Ecosystem, deps []types.Dependency) {
	report := h.analyzer.Analyze(r.Context(), eco, deps)
	id := h.store.Add(eco, report)
	h.alerts.Evaluate(id, eco, report)

	jsonResp(w, http.StatusOK, AnalyzeResponse{ReportID: id, OverallHealth: report})
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
