package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ade-Adebayo/package-health-agent/internal/config"
)

// flaskMetadata is a trimmed-down PyPI JSON API response.
const flaskMetadata = `{
	"info": {"name": "flask", "version": "3.0.2"},
	"releases": {"2.0.1": [], "3.0.2": []}
}`

func newPyPITest(t *testing.T, handler http.HandlerFunc) *PyPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPyPI(config.RegistryConfig{
		Timeout:     2 * time.Second,
		PyPIBaseURL: srv.URL,
	})
}

func TestPyPI_Lookup(t *testing.T) {
	c := newPyPITest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flask/json" {
			t.Errorf("path = %q, want /flask/json", r.URL.Path)
		}
		_, _ = w.Write([]byte(flaskMetadata))
	})

	info := c.Lookup(context.Background(), "flask", "2.0.1")
	if info.LatestVersion != "3.0.2" {
		t.Errorf("LatestVersion = %q, want 3.0.2", info.LatestVersion)
	}
	if !info.Outdated {
		t.Error("Outdated = false, want true")
	}
	if info.Deprecated {
		t.Error("Deprecated = true, want false — PyPI has no deprecation signal")
	}
	if info.UpdateSeverity != "major" {
		t.Errorf("UpdateSeverity = %q, want major", info.UpdateSeverity)
	}
}

func TestPyPI_Lookup_UpToDate(t *testing.T) {
	c := newPyPITest(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(flaskMetadata))
	})

	info := c.Lookup(context.Background(), "flask", "3.0.2")
	if info.Outdated {
		t.Error("Outdated = true, want false for matching versions")
	}
	if info.UpdateSeverity != "" {
		t.Errorf("UpdateSeverity = %q, want empty", info.UpdateSeverity)
	}
}

func TestPyPI_Lookup_NoDeclaredVersion(t *testing.T) {
	c := newPyPITest(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(flaskMetadata))
	})

	info := c.Lookup(context.Background(), "flask", "")
	if info.Outdated {
		t.Error("Outdated = true, want false when no version was declared")
	}
	if info.LatestVersion != "3.0.2" {
		t.Errorf("LatestVersion = %q, want 3.0.2", info.LatestVersion)
	}
}

func TestPyPI_Lookup_Degrades(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "not found", http.StatusNotFound)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"info": [`))
			},
		},
		{
			name: "missing version field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"info": {"name": "flask"}}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPyPITest(t, tt.handler)
			info := c.Lookup(context.Background(), "flask", "2.0.1")
			if info != (Info{}) {
				t.Errorf("Lookup() = %+v, want zero Info", info)
			}
		})
	}
}

func TestPyPI_Lookup_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewPyPI(config.RegistryConfig{Timeout: time.Second, PyPIBaseURL: srv.URL})
	if info := c.Lookup(context.Background(), "flask", "2.0.1"); info != (Info{}) {
		t.Errorf("Lookup() = %+v, want zero Info", info)
	}
}
