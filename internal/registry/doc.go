// Package registry looks up published package metadata from the PyPI and npm
// registries.
//
// Lookups are single bounded-timeout attempts with no retries. Every failure
// mode — network error, non-200 status, malformed body — degrades to the zero
// Info value and is logged; a registry outage never fails an analysis.
package registry
