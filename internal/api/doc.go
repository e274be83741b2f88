// Package api exposes the dependency-health service over HTTP.
//
// All endpoints live under /api/v1 and speak JSON. The analysis endpoints
// parse declared dependencies, run the evaluation pipeline, retain the
// finished report in the store, and feed the alert engine. Routing is a
// stdlib ServeMux; no external HTTP framework is used.
package api
