// Package types defines the shared Go types used across the service.
// These are the canonical in-memory representations of dependency health
// data, shared by the parser, the lookup clients, the analyzer, and the
// HTTP API.
package types
