// Package store keeps recently completed analysis reports in memory.
// It provides a thread-safe report store with TTL eviction; external lookup
// results are never cached here — only finished reports.
package store
