// Package health turns per-package lookup results into health scores and
// recommendations, and aggregates them into batch reports.
//
// Scoring starts each package at 100 and applies independent additive
// penalties (outdated −20, vulnerabilities −15 each capped at −50, deprecated
// −30), floored at 0. The recommendation is chosen by fixed priority —
// deprecated, then vulnerable, then outdated — independent of the numeric
// score.
package health
