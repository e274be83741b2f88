// Package alerts evaluates threshold rules against every completed analysis
// report and delivers webhook notifications when rules fire or resolve.
//
// Rules are simple "field operator value" expressions over the report's
// aggregate fields, e.g. "overall_health_score < 60" or
// "vulnerable_count > 0". Alert state is tracked per rule and ecosystem, so
// a later report for the same ecosystem resolves a previously firing rule.
package alerts
