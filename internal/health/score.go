package health

import "fmt"

// Penalty constants for the health score formula. Penalties are independent
// and stack; the result never goes below zero.
const (
	baseScore         = 100
	outdatedPenalty   = 20
	vulnPenalty       = 15 // per advisory
	maxVulnPenalty    = 50
	deprecatedPenalty = 30
)

// Recommendation messages. The priority order is deprecated → vulnerable →
// outdated → healthy, regardless of the numeric score.
const (
	recDeprecated = "⚠️ CRITICAL: Package is deprecated. Find an alternative immediately."
	recVulnerable = "🚨 URGENT: %d vulnerabilities found. Update immediately."
	recOutdated   = "⚡ Update recommended to latest version."
	recHealthy    = "✅ Package is healthy and up-to-date."
)

// Score computes the 0–100 health score for one package.
func Score(outdated bool, vulnCount int, deprecated bool) int {
	score := baseScore
	if outdated {
		score -= outdatedPenalty
	}
	if vulnCount > 0 {
		penalty := vulnCount * vulnPenalty
		if penalty > maxVulnPenalty {
			penalty = maxVulnPenalty
		}
		score -= penalty
	}
	if deprecated {
		score -= deprecatedPenalty
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Recommendation picks the single highest-priority message for the package's
// condition. A deprecated package gets the deprecation message even when it
// also has vulnerabilities or a pending update.
func Recommendation(outdated bool, vulnCount int, deprecated bool) string {
	switch {
	case deprecated:
		return recDeprecated
	case vulnCount > 0:
		return fmt.Sprintf(recVulnerable, vulnCount)
	case outdated:
		return recOutdated
	default:
		return recHealthy
	}
}

// Evaluate combines Score and Recommendation for one package.
func Evaluate(outdated bool, vulnCount int, deprecated bool) (int, string) {
	return Score(outdated, vulnCount, deprecated),
		Recommendation(outdated, vulnCount, deprecated)
}
