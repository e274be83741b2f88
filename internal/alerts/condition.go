package alerts

import (
	"strconv"
	"strings"

	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// evalCondition evaluates a rule condition string against a completed report.
//
// Supported expressions (field operator value):
//
//	overall_health_score < 60
//	vulnerable_count > 0
//	outdated_count >= 3
//	deprecated_count > 0
//	total_packages > 100
//	ecosystem == npm
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is
// unknown.
func evalCondition(cond string, eco types.Ecosystem, report *types.OverallHealth) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if field == "ecosystem" {
		if op == "==" {
			return string(eco) == rhs, 0
		}
		return false, 0
	}

	v, ok := numericField(field, report)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a field name to its value in the report.
func numericField(field string, report *types.OverallHealth) (float64, bool) {
	switch field {
	case "overall_health_score":
		return float64(report.OverallHealthScore), true
	case "vulnerable_count":
		return float64(report.VulnerableCount), true
	case "outdated_count":
		return float64(report.OutdatedCount), true
	case "deprecated_count":
		return float64(report.DeprecatedCount), true
	case "total_packages":
		return float64(report.TotalPackages), true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
