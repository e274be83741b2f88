package registry

import "github.com/Masterminds/semver/v3"

// updateSeverity classifies how far the declared version lags the latest one.
// Returns "major", "minor" or "patch", or "" when either version fails to
// parse as semver or the declared version is not behind.
func updateSeverity(declared, latest string) string {
	cur, err := semver.NewVersion(declared)
	if err != nil {
		return ""
	}
	lat, err := semver.NewVersion(latest)
	if err != nil {
		return ""
	}
	if !lat.GreaterThan(cur) {
		return ""
	}
	switch {
	case lat.Major() > cur.Major():
		return "major"
	case lat.Minor() > cur.Minor():
		return "minor"
	default:
		return "patch"
	}
}
