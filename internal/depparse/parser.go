package depparse

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/Ade-Adebayo/package-health-agent/pkg/types"
)

// operators is the fixed priority order used to split a constraint string.
// The first operator in this order that occurs anywhere in the entry wins.
var operators = []string{"==", ">=", "<=", ">", "<", "~="}

// constraintPrefix is the set of range markers stripped from the front of a
// package.json version value ("^4.17.1" → "4.17.1").
const constraintPrefix = "^~>=<"

// Requirements parses requirements-style entries into dependencies.
// Entries that are empty after trimming or start with "#" are skipped.
func Requirements(entries []string) []types.Dependency {
	deps := make([]types.Dependency, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		deps = append(deps, splitConstraint(entry))
	}
	return deps
}

// RequirementsText parses the content of a requirements.txt file.
func RequirementsText(content string) []types.Dependency {
	return Requirements(strings.Split(content, "\n"))
}

// splitConstraint splits one entry at the first comparison operator found in
// priority order. Entries without an operator are a bare name with no
// declared version.
func splitConstraint(entry string) types.Dependency {
	for _, op := range operators {
		if idx := strings.Index(entry, op); idx >= 0 {
			return types.Dependency{
				Name:    strings.TrimSpace(entry[:idx]),
				Version: strings.TrimSpace(entry[idx+len(op):]),
			}
		}
	}
	return types.Dependency{Name: entry}
}

// DependencyMaps merges a dependencies and a devDependencies map (dev entries
// override on name collision) and normalizes each entry. Range markers are
// stripped from the front of the version value; the name is used as-is.
//
// JSON objects carry no ordering through Go maps, so the merged batch is
// returned in sorted name order to keep reports deterministic.
func DependencyMaps(deps, devDeps map[string]string) []types.Dependency {
	merged := make(map[string]string, len(deps)+len(devDeps))
	for name, v := range deps {
		merged[name] = v
	}
	for name, v := range devDeps {
		merged[name] = v
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]types.Dependency, 0, len(names))
	for _, name := range names {
		out = append(out, types.Dependency{
			Name:    name,
			Version: strings.TrimLeft(merged[name], constraintPrefix),
		})
	}
	return out
}

// packageJSON is the subset of package.json the parser reads.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// PackageJSON parses raw package.json content and returns the merged
// dependency list. Malformed JSON yields an empty batch rather than an error;
// the caller treats an empty batch as a validation failure.
func PackageJSON(content []byte) []types.Dependency {
	var pkg packageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil
	}
	return DependencyMaps(pkg.Dependencies, pkg.DevDependencies)
}
