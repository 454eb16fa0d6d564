package toolrunner

import (
	"strings"

	"golang.org/x/mod/semver"
)

// MinPNPMVersion is the oldest pnpm release whose `dlx` and `store path`
// behave as the generator step expects.
const MinPNPMVersion = "v8.0.0"

// normalizeVersion turns tool output such as "9.1.0" or "v10.2.1\n" into a
// canonical semver string, or "" when the output is not a version.
func normalizeVersion(out string) string {
	v := strings.TrimSpace(out)
	if i := strings.LastIndexAny(v, " \n"); i >= 0 {
		v = v[i+1:]
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// AtLeast reports whether version is a valid semver at or above minimum.
func AtLeast(version, minimum string) bool {
	v := normalizeVersion(version)
	if v == "" {
		return false
	}
	return semver.Compare(v, minimum) >= 0
}
