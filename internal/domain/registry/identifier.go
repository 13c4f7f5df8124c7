package registry

import (
	"fmt"
	"regexp"
	"strconv"
)

// identifierPattern anchors on the last "-v<digits>" so base names may
// themselves contain hyphens (Env-test-v10 -> Env-test, 10).
var identifierPattern = regexp.MustCompile(`^(.+)-v([0-9]+)$`)

// ParseIdentifier splits an environment identifier into its base name and
// version.
// Format: {name}-v{version}
// Example: Snake-v1, Env-test-v10
func ParseIdentifier(id string) (string, int, error) {
	match := identifierPattern.FindStringSubmatch(id)
	if match == nil {
		return "", 0, fmt.Errorf("%w: %q does not match {name}-v{version}", ErrInvalidIdentifier, id)
	}

	version, err := strconv.Atoi(match[2])
	if err != nil {
		// Only reachable when the digits overflow int.
		return "", 0, fmt.Errorf("%w: %q has an out of range version", ErrInvalidIdentifier, id)
	}

	return match[1], version, nil
}

// FormatIdentifier builds an identifier from a base name and version.
func FormatIdentifier(name string, version int) string {
	return fmt.Sprintf("%s-v%d", name, version)
}
