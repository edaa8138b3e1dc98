package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersion reports whether the CLI version satisfies the manifest's
// min_version constraint. A bare version such as "0.3.0" is read as ">= 0.3.0".
// Development builds whose version is not semver are always accepted.
func (m *TemplateManifest) CheckVersion(cliVersion string) error {
	if m == nil || m.MinVersion == "" {
		return nil
	}

	v, err := parseSemver(cliVersion)
	if err != nil {
		return nil
	}

	constraint := strings.TrimSpace(m.MinVersion)
	if _, err := semver.NewVersion(strings.TrimPrefix(constraint, "v")); err == nil {
		constraint = ">= " + constraint
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("template %q: parsing min_version %q: %w", m.Name, m.MinVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("template %q requires version %s, this is %s", m.Name, m.MinVersion, cliVersion)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
