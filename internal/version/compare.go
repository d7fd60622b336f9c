package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// CheckSchemaCompatibility checks whether a results file written at
// fileVersion can be read by a reader expecting readerVersion.
// Returns nil if compatible, an error with details if not.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 reads a 1.2.5 file)
func CheckSchemaCompatibility(readerVersion, fileVersion string) error {
	// Strip 'v' prefix if present for consistency
	readerVersion = strings.TrimPrefix(readerVersion, "v")
	fileVersion = strings.TrimPrefix(fileVersion, "v")

	// Skip version check for "main" (development builds)
	if readerVersion == "main" || fileVersion == "main" {
		return nil
	}

	readerSemver, err := semver.NewVersion(readerVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid reader version '%s'", readerVersion)
	}

	fileSemver, err := semver.NewVersion(fileVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid file version '%s'", fileVersion)
	}

	if readerSemver.Major() != fileSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"major version mismatch: reader expects %d.x.x but the file was written at %d.x.x",
			readerSemver.Major(), fileSemver.Major())
	}

	if readerSemver.Minor() != fileSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"minor version mismatch: reader expects %d.%d.x but the file was written at %d.%d.x",
			readerSemver.Major(), readerSemver.Minor(),
			fileSemver.Major(), fileSemver.Minor())
	}

	// Patch versions can differ, so we're compatible
	return nil
}
