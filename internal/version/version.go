package version

// Version is the current version of the halcyon-trading library.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/halcyon-lab/halcyon-trading/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "v1.0.0"

// ResultsSchemaVersion is the schema version stamped into comparison results
// files when they are written. Readers call CheckSchemaCompatibility before
// trusting a file's contents.
const ResultsSchemaVersion = "1.0.0"

// GetVersion returns the current version of the library.
func GetVersion() string {
	return Version
}
