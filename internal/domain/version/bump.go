// Package version provides domain types for semantic versioning.
package version

import "fmt"

// BumpType represents the type of version bump to apply.
type BumpType string

const (
	// BumpMajor indicates a major version bump (breaking changes).
	BumpMajor BumpType = "major"
	// BumpMinor indicates a minor version bump (new features).
	BumpMinor BumpType = "minor"
	// BumpPatch indicates a patch version bump (bug fixes).
	BumpPatch BumpType = "patch"
)

// IsValid returns true if the bump type is valid.
func (b BumpType) IsValid() bool {
	switch b {
	case BumpMajor, BumpMinor, BumpPatch:
		return true
	default:
		return false
	}
}

// String returns the string representation of the bump type.
func (b BumpType) String() string {
	return string(b)
}

// ParseBumpType parses a string into a BumpType.
func ParseBumpType(s string) (BumpType, error) {
	bt := BumpType(s)
	if !bt.IsValid() {
		return "", fmt.Errorf("invalid bump type: %q (must be major, minor, or patch)", s)
	}
	return bt, nil
}

// Apply applies the bump to a semantic version and returns the new version.
// Major bumps reset minor and patch, minor bumps reset patch. Every bump
// clears prerelease and build metadata.
func (b BumpType) Apply(v SemanticVersion) SemanticVersion {
	switch b {
	case BumpMajor:
		return SemanticVersion{major: v.major + 1}
	case BumpMinor:
		return SemanticVersion{major: v.major, minor: v.minor + 1}
	case BumpPatch:
		return SemanticVersion{major: v.major, minor: v.minor, patch: v.patch + 1}
	default:
		return v
	}
}

// Increment parses a version string, applies the bump, and returns the result.
// Returns an error when the input does not parse as a semantic version.
func Increment(b BumpType, s string) (SemanticVersion, error) {
	v, err := Parse(s)
	if err != nil {
		return Zero, err
	}
	return b.Apply(v), nil
}
