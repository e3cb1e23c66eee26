// Package release provides the release domain model: branch and tag naming,
// the release lifecycle state machine, and the immutable release snapshot.
package release

import (
	"fmt"
	"strings"
	"time"

	"github.com/stagegate/stagegate/internal/domain/version"
)

// BranchType identifies the kind of branch a name is derived for.
type BranchType string

const (
	// BranchTypeFeature is a feature development branch.
	BranchTypeFeature BranchType = "feature"
	// BranchTypeHotfix is a hotfix branch cut from a released tag.
	BranchTypeHotfix BranchType = "hotfix"
	// BranchTypeRelease is a release stabilization branch.
	BranchTypeRelease BranchType = "release"
)

// IsValid returns true if the branch type is recognized.
func (t BranchType) IsValid() bool {
	switch t {
	case BranchTypeFeature, BranchTypeHotfix, BranchTypeRelease:
		return true
	default:
		return false
	}
}

// NamingPolicy derives deterministic branch and tag names from the
// configured prefixes.
type NamingPolicy struct {
	TagPrefix     string
	ReleasePrefix string
	HotfixPrefix  string
	FeaturePrefix string
}

// ReleaseBranch returns the branch name for a release of the given version.
func (p NamingPolicy) ReleaseBranch(v version.SemanticVersion) string {
	return p.ReleasePrefix + v.String()
}

// ReleaseTag returns the tag name for a release of the given version.
func (p NamingPolicy) ReleaseTag(v version.SemanticVersion) string {
	return p.TagPrefix + v.String()
}

// HotfixBranch derives the hotfix branch for a base tag: the tag prefix is
// stripped if present, the recovered version is patch-bumped, and the hotfix
// prefix is applied. The bumped version is returned alongside the name.
func (p NamingPolicy) HotfixBranch(baseTag string) (string, version.SemanticVersion, error) {
	base := strings.TrimPrefix(baseTag, p.TagPrefix)
	v, err := version.Parse(base)
	if err != nil {
		return "", version.Zero, fmt.Errorf("base tag %q does not contain a semantic version: %w", baseTag, err)
	}
	next := version.BumpPatch.Apply(v)
	return p.HotfixPrefix + next.String(), next, nil
}

// RollbackBranch derives a rollback branch name for a tag. The timestamp
// guarantees uniqueness across repeated rollbacks of the same tag.
func (p NamingPolicy) RollbackBranch(tag string, now time.Time) string {
	return fmt.Sprintf("rollback-to-%s-%d", tag, now.Unix())
}

// BranchFor derives a generic named branch for the given type.
// An unrecognized type is an input-validation failure.
func (p NamingPolicy) BranchFor(t BranchType, name string) (string, error) {
	switch t {
	case BranchTypeFeature:
		return p.FeaturePrefix + name, nil
	case BranchTypeHotfix:
		return p.HotfixPrefix + name, nil
	case BranchTypeRelease:
		return p.ReleasePrefix + name, nil
	default:
		return "", fmt.Errorf("unknown branch type: %q (must be feature, hotfix, or release)", t)
	}
}
