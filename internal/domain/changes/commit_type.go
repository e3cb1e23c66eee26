// Package changes provides domain types for classifying commit history.
package changes

import "strings"

// CommitType represents the type of a conventional commit.
type CommitType string

// Standard conventional commit types.
const (
	CommitTypeBuild    CommitType = "build"
	CommitTypeChore    CommitType = "chore"
	CommitTypeCI       CommitType = "ci"
	CommitTypeDocs     CommitType = "docs"
	CommitTypeFeat     CommitType = "feat"
	CommitTypeFix      CommitType = "fix"
	CommitTypePerf     CommitType = "perf"
	CommitTypeRefactor CommitType = "refactor"
	CommitTypeRevert   CommitType = "revert"
	CommitTypeStyle    CommitType = "style"
	CommitTypeTest     CommitType = "test"
)

// AllCommitTypes returns all recognized commit types.
func AllCommitTypes() []CommitType {
	return []CommitType{
		CommitTypeBuild,
		CommitTypeChore,
		CommitTypeCI,
		CommitTypeDocs,
		CommitTypeFeat,
		CommitTypeFix,
		CommitTypePerf,
		CommitTypeRefactor,
		CommitTypeRevert,
		CommitTypeStyle,
		CommitTypeTest,
	}
}

// IsValid returns true if the commit type is a recognized type.
func (t CommitType) IsValid() bool {
	switch t {
	case CommitTypeBuild, CommitTypeChore, CommitTypeCI, CommitTypeDocs,
		CommitTypeFeat, CommitTypeFix, CommitTypePerf, CommitTypeRefactor,
		CommitTypeRevert, CommitTypeStyle, CommitTypeTest:
		return true
	default:
		return false
	}
}

// String returns the string representation of the commit type.
func (t CommitType) String() string {
	return string(t)
}

// ParseCommitType parses a string into a CommitType.
// Matching is case-insensitive. Returns false for unrecognized types.
func ParseCommitType(s string) (CommitType, bool) {
	t := CommitType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, true
	}
	return "", false
}
