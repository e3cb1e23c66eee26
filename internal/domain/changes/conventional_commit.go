// Package changes provides domain types for classifying commit history.
package changes

import (
	"regexp"
	"strings"
	"time"

	"github.com/stagegate/stagegate/internal/domain/version"
)

// Commit is a read-only fact sourced from version-control history.
type Commit struct {
	Hash    string
	Subject string
	Body    string
	Author  string
	Date    time.Time
}

// ShortHash returns the short (7 character) commit hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// ClassifiedCommit is a commit whose subject line matched the
// conventional-commit grammar.
type ClassifiedCommit struct {
	Commit

	Type        CommitType
	Scope       string
	Description string
	Breaking    bool
}

var (
	// Matches: type(scope)!: subject or type!: subject or type(scope): subject or type: subject
	conventionalCommitRegex = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?(!)?\s*:\s*(.+)$`)

	// Matches BREAKING CHANGE: or BREAKING-CHANGE: at the start of a line.
	breakingChangeRegex = regexp.MustCompile(`(?im)^BREAKING[ -]CHANGE:`)
)

// Classify parses a commit subject line under the conventional-commit grammar.
// Returns nil when the subject does not conform or uses an unrecognized type;
// an unclassified commit is an expected outcome, not an error.
func Classify(c Commit) *ClassifiedCommit {
	matches := conventionalCommitRegex.FindStringSubmatch(strings.TrimSpace(c.Subject))
	if matches == nil {
		return nil
	}

	commitType, ok := ParseCommitType(matches[1])
	if !ok {
		return nil
	}

	breaking := matches[3] == "!"
	if !breaking {
		breaking = breakingChangeRegex.MatchString(c.Subject) || breakingChangeRegex.MatchString(c.Body)
	}

	return &ClassifiedCommit{
		Commit:      c,
		Type:        commitType,
		Scope:       matches[2],
		Description: strings.TrimSpace(matches[4]),
		Breaking:    breaking,
	}
}

// ClassifyAll classifies every commit, splitting the input into classified
// and unclassified commits. Input order is preserved in both results.
func ClassifyAll(commits []Commit) (classified []ClassifiedCommit, unclassified []Commit) {
	for _, c := range commits {
		if cc := Classify(c); cc != nil {
			classified = append(classified, *cc)
		} else {
			unclassified = append(unclassified, c)
		}
	}
	return classified, unclassified
}

// RequiredBump folds a set of commits into the version bump they require.
// Any breaking change demands a major bump, any feature a minor bump,
// everything else a patch bump. Commits that fail to classify never block
// the determination: an empty or fully unclassified set yields patch.
func RequiredBump(commits []Commit) version.BumpType {
	classified, _ := ClassifyAll(commits)

	bump := version.BumpPatch
	for _, cc := range classified {
		if cc.Breaking {
			return version.BumpMajor
		}
		if cc.Type == CommitTypeFeat {
			bump = version.BumpMinor
		}
	}
	return bump
}
