package release

import (
	"fmt"
	"strings"

	"github.com/stagegate/stagegate/internal/domain/changes"
)

// BuildNotes renders release notes for a version from the commits since the
// last release, newest first. Section order is a contract: Features, Bug
// Fixes, Other Changes (remaining classified types in first-seen order), then
// Other for commits that do not conform to the conventional grammar. Every
// bullet is the verbatim commit subject with its short hash. Empty sections
// are omitted. With enforcement disabled every commit lands in a single
// Changes section in chronological order.
func BuildNotes(version string, commits []changes.Commit, enforce bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Release %s\n", version)

	if !enforce {
		if len(commits) > 0 {
			b.WriteString("\n## Changes\n\n")
			// History arrives newest first; chronological means oldest first.
			for i := len(commits) - 1; i >= 0; i-- {
				fmt.Fprintf(&b, "- %s (%s)\n", commits[i].Subject, commits[i].ShortHash())
			}
		}
		return b.String()
	}

	classified, unclassified := changes.ClassifyAll(commits)

	features := make([]changes.ClassifiedCommit, 0, len(classified))
	fixes := make([]changes.ClassifiedCommit, 0, len(classified))
	other := make([]changes.ClassifiedCommit, 0, len(classified))
	for _, c := range classified {
		switch c.Type {
		case changes.CommitTypeFeat:
			features = append(features, c)
		case changes.CommitTypeFix:
			fixes = append(fixes, c)
		default:
			other = append(other, c)
		}
	}

	if len(features) > 0 {
		b.WriteString("\n## Features\n\n")
		for _, c := range features {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Subject, c.ShortHash())
		}
	}

	if len(fixes) > 0 {
		b.WriteString("\n## Bug Fixes\n\n")
		for _, c := range fixes {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Subject, c.ShortHash())
		}
	}

	if len(other) > 0 {
		b.WriteString("\n## Other Changes\n\n")
		// Grouped by type in order of first appearance.
		seen := make(map[changes.CommitType]bool, len(other))
		for _, lead := range other {
			if seen[lead.Type] {
				continue
			}
			seen[lead.Type] = true
			for _, c := range other {
				if c.Type == lead.Type {
					fmt.Fprintf(&b, "- **%s:** %s (%s)\n", c.Type, c.Subject, c.ShortHash())
				}
			}
		}
	}

	if len(unclassified) > 0 {
		b.WriteString("\n## Other\n\n")
		for _, c := range unclassified {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Subject, c.ShortHash())
		}
	}

	return b.String()
}
