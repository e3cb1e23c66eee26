package release

import (
	"time"

	"github.com/google/uuid"

	"github.com/stagegate/stagegate/internal/domain/changes"
)

// Dependency is a simplified entry from the project's dependency manifest,
// captured at release time.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CommitSummary is the portion of a commit recorded in a snapshot.
type CommitSummary struct {
	Hash    string    `json:"hash"`
	Subject string    `json:"subject"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// Snapshot is an immutable point-in-time audit record of a release.
// It is created once at finalize time and never mutated afterwards.
type Snapshot struct {
	ID           string          `json:"id"`
	Version      string          `json:"version"`
	Tag          string          `json:"tag"`
	PreviousTag  string          `json:"previous_tag,omitempty"`
	Branch       string          `json:"branch"`
	CommitSHA    string          `json:"commit_sha"`
	CreatedAt    time.Time       `json:"created_at"`
	Config       map[string]any  `json:"config"`
	Commits      []CommitSummary `json:"commits"`
	Dependencies []Dependency    `json:"dependencies"`
}

// SnapshotFacts carries the version-control facts a snapshot is built from.
type SnapshotFacts struct {
	CommitSHA   string
	Branch      string
	Tag         string
	PreviousTag string
}

// NewSnapshot builds a snapshot record. Pure aggregation: the caller is
// responsible for persisting the result.
func NewSnapshot(v string, facts SnapshotFacts, cfg map[string]any, commits []changes.Commit, deps []Dependency, now time.Time) *Snapshot {
	summaries := make([]CommitSummary, 0, len(commits))
	for _, c := range commits {
		summaries = append(summaries, CommitSummary{
			Hash:    c.Hash,
			Subject: c.Subject,
			Author:  c.Author,
			Date:    c.Date,
		})
	}

	if deps == nil {
		deps = []Dependency{}
	}

	return &Snapshot{
		ID:           uuid.NewString(),
		Version:      v,
		Tag:          facts.Tag,
		PreviousTag:  facts.PreviousTag,
		Branch:       facts.Branch,
		CommitSHA:    facts.CommitSHA,
		CreatedAt:    now.UTC(),
		Config:       cfg,
		Commits:      summaries,
		Dependencies: deps,
	}
}
