// Package git provides git operations for StageGate.
package git

import (
	"context"
)

// Service defines the interface for git operations.
type Service interface {
	// Repository information

	// GetRepositoryRoot returns the absolute path to the repository root.
	GetRepositoryRoot(ctx context.Context) (string, error)

	// IsClean returns true if the working tree has no uncommitted changes.
	IsClean(ctx context.Context) (bool, error)

	// Commit operations

	// GetHeadCommit returns the current HEAD commit.
	GetHeadCommit(ctx context.Context) (*Commit, error)

	// GetCommitsSince returns all commits after the given reference, newest
	// first. An empty ref returns the full history from HEAD.
	GetCommitsSince(ctx context.Context, ref string) ([]Commit, error)

	// Tag operations

	// ListTags returns all tags in the repository, newest first.
	ListTags(ctx context.Context) ([]Tag, error)

	// ListVersionTags returns all tags matching the prefix whose remainder
	// parses as a semantic version, highest version first.
	ListVersionTags(ctx context.Context, prefix string) ([]Tag, error)

	// GetLatestVersionTag returns the highest version tag matching the prefix.
	GetLatestVersionTag(ctx context.Context, prefix string) (*Tag, error)

	// GetTag returns a specific tag by name, or an error if not found.
	GetTag(ctx context.Context, name string) (*Tag, error)

	// CreateTag creates a new tag.
	CreateTag(ctx context.Context, name, message string, opts TagOptions) error

	// PushTag pushes a tag to the remote.
	PushTag(ctx context.Context, name string, opts PushOptions) error

	// Branch operations

	// GetCurrentBranch returns the current branch name.
	GetCurrentBranch(ctx context.Context) (string, error)

	// CreateBranch creates a branch at the given start point and checks it out.
	// An empty start point branches from HEAD.
	CreateBranch(ctx context.Context, name, startPoint string) error

	// ResetHard resets the working tree and index to the given reference.
	ResetHard(ctx context.Context, ref string) error

	// PushBranch pushes a branch to the remote.
	PushBranch(ctx context.Context, name string, opts PushOptions) error
}
