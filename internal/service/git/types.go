package git

import "time"

// Commit represents a git commit.
type Commit struct {
	// Hash is the full commit hash.
	Hash string
	// ShortHash is the abbreviated commit hash.
	ShortHash string
	// Subject is the first line of the commit message.
	Subject string
	// Body is the commit message after the first line.
	Body string
	// Author is the commit author.
	Author Author
	// Date is the author date.
	Date time.Time
	// Parents are the parent commit hashes.
	Parents []string
}

// Author represents a commit author or tagger.
type Author struct {
	Name  string
	Email string
}

// Tag represents a git tag.
type Tag struct {
	// Name is the tag name (e.g. "v1.2.3").
	Name string
	// Hash is the commit hash the tag points to.
	Hash string
	// Message is the tag message (annotated tags only).
	Message string
	// IsAnnotated indicates an annotated tag (vs lightweight).
	IsAnnotated bool
	// Date is the tag date (tagger date for annotated, commit date otherwise).
	Date time.Time
	// Tagger is the tag creator (annotated tags only).
	Tagger *Author
}

// Branch represents a git branch.
type Branch struct {
	// Name is the short branch name.
	Name string
	// Hash is the commit hash the branch points to.
	Hash string
	// IsCurrent indicates the currently checked out branch.
	IsCurrent bool
}

// TagOptions configures tag creation.
type TagOptions struct {
	// Annotated creates an annotated tag (vs lightweight).
	Annotated bool
	// Ref is the reference to tag (default: HEAD).
	Ref string
}

// DefaultTagOptions returns the default tag options.
func DefaultTagOptions() TagOptions {
	return TagOptions{
		Annotated: true,
		Ref:       "HEAD",
	}
}

// PushOptions configures push operations.
type PushOptions struct {
	// Remote is the remote name (default: the service default remote).
	Remote string
	// Force enables force push.
	Force bool
	// DryRun simulates the push without contacting the remote.
	DryRun bool
}

// ServiceConfig configures the git service.
type ServiceConfig struct {
	// RepoPath is the path to the repository.
	RepoPath string
	// DefaultRemote is the default remote name.
	DefaultRemote string
	// TaggerName is the signature name used for annotated tags.
	TaggerName string
	// TaggerEmail is the signature email used for annotated tags.
	TaggerEmail string
}

// DefaultServiceConfig returns the default service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		RepoPath:      ".",
		DefaultRemote: "origin",
		TaggerName:    "StageGate",
		TaggerEmail:   "stagegate@localhost",
	}
}

// ServiceOption configures the git service.
type ServiceOption func(*ServiceConfig)

// WithRepoPath sets the repository path.
func WithRepoPath(path string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.RepoPath = path
	}
}

// WithDefaultRemote sets the default remote.
func WithDefaultRemote(remote string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.DefaultRemote = remote
	}
}

// WithTagger sets the signature used for annotated tags.
func WithTagger(name, email string) ServiceOption {
	return func(cfg *ServiceConfig) {
		cfg.TaggerName = name
		cfg.TaggerEmail = email
	}
}
