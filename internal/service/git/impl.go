package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	sgerrors "github.com/stagegate/stagegate/internal/errors"
)

// errStopIteration is a sentinel error used to signal early termination of commit iteration.
var errStopIteration = errors.New("stop iteration")

// Ensure ServiceImpl implements Service.
var _ Service = (*ServiceImpl)(nil)

// ServiceImpl is the go-git implementation of the git service.
type ServiceImpl struct {
	cfg      ServiceConfig
	repo     *git.Repository
	worktree *git.Worktree
}

// NewService creates a new git service rooted at the configured path.
func NewService(opts ...ServiceOption) (*ServiceImpl, error) {
	const op = "git.NewService"

	cfg := DefaultServiceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	absPath, err := filepath.Abs(cfg.RepoPath)
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to get absolute path")
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to open repository")
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to get worktree")
	}

	return &ServiceImpl{
		cfg:      cfg,
		repo:     repo,
		worktree: worktree,
	}, nil
}

// GetRepositoryRoot returns the absolute path to the repository root.
func (s *ServiceImpl) GetRepositoryRoot(_ context.Context) (string, error) {
	return s.worktree.Filesystem.Root(), nil
}

// IsClean returns true if the working tree has no uncommitted changes.
func (s *ServiceImpl) IsClean(_ context.Context) (bool, error) {
	const op = "git.IsClean"

	status, err := s.worktree.Status()
	if err != nil {
		return false, sgerrors.GitWrap(err, op, "failed to get worktree status")
	}

	return status.IsClean(), nil
}

// GetHeadCommit returns the current HEAD commit.
func (s *ServiceImpl) GetHeadCommit(_ context.Context) (*Commit, error) {
	const op = "git.GetHeadCommit"

	head, err := s.repo.Head()
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to get HEAD")
	}

	commit, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to get HEAD commit")
	}

	return s.convertCommit(commit), nil
}

// GetCommitsSince returns all commits after the given reference, newest first.
// An empty ref returns the full history from HEAD.
func (s *ServiceImpl) GetCommitsSince(ctx context.Context, ref string) ([]Commit, error) {
	const op = "git.GetCommitsSince"

	stop := plumbing.ZeroHash
	if ref != "" {
		hash, err := s.resolveRef(ref)
		if err != nil {
			return nil, sgerrors.GitWrap(err, op, fmt.Sprintf("failed to resolve reference %s", ref))
		}
		stop = hash
	}

	head, err := s.repo.Head()
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to get HEAD")
	}

	iter, err := s.repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to get log iterator")
	}
	defer iter.Close()

	commits := make([]Commit, 0, 50)
	err = iter.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if c.Hash == stop {
			return errStopIteration
		}
		commits = append(commits, *s.convertCommit(c))
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		if ctx.Err() != nil {
			return nil, sgerrors.GitWrap(ctx.Err(), op, "operation canceled")
		}
		return nil, sgerrors.GitWrap(err, op, "failed to iterate commits")
	}

	return commits, nil
}

// ListTags returns all tags in the repository, newest first.
func (s *ServiceImpl) ListTags(ctx context.Context) ([]Tag, error) {
	const op = "git.ListTags"

	tags := make([]Tag, 0, 20)

	iter, err := s.repo.Tags()
	if err != nil {
		return nil, sgerrors.GitWrap(err, op, "failed to get tags iterator")
	}
	defer iter.Close()

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		tags = append(tags, *s.convertTag(ref))
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, sgerrors.GitWrap(ctx.Err(), op, "operation canceled")
		}
		return nil, sgerrors.GitWrap(err, op, "failed to iterate tags")
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Date.After(tags[j].Date)
	})

	return tags, nil
}

// versionTagEntry holds a tag with its pre-parsed semver version.
type versionTagEntry struct {
	tag     Tag
	version *semver.Version
}

// ListVersionTags returns all tags matching the prefix whose remainder parses
// as a semantic version, highest version first.
func (s *ServiceImpl) ListVersionTags(ctx context.Context, prefix string) ([]Tag, error) {
	allTags, err := s.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]versionTagEntry, 0, len(allTags))
	for _, tag := range allTags {
		name := tag.Name
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}

		versionStr := strings.TrimPrefix(name, prefix)
		if v, err := semver.StrictNewVersion(versionStr); err == nil {
			entries = append(entries, versionTagEntry{tag: tag, version: v})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].version.GreaterThan(entries[j].version)
	})

	versionTags := make([]Tag, len(entries))
	for i, e := range entries {
		versionTags[i] = e.tag
	}

	return versionTags, nil
}

// GetLatestVersionTag returns the highest version tag matching the prefix.
func (s *ServiceImpl) GetLatestVersionTag(ctx context.Context, prefix string) (*Tag, error) {
	tags, err := s.ListVersionTags(ctx, prefix)
	if err != nil {
		return nil, err
	}

	if len(tags) == 0 {
		return nil, sgerrors.NotFound("git.GetLatestVersionTag", "no version tags found")
	}

	return &tags[0], nil
}

// GetTag returns a specific tag by name, or an error if not found.
func (s *ServiceImpl) GetTag(_ context.Context, name string) (*Tag, error) {
	const op = "git.GetTag"

	tagRef, err := s.repo.Tag(name)
	if err != nil {
		return nil, sgerrors.NotFound(op, fmt.Sprintf("tag not found: %s", name))
	}

	return s.convertTag(tagRef), nil
}

// CreateTag creates a new tag at the configured reference.
func (s *ServiceImpl) CreateTag(_ context.Context, name, message string, opts TagOptions) error {
	const op = "git.CreateTag"

	ref := opts.Ref
	if ref == "" {
		ref = "HEAD"
	}

	hash, err := s.resolveRef(ref)
	if err != nil {
		return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to resolve reference %s", ref))
	}

	if opts.Annotated {
		_, err = s.repo.CreateTag(name, hash, &git.CreateTagOptions{
			Message: message,
			Tagger: &object.Signature{
				Name:  s.cfg.TaggerName,
				Email: s.cfg.TaggerEmail,
				When:  time.Now(),
			},
		})
	} else {
		refName := plumbing.NewTagReferenceName(name)
		tagRef := plumbing.NewHashReference(refName, hash)
		err = s.repo.Storer.SetReference(tagRef)
	}

	if err != nil {
		return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to create tag %s", name))
	}

	return nil
}

// PushTag pushes a tag to the remote.
func (s *ServiceImpl) PushTag(_ context.Context, name string, opts PushOptions) error {
	const op = "git.PushTag"

	if opts.DryRun {
		return nil
	}

	remote := opts.Remote
	if remote == "" {
		remote = s.cfg.DefaultRemote
	}

	refSpec := config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", name, name))

	err := s.repo.Push(&git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Force:      opts.Force,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to push tag %s", name))
	}

	return nil
}

// GetCurrentBranch returns the current branch name.
func (s *ServiceImpl) GetCurrentBranch(_ context.Context) (string, error) {
	const op = "git.GetCurrentBranch"

	head, err := s.repo.Head()
	if err != nil {
		return "", sgerrors.GitWrap(err, op, "failed to get HEAD")
	}

	if !head.Name().IsBranch() {
		return "", sgerrors.Git(op, "HEAD is not on a branch (detached HEAD)")
	}

	return head.Name().Short(), nil
}

// CreateBranch creates a branch at the given start point and checks it out.
// An empty start point branches from HEAD.
func (s *ServiceImpl) CreateBranch(_ context.Context, name, startPoint string) error {
	const op = "git.CreateBranch"

	hash := plumbing.ZeroHash
	if startPoint != "" {
		resolved, err := s.resolveRef(startPoint)
		if err != nil {
			return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to resolve start point %s", startPoint))
		}
		hash = resolved
	} else {
		head, err := s.repo.Head()
		if err != nil {
			return sgerrors.GitWrap(err, op, "failed to get HEAD")
		}
		hash = head.Hash()
	}

	err := s.worktree.Checkout(&git.CheckoutOptions{
		Hash:   hash,
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	if err != nil {
		return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to create branch %s", name))
	}

	return nil
}

// ResetHard resets the working tree and index to the given reference.
func (s *ServiceImpl) ResetHard(_ context.Context, ref string) error {
	const op = "git.ResetHard"

	hash, err := s.resolveRef(ref)
	if err != nil {
		return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to resolve reference %s", ref))
	}

	err = s.worktree.Reset(&git.ResetOptions{
		Commit: hash,
		Mode:   git.HardReset,
	})
	if err != nil {
		return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to reset to %s", ref))
	}

	return nil
}

// PushBranch pushes a branch to the remote.
func (s *ServiceImpl) PushBranch(_ context.Context, name string, opts PushOptions) error {
	const op = "git.PushBranch"

	if opts.DryRun {
		return nil
	}

	remote := opts.Remote
	if remote == "" {
		remote = s.cfg.DefaultRemote
	}

	refSpec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", name, name))

	err := s.repo.Push(&git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Force:      opts.Force,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return sgerrors.GitWrap(err, op, fmt.Sprintf("failed to push branch %s", name))
	}

	return nil
}

// Helper methods

// resolveRef resolves a reference (tag, branch, or commit hash) to a hash.
func (s *ServiceImpl) resolveRef(ref string) (plumbing.Hash, error) {
	if plumbing.IsHash(ref) {
		return plumbing.NewHash(ref), nil
	}

	resolved, err := s.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve reference %s: %w", ref, err)
	}

	return *resolved, nil
}

// convertCommit converts a go-git commit to our Commit type.
func (s *ServiceImpl) convertCommit(c *object.Commit) *Commit {
	subject, body := splitMessage(c.Message)

	parents := make([]string, 0, len(c.ParentHashes))
	for _, parent := range c.ParentHashes {
		parents = append(parents, parent.String())
	}

	hashStr := c.Hash.String()

	return &Commit{
		Hash:      hashStr,
		ShortHash: hashStr[:7],
		Subject:   subject,
		Body:      body,
		Author: Author{
			Name:  c.Author.Name,
			Email: c.Author.Email,
		},
		Date:    c.Author.When,
		Parents: parents,
	}
}

// convertTag converts a go-git tag reference to our Tag type.
func (s *ServiceImpl) convertTag(ref *plumbing.Reference) *Tag {
	tag := &Tag{
		Name: ref.Name().Short(),
		Hash: ref.Hash().String(),
	}

	tagObj, err := s.repo.TagObject(ref.Hash())
	if err == nil {
		// Annotated tag
		tag.Message = tagObj.Message
		tag.IsAnnotated = true
		tag.Date = tagObj.Tagger.When
		tag.Tagger = &Author{
			Name:  tagObj.Tagger.Name,
			Email: tagObj.Tagger.Email,
		}
		if commit, err := tagObj.Commit(); err == nil {
			tag.Hash = commit.Hash.String()
		}
	} else {
		// Lightweight tag points directly at the commit
		if commit, err := s.repo.CommitObject(ref.Hash()); err == nil {
			tag.Date = commit.Author.When
		} else {
			tag.Date = time.Now()
		}
	}

	return tag
}

// splitMessage splits a commit message into subject and body.
func splitMessage(message string) (subject, body string) {
	lines := strings.SplitN(strings.TrimSpace(message), "\n", 2)
	subject = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		body = strings.TrimSpace(lines[1])
	}
	return subject, body
}
