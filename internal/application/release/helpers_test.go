package release

import (
	"context"
	"errors"
	"time"

	"github.com/stagegate/stagegate/internal/config"
	domainrel "github.com/stagegate/stagegate/internal/domain/release"
	sgerrors "github.com/stagegate/stagegate/internal/errors"
	gitsvc "github.com/stagegate/stagegate/internal/service/git"
)

// fakeGit is an in-memory Git implementation for use-case tests.
type fakeGit struct {
	root      string
	branch    string
	clean     bool
	head      gitsvc.Commit
	commits   []gitsvc.Commit // newest first, commits since the latest tag
	latestTag *gitsvc.Tag
	tags      map[string]gitsvc.Tag

	createdBranches []string
	createdTags     []string
	pushedBranches  []string
	pushedTags      []string
	resetTo         string

	pushErr error
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		root:   "/repo",
		branch: "main",
		clean:  true,
		head:   gitsvc.Commit{Hash: "headhash1234567", Subject: "feat: latest"},
		tags:   map[string]gitsvc.Tag{},
	}
}

func (f *fakeGit) withTag(name string) *fakeGit {
	tag := gitsvc.Tag{Name: name, Hash: "taghash", Date: time.Now()}
	f.tags[name] = tag
	f.latestTag = &tag
	return f
}

func (f *fakeGit) withCommits(subjects ...string) *fakeGit {
	f.commits = f.commits[:0]
	for i, s := range subjects {
		f.commits = append(f.commits, gitsvc.Commit{
			Hash:    string(rune('a'+i)) + "bcdef1234567890",
			Subject: s,
			Author:  gitsvc.Author{Name: "Alice"},
			Date:    time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}
	return f
}

func (f *fakeGit) GetRepositoryRoot(_ context.Context) (string, error) { return f.root, nil }
func (f *fakeGit) IsClean(_ context.Context) (bool, error)            { return f.clean, nil }

func (f *fakeGit) GetHeadCommit(_ context.Context) (*gitsvc.Commit, error) {
	head := f.head
	return &head, nil
}

func (f *fakeGit) GetCommitsSince(_ context.Context, _ string) ([]gitsvc.Commit, error) {
	return f.commits, nil
}

func (f *fakeGit) GetLatestVersionTag(_ context.Context, _ string) (*gitsvc.Tag, error) {
	if f.latestTag == nil {
		return nil, sgerrors.NotFound("git.GetLatestVersionTag", "no version tags found")
	}
	tag := *f.latestTag
	return &tag, nil
}

func (f *fakeGit) GetTag(_ context.Context, name string) (*gitsvc.Tag, error) {
	tag, ok := f.tags[name]
	if !ok {
		return nil, sgerrors.NotFound("git.GetTag", "tag not found: "+name)
	}
	return &tag, nil
}

func (f *fakeGit) CreateTag(_ context.Context, name, _ string, _ gitsvc.TagOptions) error {
	f.createdTags = append(f.createdTags, name)
	f.tags[name] = gitsvc.Tag{Name: name, Hash: f.head.Hash}
	return nil
}

func (f *fakeGit) PushTag(_ context.Context, name string, _ gitsvc.PushOptions) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushedTags = append(f.pushedTags, name)
	return nil
}

func (f *fakeGit) GetCurrentBranch(_ context.Context) (string, error) { return f.branch, nil }

func (f *fakeGit) CreateBranch(_ context.Context, name, _ string) error {
	f.createdBranches = append(f.createdBranches, name)
	f.branch = name
	return nil
}

func (f *fakeGit) ResetHard(_ context.Context, ref string) error {
	f.resetTo = ref
	return nil
}

func (f *fakeGit) PushBranch(_ context.Context, name string, _ gitsvc.PushOptions) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushedBranches = append(f.pushedBranches, name)
	return nil
}

// fakeChecks is a CheckProvider with scriptable outcomes.
type fakeChecks struct {
	tests CheckResult
	ci    CheckResult
}

func passingChecks() *fakeChecks {
	return &fakeChecks{
		tests: CheckResult{Passed: true},
		ci:    CheckResult{Passed: true},
	}
}

func (f *fakeChecks) RunTests(_ context.Context) CheckResult { return f.tests }
func (f *fakeChecks) CIStatus(_ context.Context, _ []string) CheckResult {
	return f.ci
}

// fakeSnapshots is an in-memory SnapshotRepository.
type fakeSnapshots struct {
	saved []*domainrel.Snapshot
}

func (f *fakeSnapshots) Save(_ context.Context, snap *domainrel.Snapshot) error {
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeSnapshots) List(_ context.Context) ([]*domainrel.Snapshot, error) {
	return f.saved, nil
}

func (f *fakeSnapshots) Latest(_ context.Context) (*domainrel.Snapshot, error) {
	if len(f.saved) == 0 {
		return nil, errors.New("no snapshots")
	}
	return f.saved[len(f.saved)-1], nil
}

// fakeManifest returns a fixed dependency list.
type fakeManifest struct {
	deps []domainrel.Dependency
}

func (f *fakeManifest) Read() ([]domainrel.Dependency, error) { return f.deps, nil }

func testConfig() *config.Config {
	return config.DefaultConfig()
}
