package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	sgerrors "github.com/stagegate/stagegate/internal/errors"
)

// testRepoHelper provides helper functions for creating test git repositories.
type testRepoHelper struct {
	t       *testing.T
	repoDir string
	repo    *gogit.Repository
}

// newTestRepo creates a new test repository in a temporary directory.
func newTestRepo(t *testing.T) *testRepoHelper {
	t.Helper()

	repoDir := t.TempDir()
	repo, err := gogit.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("failed to init test repo: %v", err)
	}

	return &testRepoHelper{
		t:       t,
		repoDir: repoDir,
		repo:    repo,
	}
}

// makeCommit creates a test commit in the repository.
func (h *testRepoHelper) makeCommit(message string) string {
	h.t.Helper()

	filename := filepath.Join(h.repoDir, "test.txt")
	if err := os.WriteFile(filename, []byte(message), 0o644); err != nil {
		h.t.Fatalf("failed to write test file: %v", err)
	}

	worktree, err := h.repo.Worktree()
	if err != nil {
		h.t.Fatalf("failed to get worktree: %v", err)
	}

	if _, err := worktree.Add("test.txt"); err != nil {
		h.t.Fatalf("failed to stage file: %v", err)
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		h.t.Fatalf("failed to commit: %v", err)
	}

	return hash.String()
}

// makeTag creates a test tag. A non-empty message creates an annotated tag.
func (h *testRepoHelper) makeTag(name, message string) {
	h.t.Helper()

	head, err := h.repo.Head()
	if err != nil {
		h.t.Fatalf("failed to get HEAD: %v", err)
	}

	if message != "" {
		_, err = h.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
			Message: message,
			Tagger: &object.Signature{
				Name:  "Test Tagger",
				Email: "tagger@example.com",
				When:  time.Now(),
			},
		})
	} else {
		refName := plumbing.NewTagReferenceName(name)
		ref := plumbing.NewHashReference(refName, head.Hash())
		err = h.repo.Storer.SetReference(ref)
	}

	if err != nil {
		h.t.Fatalf("failed to create tag: %v", err)
	}
}

// service opens a git service against the test repository.
func (h *testRepoHelper) service(opts ...ServiceOption) *ServiceImpl {
	h.t.Helper()

	opts = append([]ServiceOption{WithRepoPath(h.repoDir)}, opts...)
	svc, err := NewService(opts...)
	if err != nil {
		h.t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("success with default options", func(t *testing.T) {
		helper := newTestRepo(t)
		helper.makeCommit("initial commit")

		svc, err := NewService(WithRepoPath(helper.repoDir))
		if err != nil {
			t.Fatalf("NewService() error = %v", err)
		}
		if svc == nil {
			t.Fatal("NewService() returned nil service")
		}
	})

	t.Run("custom options", func(t *testing.T) {
		helper := newTestRepo(t)
		helper.makeCommit("initial commit")

		svc := helper.service(WithDefaultRemote("upstream"), WithTagger("Bot", "bot@example.com"))
		if svc.cfg.DefaultRemote != "upstream" {
			t.Errorf("DefaultRemote = %v, want upstream", svc.cfg.DefaultRemote)
		}
		if svc.cfg.TaggerName != "Bot" {
			t.Errorf("TaggerName = %v, want Bot", svc.cfg.TaggerName)
		}
	})

	t.Run("error on non-git directory", func(t *testing.T) {
		if _, err := NewService(WithRepoPath(t.TempDir())); err == nil {
			t.Error("NewService() should return error for non-git directory")
		}
	})
}

func TestIsClean(t *testing.T) {
	helper := newTestRepo(t)
	helper.makeCommit("initial commit")
	svc := helper.service()
	ctx := context.Background()

	clean, err := svc.IsClean(ctx)
	if err != nil {
		t.Fatalf("IsClean() error = %v", err)
	}
	if !clean {
		t.Error("IsClean() = false after commit, want true")
	}

	if err := os.WriteFile(filepath.Join(helper.repoDir, "dirty.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	clean, err = svc.IsClean(ctx)
	if err != nil {
		t.Fatalf("IsClean() error = %v", err)
	}
	if clean {
		t.Error("IsClean() = true with untracked file, want false")
	}
}

func TestGetHeadCommit(t *testing.T) {
	helper := newTestRepo(t)
	hash := helper.makeCommit("feat: add widget\n\nlonger body")
	svc := helper.service()

	head, err := svc.GetHeadCommit(context.Background())
	if err != nil {
		t.Fatalf("GetHeadCommit() error = %v", err)
	}
	if head.Hash != hash {
		t.Errorf("Hash = %v, want %v", head.Hash, hash)
	}
	if head.ShortHash != hash[:7] {
		t.Errorf("ShortHash = %v, want %v", head.ShortHash, hash[:7])
	}
	if head.Subject != "feat: add widget" {
		t.Errorf("Subject = %q", head.Subject)
	}
	if head.Body != "longer body" {
		t.Errorf("Body = %q", head.Body)
	}
	if head.Author.Name != "Test Author" {
		t.Errorf("Author.Name = %q", head.Author.Name)
	}
}

func TestGetCommitsSince(t *testing.T) {
	helper := newTestRepo(t)
	helper.makeCommit("first")
	helper.makeTag("v1.0.0", "release v1.0.0")
	helper.makeCommit("second")
	helper.makeCommit("third")
	svc := helper.service()
	ctx := context.Background()

	t.Run("since tag", func(t *testing.T) {
		commits, err := svc.GetCommitsSince(ctx, "v1.0.0")
		if err != nil {
			t.Fatalf("GetCommitsSince() error = %v", err)
		}
		if len(commits) != 2 {
			t.Fatalf("got %d commits, want 2", len(commits))
		}
		if commits[0].Subject != "third" || commits[1].Subject != "second" {
			t.Errorf("unexpected order: %q, %q", commits[0].Subject, commits[1].Subject)
		}
	})

	t.Run("empty ref returns full history", func(t *testing.T) {
		commits, err := svc.GetCommitsSince(ctx, "")
		if err != nil {
			t.Fatalf("GetCommitsSince() error = %v", err)
		}
		if len(commits) != 3 {
			t.Fatalf("got %d commits, want 3", len(commits))
		}
	})

	t.Run("unknown ref", func(t *testing.T) {
		if _, err := svc.GetCommitsSince(ctx, "v9.9.9"); err == nil {
			t.Error("expected error for unknown ref")
		}
	})
}

func TestListVersionTags(t *testing.T) {
	helper := newTestRepo(t)
	helper.makeCommit("first")
	helper.makeTag("v0.9.0", "")
	helper.makeCommit("second")
	helper.makeTag("v1.10.0", "release v1.10.0")
	helper.makeCommit("third")
	helper.makeTag("v1.2.0", "")
	helper.makeTag("not-a-version", "")
	helper.makeTag("checkpoint", "milestone")
	svc := helper.service()
	ctx := context.Background()

	tags, err := svc.ListVersionTags(ctx, "v")
	if err != nil {
		t.Fatalf("ListVersionTags() error = %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("got %d version tags, want 3", len(tags))
	}
	// Ordered by semver, not creation time: 1.10.0 > 1.2.0 > 0.9.0.
	want := []string{"v1.10.0", "v1.2.0", "v0.9.0"}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("tags[%d] = %v, want %v", i, tags[i].Name, name)
		}
	}

	latest, err := svc.GetLatestVersionTag(ctx, "v")
	if err != nil {
		t.Fatalf("GetLatestVersionTag() error = %v", err)
	}
	if latest.Name != "v1.10.0" {
		t.Errorf("latest = %v, want v1.10.0", latest.Name)
	}
}

func TestGetLatestVersionTag_NoneFound(t *testing.T) {
	helper := newTestRepo(t)
	helper.makeCommit("initial commit")
	svc := helper.service()

	_, err := svc.GetLatestVersionTag(context.Background(), "v")
	if err == nil {
		t.Fatal("expected error when no version tags exist")
	}
	if !sgerrors.IsKind(err, sgerrors.KindNotFound) {
		t.Errorf("error kind = %v, want not_found", sgerrors.GetKind(err))
	}
}

func TestCreateTag(t *testing.T) {
	t.Run("annotated", func(t *testing.T) {
		helper := newTestRepo(t)
		hash := helper.makeCommit("initial commit")
		svc := helper.service(WithTagger("Releaser", "releaser@example.com"))
		ctx := context.Background()

		err := svc.CreateTag(ctx, "v1.0.0", "release v1.0.0", DefaultTagOptions())
		if err != nil {
			t.Fatalf("CreateTag() error = %v", err)
		}

		tag, err := svc.GetTag(ctx, "v1.0.0")
		if err != nil {
			t.Fatalf("GetTag() error = %v", err)
		}
		if !tag.IsAnnotated {
			t.Error("expected annotated tag")
		}
		if tag.Hash != hash {
			t.Errorf("tag points at %v, want %v", tag.Hash, hash)
		}
		if tag.Tagger == nil || tag.Tagger.Name != "Releaser" {
			t.Errorf("unexpected tagger: %+v", tag.Tagger)
		}
	})

	t.Run("lightweight", func(t *testing.T) {
		helper := newTestRepo(t)
		helper.makeCommit("initial commit")
		svc := helper.service()
		ctx := context.Background()

		err := svc.CreateTag(ctx, "v1.0.0", "", TagOptions{Annotated: false})
		if err != nil {
			t.Fatalf("CreateTag() error = %v", err)
		}

		tag, err := svc.GetTag(ctx, "v1.0.0")
		if err != nil {
			t.Fatalf("GetTag() error = %v", err)
		}
		if tag.IsAnnotated {
			t.Error("expected lightweight tag")
		}
	})

	t.Run("duplicate fails", func(t *testing.T) {
		helper := newTestRepo(t)
		helper.makeCommit("initial commit")
		helper.makeTag("v1.0.0", "")
		svc := helper.service()

		err := svc.CreateTag(context.Background(), "v1.0.0", "", TagOptions{Annotated: false})
		if err == nil {
			t.Error("expected error creating duplicate tag")
		}
	})
}

func TestGetTag_NotFound(t *testing.T) {
	helper := newTestRepo(t)
	helper.makeCommit("initial commit")
	svc := helper.service()

	_, err := svc.GetTag(context.Background(), "v9.9.9")
	if err == nil {
		t.Fatal("expected error for missing tag")
	}
	if !sgerrors.IsKind(err, sgerrors.KindNotFound) {
		t.Errorf("error kind = %v, want not_found", sgerrors.GetKind(err))
	}
}

func TestBranchOperations(t *testing.T) {
	helper := newTestRepo(t)
	helper.makeCommit("initial commit")
	svc := helper.service()
	ctx := context.Background()

	if err := svc.CreateBranch(ctx, "release/1.0.0", ""); err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}

	branch, err := svc.GetCurrentBranch(ctx)
	if err != nil {
		t.Fatalf("GetCurrentBranch() error = %v", err)
	}
	if branch != "release/1.0.0" {
		t.Errorf("current branch = %v, want release/1.0.0", branch)
	}
}

func TestCreateBranch_FromStartPoint(t *testing.T) {
	helper := newTestRepo(t)
	first := helper.makeCommit("first")
	helper.makeTag("v1.0.0", "")
	helper.makeCommit("second")
	svc := helper.service()
	ctx := context.Background()

	if err := svc.CreateBranch(ctx, "hotfix/1.0.1", "v1.0.0"); err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}

	head, err := svc.GetHeadCommit(ctx)
	if err != nil {
		t.Fatalf("GetHeadCommit() error = %v", err)
	}
	if head.Hash != first {
		t.Errorf("branch HEAD = %v, want %v", head.Hash, first)
	}
}

func TestResetHard(t *testing.T) {
	helper := newTestRepo(t)
	first := helper.makeCommit("first")
	helper.makeTag("v1.0.0", "")
	helper.makeCommit("second")
	svc := helper.service()
	ctx := context.Background()

	if err := svc.ResetHard(ctx, "v1.0.0"); err != nil {
		t.Fatalf("ResetHard() error = %v", err)
	}

	head, err := svc.GetHeadCommit(ctx)
	if err != nil {
		t.Fatalf("GetHeadCommit() error = %v", err)
	}
	if head.Hash != first {
		t.Errorf("HEAD = %v, want %v", head.Hash, first)
	}

	data, err := os.ReadFile(filepath.Join(helper.repoDir, "test.txt"))
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("file content = %q, want %q", string(data), "first")
	}
}

func TestPush_DryRun(t *testing.T) {
	helper := newTestRepo(t)
	helper.makeCommit("initial commit")
	helper.makeTag("v1.0.0", "")
	svc := helper.service()
	ctx := context.Background()

	// No remote configured; dry run must still succeed.
	if err := svc.PushTag(ctx, "v1.0.0", PushOptions{DryRun: true}); err != nil {
		t.Errorf("PushTag() dry run error = %v", err)
	}
	if err := svc.PushBranch(ctx, "master", PushOptions{DryRun: true}); err != nil {
		t.Errorf("PushBranch() dry run error = %v", err)
	}
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		message string
		subject string
		body    string
	}{
		{"feat: add thing", "feat: add thing", ""},
		{"feat: add thing\n\nlonger body here", "feat: add thing", "longer body here"},
		{"  padded subject  \nbody", "padded subject", "body"},
	}

	for _, tt := range tests {
		subject, body := splitMessage(tt.message)
		if subject != tt.subject || body != tt.body {
			t.Errorf("splitMessage(%q) = (%q, %q), want (%q, %q)",
				tt.message, subject, body, tt.subject, tt.body)
		}
	}
}
