package release

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgerrors "github.com/stagegate/stagegate/internal/errors"
)

func TestHotfix_CreatesBranchFromTag(t *testing.T) {
	git := newFakeGit().withTag("v1.2.3")
	uc := NewHotfixUseCase(git, testConfig())

	out, err := uc.Execute(context.Background(), HotfixInput{BaseTag: "v1.2.3"})
	require.NoError(t, err)

	assert.Equal(t, "hotfix/1.2.4", out.Branch)
	assert.Equal(t, "1.2.4", out.Version.String())
	assert.Equal(t, []string{"hotfix/1.2.4"}, git.createdBranches)
}

func TestHotfix_UnknownTag(t *testing.T) {
	git := newFakeGit().withTag("v1.2.3")
	uc := NewHotfixUseCase(git, testConfig())

	_, err := uc.Execute(context.Background(), HotfixInput{BaseTag: "v9.9.9"})
	require.Error(t, err)
	assert.True(t, sgerrors.IsKind(err, sgerrors.KindNotFound))
	assert.Empty(t, git.createdBranches)
}

func TestHotfix_DryRun(t *testing.T) {
	git := newFakeGit().withTag("v2.0.0")
	uc := NewHotfixUseCase(git, testConfig())

	out, err := uc.Execute(context.Background(), HotfixInput{BaseTag: "v2.0.0", DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, "hotfix/2.0.1", out.Branch)
	assert.Empty(t, git.createdBranches)
}

func TestRollback_CreatesBranchAndResets(t *testing.T) {
	git := newFakeGit().withTag("v1.2.3")
	uc := NewRollbackUseCase(git, testConfig())
	uc.now = func() time.Time { return time.Unix(1700000000, 0) }

	out, err := uc.Execute(context.Background(), RollbackInput{Tag: "v1.2.3"})
	require.NoError(t, err)

	assert.Equal(t, "rollback-to-v1.2.3-1700000000", out.Branch)
	assert.Equal(t, []string{"rollback-to-v1.2.3-1700000000"}, git.createdBranches)
	assert.Equal(t, "v1.2.3", git.resetTo)
}

func TestRollback_UnknownTag(t *testing.T) {
	git := newFakeGit()
	uc := NewRollbackUseCase(git, testConfig())

	_, err := uc.Execute(context.Background(), RollbackInput{Tag: "v0.0.9"})
	require.Error(t, err)
	assert.True(t, sgerrors.IsKind(err, sgerrors.KindNotFound))
	assert.Empty(t, git.createdBranches)
	assert.Empty(t, git.resetTo)
}

func TestRollback_DryRun(t *testing.T) {
	git := newFakeGit().withTag("v1.0.0")
	uc := NewRollbackUseCase(git, testConfig())

	out, err := uc.Execute(context.Background(), RollbackInput{Tag: "v1.0.0", DryRun: true})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Branch)
	assert.Empty(t, git.createdBranches)
	assert.Empty(t, git.resetTo)
}

func TestStatus(t *testing.T) {
	git := newFakeGit().withTag("v1.2.3").withCommits("feat: pending", "fix: pending too")
	cfg := testConfig()
	uc := NewStatusUseCase(git, NewPlanUseCase(git, cfg), cfg)

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "main", out.Branch)
	assert.True(t, out.Clean)
	assert.Equal(t, "v1.2.3", out.LatestTag)
	assert.Equal(t, 2, out.PendingCommits)
	assert.Equal(t, "1.3.0", out.NextVersion.String())
}
