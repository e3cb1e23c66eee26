package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgerrors "github.com/stagegate/stagegate/internal/errors"
)

func TestPrepare_CreatesReleaseBranch(t *testing.T) {
	git := newFakeGit().withTag("v1.2.3").withCommits("feat: new thing")
	cfg := testConfig()
	uc := NewPrepareUseCase(git, NewPlanUseCase(git, cfg), cfg)

	out, err := uc.Execute(context.Background(), PrepareInput{})
	require.NoError(t, err)

	assert.Equal(t, "1.3.0", out.Version.String())
	assert.Equal(t, "release/1.3.0", out.Branch)
	assert.Equal(t, "v1.3.0", out.Tag)
	assert.Equal(t, []string{"release/1.3.0"}, git.createdBranches)
}

func TestPrepare_DryRunSkipsBranchCreation(t *testing.T) {
	git := newFakeGit().withTag("v1.2.3").withCommits("fix: bug")
	cfg := testConfig()
	uc := NewPrepareUseCase(git, NewPlanUseCase(git, cfg), cfg)

	out, err := uc.Execute(context.Background(), PrepareInput{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, "release/1.2.4", out.Branch)
	assert.True(t, out.DryRun)
	assert.Empty(t, git.createdBranches)
}

func TestPrepare_DirtyTreeRejected(t *testing.T) {
	git := newFakeGit().withTag("v1.0.0").withCommits("feat: x")
	git.clean = false
	cfg := testConfig()
	uc := NewPrepareUseCase(git, NewPlanUseCase(git, cfg), cfg)

	_, err := uc.Execute(context.Background(), PrepareInput{})
	require.Error(t, err)
	assert.True(t, sgerrors.IsKind(err, sgerrors.KindValidation))
	assert.Empty(t, git.createdBranches)
}

func TestPrepare_DirtyTreeAllowedWhenNotRequired(t *testing.T) {
	git := newFakeGit().withTag("v1.0.0").withCommits("feat: x")
	git.clean = false
	cfg := testConfig()
	cfg.Workflow.RequireCleanWorkDir = false
	uc := NewPrepareUseCase(git, NewPlanUseCase(git, cfg), cfg)

	_, err := uc.Execute(context.Background(), PrepareInput{})
	require.NoError(t, err)
}

func TestPrepare_FirstRelease(t *testing.T) {
	git := newFakeGit().withCommits("feat: first ever")
	cfg := testConfig()
	uc := NewPrepareUseCase(git, NewPlanUseCase(git, cfg), cfg)

	out, err := uc.Execute(context.Background(), PrepareInput{})
	require.NoError(t, err)
	assert.Equal(t, "release/0.1.0", out.Branch)
}
