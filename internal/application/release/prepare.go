package release

import (
	"context"
	"log/slog"

	"github.com/stagegate/stagegate/internal/config"
	"github.com/stagegate/stagegate/internal/domain/release"
	"github.com/stagegate/stagegate/internal/domain/version"
	sgerrors "github.com/stagegate/stagegate/internal/errors"
)

// PrepareInput configures the prepare use case.
type PrepareInput struct {
	// DryRun computes the plan without creating the branch.
	DryRun bool
}

// PrepareOutput describes the prepared release.
type PrepareOutput struct {
	Version version.SemanticVersion
	Branch  string
	Tag     string
	DryRun  bool
}

// PrepareUseCase moves a release from draft to prepared: it derives the next
// version, creates the release branch, and computes the tag name that
// finalize will create.
type PrepareUseCase struct {
	git     Git
	planner *PlanUseCase
	cfg     *config.Config
	logger  *slog.Logger
}

// NewPrepareUseCase creates a new PrepareUseCase.
func NewPrepareUseCase(git Git, planner *PlanUseCase, cfg *config.Config) *PrepareUseCase {
	return &PrepareUseCase{
		git:     git,
		planner: planner,
		cfg:     cfg,
		logger:  slog.Default().With("usecase", "prepare"),
	}
}

// Execute prepares the release.
func (uc *PrepareUseCase) Execute(ctx context.Context, input PrepareInput) (*PrepareOutput, error) {
	const op = "release.Prepare"

	if uc.cfg.Workflow.RequireCleanWorkDir && !input.DryRun {
		clean, err := uc.git.IsClean(ctx)
		if err != nil {
			return nil, err
		}
		if !clean {
			return nil, sgerrors.Validation(op, "working tree has uncommitted changes, commit or stash them first")
		}
	}

	plan, err := uc.planner.Execute(ctx)
	if err != nil {
		return nil, err
	}

	policy := namingPolicy(uc.cfg)
	branch := policy.ReleaseBranch(plan.NextVersion)
	tag := policy.ReleaseTag(plan.NextVersion)

	lifecycle, err := release.NewLifecycle()
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.KindInternal, op, "failed to build lifecycle")
	}
	lifecycle.Start()

	if !input.DryRun {
		if err := uc.git.CreateBranch(ctx, branch, ""); err != nil {
			return nil, err
		}
	}

	if err := lifecycle.Send(release.EventPrepare); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.KindState, op, "lifecycle rejected prepare")
	}

	uc.logger.Info("release prepared",
		"version", plan.NextVersion.String(),
		"branch", branch,
		"tag", tag,
		"dry_run", input.DryRun)

	return &PrepareOutput{
		Version: plan.NextVersion,
		Branch:  branch,
		Tag:     tag,
		DryRun:  input.DryRun,
	}, nil
}

// namingPolicy builds the naming policy from configuration.
func namingPolicy(cfg *config.Config) release.NamingPolicy {
	return release.NamingPolicy{
		TagPrefix:     cfg.Versioning.TagPrefix,
		ReleasePrefix: cfg.Versioning.ReleaseBranchPrefix,
		HotfixPrefix:  cfg.Versioning.HotfixBranchPrefix,
		FeaturePrefix: cfg.Versioning.FeatureBranchPrefix,
	}
}
