package release

import (
	"context"
	"log/slog"

	"github.com/stagegate/stagegate/internal/config"
	"github.com/stagegate/stagegate/internal/domain/version"
)

// HotfixInput configures the hotfix use case.
type HotfixInput struct {
	// BaseTag is the released tag the hotfix is cut from.
	BaseTag string
	// DryRun derives the branch name without creating it.
	DryRun bool
}

// HotfixOutput describes the created hotfix branch.
type HotfixOutput struct {
	Branch  string
	Version version.SemanticVersion
	BaseTag string
	DryRun  bool
}

// HotfixUseCase cuts a hotfix branch from a released tag. The branch carries
// the patch-bumped version of the tag, so 'release finalize' on it produces
// the corrective release.
type HotfixUseCase struct {
	git    Git
	cfg    *config.Config
	logger *slog.Logger
}

// NewHotfixUseCase creates a new HotfixUseCase.
func NewHotfixUseCase(git Git, cfg *config.Config) *HotfixUseCase {
	return &HotfixUseCase{
		git:    git,
		cfg:    cfg,
		logger: slog.Default().With("usecase", "hotfix"),
	}
}

// Execute creates the hotfix branch at the base tag.
func (uc *HotfixUseCase) Execute(ctx context.Context, input HotfixInput) (*HotfixOutput, error) {
	// The tag must exist before a branch can be cut from it.
	if _, err := uc.git.GetTag(ctx, input.BaseTag); err != nil {
		return nil, err
	}

	policy := namingPolicy(uc.cfg)
	branch, next, err := policy.HotfixBranch(input.BaseTag)
	if err != nil {
		return nil, err
	}

	if !input.DryRun {
		if err := uc.git.CreateBranch(ctx, branch, input.BaseTag); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("hotfix branch created",
		"branch", branch,
		"base_tag", input.BaseTag,
		"version", next.String(),
		"dry_run", input.DryRun)

	return &HotfixOutput{
		Branch:  branch,
		Version: next,
		BaseTag: input.BaseTag,
		DryRun:  input.DryRun,
	}, nil
}
