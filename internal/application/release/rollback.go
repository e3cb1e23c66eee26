package release

import (
	"context"
	"log/slog"
	"time"

	"github.com/stagegate/stagegate/internal/config"
)

// RollbackInput configures the rollback use case.
type RollbackInput struct {
	// Tag is the released tag to roll back to.
	Tag string
	// DryRun derives the branch name without touching the repository.
	DryRun bool
}

// RollbackOutput describes the created rollback branch.
type RollbackOutput struct {
	Branch string
	Tag    string
	DryRun bool
}

// RollbackUseCase creates a timestamped rollback branch at the current HEAD
// and hard-resets it to the given tag. The original branch is untouched; the
// rollback is inspectable and discardable.
type RollbackUseCase struct {
	git    Git
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// NewRollbackUseCase creates a new RollbackUseCase.
func NewRollbackUseCase(git Git, cfg *config.Config) *RollbackUseCase {
	return &RollbackUseCase{
		git:    git,
		cfg:    cfg,
		logger: slog.Default().With("usecase", "rollback"),
		now:    time.Now,
	}
}

// Execute creates the rollback branch and resets it to the tag.
func (uc *RollbackUseCase) Execute(ctx context.Context, input RollbackInput) (*RollbackOutput, error) {
	if _, err := uc.git.GetTag(ctx, input.Tag); err != nil {
		return nil, err
	}

	policy := namingPolicy(uc.cfg)
	branch := policy.RollbackBranch(input.Tag, uc.now())

	if !input.DryRun {
		if err := uc.git.CreateBranch(ctx, branch, ""); err != nil {
			return nil, err
		}
		if err := uc.git.ResetHard(ctx, input.Tag); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("rollback branch created",
		"branch", branch,
		"tag", input.Tag,
		"dry_run", input.DryRun)

	return &RollbackOutput{
		Branch: branch,
		Tag:    input.Tag,
		DryRun: input.DryRun,
	}, nil
}
