package release

import (
	"context"
	"log/slog"

	"github.com/stagegate/stagegate/internal/config"
	"github.com/stagegate/stagegate/internal/domain/version"
)

// StatusOutput summarizes the repository's release state.
type StatusOutput struct {
	Branch         string                  `json:"branch"`
	Clean          bool                    `json:"clean"`
	LatestTag      string                  `json:"latest_tag,omitempty"`
	CurrentVersion version.SemanticVersion `json:"-"`
	NextVersion    version.SemanticVersion `json:"-"`
	PendingCommits int                     `json:"pending_commits"`
	Bump           version.BumpType        `json:"bump"`
}

// StatusUseCase reports the current branch, latest released version, and the
// work pending since it.
type StatusUseCase struct {
	git     Git
	planner *PlanUseCase
	cfg     *config.Config
	logger  *slog.Logger
}

// NewStatusUseCase creates a new StatusUseCase.
func NewStatusUseCase(git Git, planner *PlanUseCase, cfg *config.Config) *StatusUseCase {
	return &StatusUseCase{
		git:     git,
		planner: planner,
		cfg:     cfg,
		logger:  slog.Default().With("usecase", "status"),
	}
}

// Execute collects the status summary.
func (uc *StatusUseCase) Execute(ctx context.Context) (*StatusOutput, error) {
	branch, err := uc.git.GetCurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	clean, err := uc.git.IsClean(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := uc.planner.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return &StatusOutput{
		Branch:         branch,
		Clean:          clean,
		LatestTag:      plan.LatestTag,
		CurrentVersion: plan.CurrentVersion,
		NextVersion:    plan.NextVersion,
		PendingCommits: len(plan.Commits),
		Bump:           plan.Bump,
	}, nil
}
