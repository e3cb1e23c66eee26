package release

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stagegate/stagegate/internal/config"
	"github.com/stagegate/stagegate/internal/domain/changes"
)

// VerifyResult aggregates the pre-release verification checks. Overall is the
// conjunction of the four checks; Messages accumulates every failure so one
// run reports all problems.
type VerifyResult struct {
	Clean    bool     `json:"clean"`
	Tests    bool     `json:"tests"`
	CI       bool     `json:"ci"`
	Commits  bool     `json:"commits"`
	Overall  bool     `json:"overall"`
	Messages []string `json:"messages,omitempty"`
}

// VerifyUseCase runs the pre-release verification aggregator.
type VerifyUseCase struct {
	git     Git
	checks  CheckProvider
	planner *PlanUseCase
	cfg     *config.Config
	logger  *slog.Logger
}

// NewVerifyUseCase creates a new VerifyUseCase.
func NewVerifyUseCase(git Git, checks CheckProvider, planner *PlanUseCase, cfg *config.Config) *VerifyUseCase {
	return &VerifyUseCase{
		git:     git,
		checks:  checks,
		planner: planner,
		cfg:     cfg,
		logger:  slog.Default().With("usecase", "verify"),
	}
}

// Execute runs the checks in fixed order: working tree, tests, CI, commit
// compliance. A check disabled in configuration passes. All checks run even
// after a failure so the result lists everything that needs fixing.
func (uc *VerifyUseCase) Execute(ctx context.Context) (*VerifyResult, error) {
	result := &VerifyResult{Clean: true, Tests: true, CI: true, Commits: true}

	if uc.cfg.Workflow.RequireCleanWorkDir {
		clean, err := uc.git.IsClean(ctx)
		if err != nil {
			return nil, err
		}
		result.Clean = clean
		if !clean {
			result.Messages = append(result.Messages, "working tree has uncommitted changes")
		}
	}

	if uc.cfg.Checks.RunTests {
		check := uc.checks.RunTests(ctx)
		result.Tests = check.Passed
		if !check.Passed {
			result.Messages = append(result.Messages, fmt.Sprintf("tests failed: %s", check.Message))
		}
	}

	if uc.cfg.Checks.CIEnabled {
		check := uc.checks.CIStatus(ctx, uc.cfg.Checks.RequiredCIChecks)
		result.CI = check.Passed
		if !check.Passed {
			result.Messages = append(result.Messages, fmt.Sprintf("CI checks failed: %s", check.Message))
		}
	}

	if uc.cfg.Workflow.EnforceConventionalCommits {
		nonCompliant, err := uc.nonCompliantCommits(ctx)
		if err != nil {
			return nil, err
		}
		if len(nonCompliant) > 0 {
			result.Commits = false
			for _, c := range nonCompliant {
				result.Messages = append(result.Messages,
					fmt.Sprintf("commit %s does not follow conventional format: %s", c.ShortHash(), c.Subject))
			}
		}
	}

	result.Overall = result.Clean && result.Tests && result.CI && result.Commits

	uc.logger.Debug("verification complete",
		"clean", result.Clean,
		"tests", result.Tests,
		"ci", result.CI,
		"commits", result.Commits,
		"overall", result.Overall)

	return result, nil
}

// nonCompliantCommits returns the pending commits that do not conform to the
// conventional grammar.
func (uc *VerifyUseCase) nonCompliantCommits(ctx context.Context) ([]changes.Commit, error) {
	plan, err := uc.planner.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return plan.Unclassified, nil
}
