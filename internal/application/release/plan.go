package release

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stagegate/stagegate/internal/config"
	"github.com/stagegate/stagegate/internal/domain/changes"
	"github.com/stagegate/stagegate/internal/domain/version"
	sgerrors "github.com/stagegate/stagegate/internal/errors"
	gitsvc "github.com/stagegate/stagegate/internal/service/git"
)

// PlanOutput is the release plan: the suggested next version and the commit
// evidence it was derived from.
type PlanOutput struct {
	// CurrentVersion is the version recovered from the latest version tag.
	// Zero when the repository has no version tag yet.
	CurrentVersion version.SemanticVersion
	// LatestTag is the tag CurrentVersion came from, empty when none exists.
	LatestTag string
	// NextVersion is the suggested next version.
	NextVersion version.SemanticVersion
	// Bump is the increment the commits require.
	Bump version.BumpType
	// Commits are all commits since the latest tag, newest first.
	Commits []changes.Commit
	// Classified are the commits that conform to the conventional grammar.
	Classified []changes.ClassifiedCommit
	// Unclassified are the commits that do not.
	Unclassified []changes.Commit
}

// PlanUseCase suggests the next version from the commit history.
type PlanUseCase struct {
	git    Git
	cfg    *config.Config
	logger *slog.Logger
}

// NewPlanUseCase creates a new PlanUseCase.
func NewPlanUseCase(git Git, cfg *config.Config) *PlanUseCase {
	return &PlanUseCase{
		git:    git,
		cfg:    cfg,
		logger: slog.Default().With("usecase", "plan"),
	}
}

// Execute derives the suggested next version. Without a version tag the
// configured initial version is suggested as-is; otherwise the bump required
// by the commits since the tag is applied. With conventional-commit
// enforcement disabled, or with no pending commits, the bump is a patch.
func (uc *PlanUseCase) Execute(ctx context.Context) (*PlanOutput, error) {
	const op = "release.Plan"

	prefix := uc.cfg.Versioning.TagPrefix

	out := &PlanOutput{}

	latestTag, err := uc.git.GetLatestVersionTag(ctx, prefix)
	switch {
	case err == nil:
		out.LatestTag = latestTag.Name
		current, parseErr := version.Parse(strings.TrimPrefix(latestTag.Name, prefix))
		if parseErr != nil {
			return nil, sgerrors.VersionWrap(parseErr, op, "latest tag is not a semantic version")
		}
		out.CurrentVersion = current
	case sgerrors.IsKind(err, sgerrors.KindNotFound):
		// First release: suggest the configured initial version.
	default:
		return nil, err
	}

	rawCommits, err := uc.git.GetCommitsSince(ctx, out.LatestTag)
	if err != nil {
		return nil, err
	}
	out.Commits = convertCommits(rawCommits)
	out.Classified, out.Unclassified = changes.ClassifyAll(out.Commits)

	out.Bump = version.BumpPatch
	if uc.cfg.Workflow.EnforceConventionalCommits && len(out.Commits) > 0 {
		out.Bump = changes.RequiredBump(out.Commits)
	}

	if out.LatestTag == "" {
		initial, parseErr := version.Parse(uc.cfg.Versioning.InitialVersion)
		if parseErr != nil {
			return nil, sgerrors.ConfigWrap(parseErr, op, "initial_version is not a semantic version")
		}
		out.NextVersion = initial
	} else {
		out.NextVersion = out.Bump.Apply(out.CurrentVersion)
	}

	uc.logger.Debug("release plan computed",
		"current", out.CurrentVersion.String(),
		"next", out.NextVersion.String(),
		"bump", out.Bump.String(),
		"commits", len(out.Commits))

	return out, nil
}

// convertCommits maps git service commits onto the domain commit type.
func convertCommits(commits []gitsvc.Commit) []changes.Commit {
	converted := make([]changes.Commit, 0, len(commits))
	for _, c := range commits {
		converted = append(converted, changes.Commit{
			Hash:    c.Hash,
			Subject: c.Subject,
			Body:    c.Body,
			Author:  c.Author.Name,
			Date:    c.Date,
		})
	}
	return converted
}
