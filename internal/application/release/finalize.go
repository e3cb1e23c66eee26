package release

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/stagegate/stagegate/internal/config"
	"github.com/stagegate/stagegate/internal/domain/release"
	"github.com/stagegate/stagegate/internal/domain/version"
	sgerrors "github.com/stagegate/stagegate/internal/errors"
	"github.com/stagegate/stagegate/internal/fileutil"
	gitsvc "github.com/stagegate/stagegate/internal/service/git"
)

// FinalizeInput configures the finalize use case.
type FinalizeInput struct {
	// DryRun reports what would happen without tagging, pushing, or writing.
	DryRun bool
}

// FinalizeOutput describes the finalized release.
type FinalizeOutput struct {
	Version   version.SemanticVersion
	Tag       string
	Branch    string
	NotesPath string
	Snapshot  *release.Snapshot
	Pushed    bool
	DryRun    bool
}

// FinalizeUseCase moves a prepared release to finalized: verification must
// pass, then the tag is created and pushed, release notes are written, and an
// immutable snapshot is recorded. A push failure after the tag exists is
// surfaced with the tag name and notes location so the operator can retry by
// hand; nothing is rolled back automatically.
type FinalizeUseCase struct {
	git       Git
	verifier  *VerifyUseCase
	planner   *PlanUseCase
	snapshots SnapshotRepository
	manifest  ManifestReader
	cfg       *config.Config
	settings  map[string]any
	logger    *slog.Logger
	now       func() time.Time
}

// NewFinalizeUseCase creates a new FinalizeUseCase. The settings map is the
// effective merged configuration, recorded verbatim in the snapshot.
func NewFinalizeUseCase(
	git Git,
	verifier *VerifyUseCase,
	planner *PlanUseCase,
	snapshots SnapshotRepository,
	manifest ManifestReader,
	cfg *config.Config,
	settings map[string]any,
) *FinalizeUseCase {
	return &FinalizeUseCase{
		git:       git,
		verifier:  verifier,
		planner:   planner,
		snapshots: snapshots,
		manifest:  manifest,
		cfg:       cfg,
		settings:  settings,
		logger:    slog.Default().With("usecase", "finalize"),
		now:       time.Now,
	}
}

// Execute finalizes the prepared release on the current branch.
func (uc *FinalizeUseCase) Execute(ctx context.Context, input FinalizeInput) (*FinalizeOutput, error) {
	const op = "release.Finalize"

	branch, err := uc.git.GetCurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	releaseVersion, err := uc.versionFromBranch(branch)
	if err != nil {
		return nil, err
	}

	verification, err := uc.verifier.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if !verification.Overall {
		return nil, sgerrors.Validation(op,
			fmt.Sprintf("verification failed:\n  - %s", strings.Join(verification.Messages, "\n  - ")))
	}

	plan, err := uc.planner.Execute(ctx)
	if err != nil {
		return nil, err
	}

	policy := namingPolicy(uc.cfg)
	tag := policy.ReleaseTag(releaseVersion)

	lifecycle, err := release.NewLifecycle()
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.KindInternal, op, "failed to build lifecycle")
	}
	if err := lifecycle.StartAt(release.StatePrepared); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.KindState, op, "failed to recover lifecycle state")
	}

	notes := BuildNotes(releaseVersion.String(), plan.Commits,
		uc.cfg.Workflow.EnforceConventionalCommits)

	out := &FinalizeOutput{
		Version: releaseVersion,
		Tag:     tag,
		Branch:  branch,
		DryRun:  input.DryRun,
	}

	if input.DryRun {
		return out, nil
	}

	if err := uc.git.CreateTag(ctx, tag, fmt.Sprintf("Release %s", releaseVersion), gitsvc.TagOptions{
		Annotated: uc.cfg.Versioning.AnnotatedTags,
	}); err != nil {
		return nil, err
	}

	notesPath, err := uc.writeNotes(ctx, notes)
	if err != nil {
		return nil, err
	}
	out.NotesPath = notesPath

	snap, err := uc.recordSnapshot(ctx, releaseVersion, branch, tag, plan)
	if err != nil {
		return nil, err
	}
	out.Snapshot = snap

	if uc.cfg.Git.Push {
		if err := uc.pushRelease(ctx, branch, tag); err != nil {
			_ = lifecycle.Send(release.EventFail)
			return nil, sgerrors.Wrap(err, sgerrors.KindState, op,
				fmt.Sprintf("tag %s was created locally but could not be pushed; push it manually and keep the notes at %s", tag, notesPath)).
				WithDetail("tag", tag).
				WithDetail("notes_path", notesPath)
		}
		out.Pushed = true
	}

	if err := lifecycle.Send(release.EventFinalize); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.KindState, op, "lifecycle rejected finalize")
	}

	uc.logger.Info("release finalized",
		"version", releaseVersion.String(),
		"tag", tag,
		"pushed", out.Pushed)

	return out, nil
}

// versionFromBranch recovers the prepared version from a release or hotfix
// branch name. Any other branch means there is no prepared release.
func (uc *FinalizeUseCase) versionFromBranch(branch string) (version.SemanticVersion, error) {
	const op = "release.Finalize"

	var raw string
	switch {
	case strings.HasPrefix(branch, uc.cfg.Versioning.ReleaseBranchPrefix):
		raw = strings.TrimPrefix(branch, uc.cfg.Versioning.ReleaseBranchPrefix)
	case strings.HasPrefix(branch, uc.cfg.Versioning.HotfixBranchPrefix):
		raw = strings.TrimPrefix(branch, uc.cfg.Versioning.HotfixBranchPrefix)
	default:
		return version.Zero, sgerrors.State(op,
			fmt.Sprintf("current branch %q is not a prepared release branch, run 'release prepare' first", branch))
	}

	v, err := version.Parse(raw)
	if err != nil {
		return version.Zero, sgerrors.VersionWrap(err, op,
			fmt.Sprintf("branch %q does not carry a semantic version", branch))
	}
	return v, nil
}

// writeNotes writes the release notes artifact at the repository root.
// An empty notes_file setting disables the artifact.
func (uc *FinalizeUseCase) writeNotes(ctx context.Context, notes string) (string, error) {
	const op = "release.Finalize"

	if uc.cfg.Workflow.NotesFile == "" {
		return "", nil
	}

	root, err := uc.git.GetRepositoryRoot(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(root, uc.cfg.Workflow.NotesFile)
	if err := fileutil.AtomicWriteFile(path, []byte(notes), 0o644); err != nil {
		return "", sgerrors.IOWrap(err, op, "failed to write release notes")
	}
	return path, nil
}

// recordSnapshot aggregates and persists the immutable release record.
func (uc *FinalizeUseCase) recordSnapshot(ctx context.Context, v version.SemanticVersion, branch, tag string, plan *PlanOutput) (*release.Snapshot, error) {
	head, err := uc.git.GetHeadCommit(ctx)
	if err != nil {
		return nil, err
	}

	deps, err := uc.manifest.Read()
	if err != nil {
		return nil, err
	}

	facts := release.SnapshotFacts{
		CommitSHA:   head.Hash,
		Branch:      branch,
		Tag:         tag,
		PreviousTag: plan.LatestTag,
	}

	snap := release.NewSnapshot(v.String(), facts, uc.settings, plan.Commits, deps, uc.now())
	if err := uc.snapshots.Save(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// pushRelease pushes the release branch and tag to the configured remote.
func (uc *FinalizeUseCase) pushRelease(ctx context.Context, branch, tag string) error {
	opts := gitsvc.PushOptions{Remote: uc.cfg.Git.DefaultRemote}
	if err := uc.git.PushBranch(ctx, branch, opts); err != nil {
		return err
	}
	return uc.git.PushTag(ctx, tag, opts)
}
