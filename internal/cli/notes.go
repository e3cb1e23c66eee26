package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apprelease "github.com/stagegate/stagegate/internal/application/release"
	"github.com/stagegate/stagegate/internal/container"
	"github.com/stagegate/stagegate/internal/domain/version"
)

var notesVersion string

func init() {
	notesCmd.Flags().StringVar(&notesVersion, "version", "", "version to title the notes with (default: planned next version)")
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate release notes for pending commits",
	Long: `Generate release notes from the commits since the last release.

With conventional-commit enforcement enabled the notes are grouped into
Features, Bug Fixes, and Other Changes sections; otherwise all commits
are listed chronologically. The notes are printed to stdout.`,
	RunE: runNotes,
}

// runNotes implements the notes command.
func runNotes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	plan, err := c.Plan().Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan release: %w", err)
	}

	title := plan.NextVersion.String()
	if notesVersion != "" {
		v, err := version.Parse(notesVersion)
		if err != nil {
			return fmt.Errorf("invalid --version: %w", err)
		}
		title = v.String()
	}

	notes := apprelease.BuildNotes(title, plan.Commits, cfg.Workflow.EnforceConventionalCommits)
	fmt.Print(notes)

	return nil
}
