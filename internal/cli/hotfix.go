package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apprelease "github.com/stagegate/stagegate/internal/application/release"
	"github.com/stagegate/stagegate/internal/container"
)

var hotfixCmd = &cobra.Command{
	Use:   "hotfix <base-tag>",
	Short: "Create a hotfix branch from a released tag",
	Long: `Create a hotfix branch from a released tag.

The branch carries the patch-bumped version of the tag, for example
'stagegate hotfix v1.2.3' creates hotfix/1.2.4. Running
'release finalize' on the branch produces the corrective release.`,
	Args: cobra.ExactArgs(1),
	RunE: runHotfix,
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback <tag>",
	Short: "Create a rollback branch reset to a released tag",
	Long: `Create a timestamped rollback branch at the current HEAD and
hard-reset it to the given tag.

The original branch is untouched; inspect the rollback branch and
discard it when it is no longer needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRollback,
}

// runHotfix implements the hotfix command.
func runHotfix(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if dryRun {
		printDryRunBanner()
	}

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	output, err := c.Hotfix().Execute(ctx, apprelease.HotfixInput{BaseTag: args[0], DryRun: dryRun})
	if err != nil {
		return err
	}

	if output.DryRun {
		printInfo(fmt.Sprintf("Would create branch %s from %s", output.Branch, output.BaseTag))
		return nil
	}

	printSuccess(fmt.Sprintf("Created branch %s from %s", output.Branch, output.BaseTag))
	fmt.Println()
	fmt.Printf("  Hotfix version: %s\n", output.Version.String())
	fmt.Println()
	fmt.Println("Commit the fix, then run 'stagegate release finalize' on this branch.")

	return nil
}

// runRollback implements the rollback command.
func runRollback(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if dryRun {
		printDryRunBanner()
	}

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	output, err := c.Rollback().Execute(ctx, apprelease.RollbackInput{Tag: args[0], DryRun: dryRun})
	if err != nil {
		return err
	}

	if output.DryRun {
		printInfo(fmt.Sprintf("Would create branch %s reset to %s", output.Branch, output.Tag))
		return nil
	}

	printSuccess(fmt.Sprintf("Created branch %s reset to %s", output.Branch, output.Tag))

	return nil
}
