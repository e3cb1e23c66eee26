package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apprelease "github.com/stagegate/stagegate/internal/application/release"
	"github.com/stagegate/stagegate/internal/container"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Prepare and finalize releases",
	Long: `Drive a release through its lifecycle.

'release prepare' derives the next version and creates the release
branch. 'release finalize' verifies the prepared release, creates and
pushes the tag, writes the release notes, and records an immutable
snapshot.`,
}

var releasePrepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Create the release branch for the next version",
	RunE:  runReleasePrepare,
}

var releaseFinalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Verify, tag, push, and snapshot the prepared release",
	RunE:  runReleaseFinalize,
}

func init() {
	releaseCmd.AddCommand(releasePrepareCmd)
	releaseCmd.AddCommand(releaseFinalizeCmd)
}

// runReleasePrepare implements the release prepare command.
func runReleasePrepare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if dryRun {
		printDryRunBanner()
	}

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	output, err := c.Prepare().Execute(ctx, apprelease.PrepareInput{DryRun: dryRun})
	if err != nil {
		return err
	}

	if output.DryRun {
		printInfo(fmt.Sprintf("Would create branch %s for version %s", output.Branch, output.Version.String()))
		return nil
	}

	printSuccess(fmt.Sprintf("Created branch %s", output.Branch))
	fmt.Println()
	fmt.Printf("  Version: %s\n", output.Version.String())
	fmt.Printf("  Tag on finalize: %s\n", output.Tag)
	fmt.Println()
	fmt.Println("Run 'stagegate release finalize' on this branch to complete the release.")

	return nil
}

// runReleaseFinalize implements the release finalize command.
func runReleaseFinalize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if dryRun {
		printDryRunBanner()
	}

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	output, err := c.Finalize().Execute(ctx, apprelease.FinalizeInput{DryRun: dryRun})
	if err != nil {
		return err
	}

	if output.DryRun {
		printInfo(fmt.Sprintf("Would create tag %s on branch %s", output.Tag, output.Branch))
		return nil
	}

	printSuccess(fmt.Sprintf("Finalized release %s", output.Version.String()))
	fmt.Println()
	fmt.Printf("  Tag: %s\n", output.Tag)
	if output.NotesPath != "" {
		fmt.Printf("  Notes: %s\n", output.NotesPath)
	}
	if output.Snapshot != nil {
		fmt.Printf("  Snapshot: %s\n", output.Snapshot.ID)
	}
	if output.Pushed {
		fmt.Printf("  Pushed to: %s\n", cfg.Git.DefaultRemote)
	} else {
		printWarning("Push disabled, tag exists only locally")
	}

	return nil
}
