package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagegate/stagegate/internal/container"
	"github.com/stagegate/stagegate/internal/domain/release"
)

var branchCmd = &cobra.Command{
	Use:   "branch <type> <name>",
	Short: "Create a named branch using the configured prefixes",
	Long: `Create a branch named under the configured prefix for its type.

The type is one of feature, hotfix, or release. For example
'stagegate branch feature login' creates feature/login.`,
	Args: cobra.ExactArgs(2),
	RunE: runBranch,
}

// runBranch implements the branch command.
func runBranch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	branchType := release.BranchType(args[0])
	policy := release.NamingPolicy{
		TagPrefix:     cfg.Versioning.TagPrefix,
		ReleasePrefix: cfg.Versioning.ReleaseBranchPrefix,
		HotfixPrefix:  cfg.Versioning.HotfixBranchPrefix,
		FeaturePrefix: cfg.Versioning.FeatureBranchPrefix,
	}

	name, err := policy.BranchFor(branchType, args[1])
	if err != nil {
		return err
	}

	if dryRun {
		printInfo(fmt.Sprintf("Would create branch %s", name))
		return nil
	}

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	if err := c.Git().CreateBranch(ctx, name, ""); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Created branch %s", name))
	return nil
}
