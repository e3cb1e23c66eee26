package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	apprelease "github.com/stagegate/stagegate/internal/application/release"
	"github.com/stagegate/stagegate/internal/container"
	"github.com/stagegate/stagegate/internal/domain/changes"
	"github.com/stagegate/stagegate/internal/domain/version"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Analyze changes and suggest the next version",
	Long: `Analyze commits since the last release and suggest a version bump.

This command examines your commit history using conventional commits
to determine what kind of release is needed (major, minor, or patch).`,
	RunE: runPlan,
}

// runPlan implements the plan command.
func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	output, err := c.Plan().Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan release: %w", err)
	}

	if outputJSON {
		return outputPlanJSON(output)
	}

	return outputPlanText(output)
}

// outputPlanJSON outputs the plan as JSON.
func outputPlanJSON(output *apprelease.PlanOutput) error {
	result := map[string]any{
		"current_version": output.CurrentVersion.String(),
		"latest_tag":      output.LatestTag,
		"next_version":    output.NextVersion.String(),
		"bump":            output.Bump.String(),
		"summary": map[string]int{
			"total":        len(output.Commits),
			"classified":   len(output.Classified),
			"unclassified": len(output.Unclassified),
		},
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputPlanText outputs the plan as text.
func outputPlanText(output *apprelease.PlanOutput) error {
	printTitle("Release Plan")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if output.LatestTag == "" {
		fmt.Fprintf(w, "  Current version:\t%s\n", styles.Subtle.Render("none (first release)"))
	} else {
		fmt.Fprintf(w, "  Current version:\t%s (%s)\n", output.CurrentVersion.String(), output.LatestTag)
	}
	fmt.Fprintf(w, "  Next version:\t%s\n", styles.Bold.Render(output.NextVersion.String()))
	fmt.Fprintf(w, "  Bump:\t%s\n", bumpDisplay(output.Bump))
	fmt.Fprintf(w, "  Pending commits:\t%d\n", len(output.Commits))
	w.Flush()
	fmt.Println()

	if len(output.Classified) > 0 {
		printTitle("Conventional Commits")
		fmt.Println()
		for _, commit := range output.Classified {
			printClassifiedCommit(commit)
		}
		fmt.Println()
	}

	if len(output.Unclassified) > 0 {
		printTitle("Other Commits")
		fmt.Println()
		for _, commit := range output.Unclassified {
			fmt.Printf("  %s %s\n", styles.Subtle.Render(commit.ShortHash()), commit.Subject)
		}
		fmt.Println()
	}

	printTitle("Next Steps")
	fmt.Println()
	fmt.Printf("  1. Run 'stagegate release prepare' to cut release/%s\n", output.NextVersion.String())
	fmt.Println("  2. Run 'stagegate verify' on the release branch")
	fmt.Println("  3. Run 'stagegate release finalize' to tag and push")
	fmt.Println()

	return nil
}

// printClassifiedCommit prints a commit that matched the conventional grammar.
func printClassifiedCommit(commit changes.ClassifiedCommit) {
	scope := ""
	if commit.Scope != "" {
		scope = fmt.Sprintf("(%s) ", commit.Scope)
	}

	hash := styles.Subtle.Render(commit.ShortHash())
	desc := fmt.Sprintf("%s: %s%s", commit.Type, scope, commit.Description)

	if commit.Breaking {
		desc = styles.Error.Render("BREAKING: ") + desc
	}

	fmt.Printf("  %s %s\n", hash, desc)
}

// bumpDisplay returns a styled display string for the bump type.
func bumpDisplay(b version.BumpType) string {
	switch b {
	case version.BumpMajor:
		return styles.Error.Render("major (breaking changes)")
	case version.BumpMinor:
		return styles.Info.Render("minor (new features)")
	case version.BumpPatch:
		return styles.Success.Render("patch")
	default:
		return styles.Subtle.Render(b.String())
	}
}
