package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stagegate/stagegate/internal/container"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the repository's release status",
	Long: `Show the current branch, working-tree state, latest released
version, and the work pending since it.`,
	RunE: runStatus,
}

// runStatus implements the status command.
func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	output, err := c.Status().Execute(ctx)
	if err != nil {
		return err
	}

	if outputJSON {
		result := map[string]any{
			"branch":          output.Branch,
			"clean":           output.Clean,
			"latest_tag":      output.LatestTag,
			"current_version": output.CurrentVersion.String(),
			"next_version":    output.NextVersion.String(),
			"pending_commits": output.PendingCommits,
			"bump":            output.Bump.String(),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	printTitle("Release Status")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Branch:\t%s\n", output.Branch)
	fmt.Fprintf(w, "  Working tree:\t%s\n", cleanDisplay(output.Clean))
	if output.LatestTag == "" {
		fmt.Fprintf(w, "  Latest release:\t%s\n", styles.Subtle.Render("none"))
	} else {
		fmt.Fprintf(w, "  Latest release:\t%s\n", output.LatestTag)
	}
	fmt.Fprintf(w, "  Pending commits:\t%d\n", output.PendingCommits)
	fmt.Fprintf(w, "  Next version:\t%s (%s)\n", output.NextVersion.String(), output.Bump.String())
	w.Flush()
	fmt.Println()

	return nil
}

// cleanDisplay returns a styled display string for the working-tree state.
func cleanDisplay(clean bool) string {
	if clean {
		return styles.Success.Render("clean")
	}
	return styles.Warning.Render("dirty")
}
