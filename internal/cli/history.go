package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stagegate/stagegate/internal/container"
	sgerrors "github.com/stagegate/stagegate/internal/errors"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of releases to show")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded release snapshots",
	Long: `List the release snapshots recorded by 'release finalize',
newest first.

Each snapshot is an immutable audit record of one release: version,
tag, branch, commit, and the dependency manifest at release time.`,
	RunE: runHistory,
}

// runHistory implements the history command.
func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	snapshots, err := c.Snapshots().List(ctx)
	if err != nil && !sgerrors.IsKind(err, sgerrors.KindNotFound) {
		return err
	}

	if historyLimit > 0 && len(snapshots) > historyLimit {
		snapshots = snapshots[:historyLimit]
	}

	if outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snapshots)
	}

	if len(snapshots) == 0 {
		printInfo("No releases recorded yet")
		return nil
	}

	printTitle("Release History")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  VERSION\tTAG\tBRANCH\tDATE\tCOMMITS\n")
	for _, snap := range snapshots {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%d\n",
			snap.Version,
			snap.Tag,
			snap.Branch,
			snap.CreatedAt.Format("2006-01-02 15:04"),
			len(snap.Commits),
		)
	}
	w.Flush()
	fmt.Println()

	return nil
}
