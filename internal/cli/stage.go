package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagegate/stagegate/internal/domain/workflow"
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Inspect the stage-gated workflow",
}

var stageCheckCmd = &cobra.Command{
	Use:   "check <from> <to>",
	Short: "Validate a stage transition",
	Long: `Validate a transition between two configured workflow stages.

A transition is valid when it moves exactly one stage forward in the
configured order; backward moves and skipped stages are rejected. The
check is advisory: it reports the verdict without blocking any other
command.`,
	Args: cobra.ExactArgs(2),
	RunE: runStageCheck,
}

func init() {
	stageCmd.AddCommand(stageCheckCmd)
}

// runStageCheck implements the stage check command.
func runStageCheck(cmd *cobra.Command, args []string) error {
	stages := workflow.Stages(cfg.Workflow.Stages)

	from, to := args[0], args[1]
	if err := stages.ValidateTransition(from, to); err != nil {
		printError(fmt.Sprintf("Invalid transition: %s → %s", from, to))
		return err
	}

	printSuccess(fmt.Sprintf("Valid transition: %s → %s", from, to))
	printSubtle("Stage order: " + strings.Join(stages, " → "))
	return nil
}
