package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stagegate/stagegate/internal/container"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the pre-release verification checks",
	Long: `Run every pre-release verification check and report the results.

The checks are: clean working tree, test suite, CI status, and
conventional-commit compliance. Disabled checks pass. All checks run
even when an early one fails, so one run reports every problem.`,
	RunE: runVerify,
}

// runVerify implements the verify command.
func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := container.New(ctx, cfg, settings)
	if err != nil {
		return err
	}

	result, err := c.Verify().Execute(ctx)
	if err != nil {
		return fmt.Errorf("verification could not run: %w", err)
	}

	if outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
	} else {
		printTitle("Verification")
		fmt.Println()
		printCheck("Working tree clean", result.Clean)
		printCheck("Tests", result.Tests)
		printCheck("CI status", result.CI)
		printCheck("Conventional commits", result.Commits)
		fmt.Println()

		if len(result.Messages) > 0 {
			for _, msg := range result.Messages {
				printError(msg)
			}
			fmt.Println()
		}

		if result.Overall {
			printSuccess("All checks passed")
		}
	}

	if !result.Overall {
		return errors.New("verification failed")
	}

	return nil
}

// printCheck prints a single check result line.
func printCheck(name string, passed bool) {
	if passed {
		fmt.Printf("  %s %s\n", styles.Success.Render("✓"), name)
	} else {
		fmt.Printf("  %s %s\n", styles.Error.Render("✗"), name)
	}
}
