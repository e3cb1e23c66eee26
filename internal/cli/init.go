package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stagegate/stagegate/internal/config"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new stagegate configuration",
	Long: `Initialize a new stagegate configuration in the current directory.

This command creates a stagegate.yaml file with sensible defaults:
semantic versioning with a "v" tag prefix, conventional-commit
enforcement, and the development > testing > staging > production
stage order.`,
	RunE: runInit,
}

// runInit implements the init command.
func runInit(cmd *cobra.Command, args []string) error {
	configFile := config.DefaultConfigFile
	if cfgFile != "" {
		configFile = cfgFile
	}

	if _, err := os.Stat(configFile); err == nil && !initForce {
		printWarning(fmt.Sprintf("Config file already exists: %s", configFile))
		printInfo("Use --force to overwrite")
		return nil
	}

	if err := config.Save(config.DefaultConfig(), configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printSuccess(fmt.Sprintf("Created %s", configFile))
	fmt.Println()

	printTitle("Next Steps")
	fmt.Println()
	fmt.Println("  1. Review and customize your config file")
	fmt.Println("  2. Run 'stagegate plan' to analyze your commits")
	fmt.Println("  3. Run 'stagegate release prepare' when you are ready to release")
	fmt.Println()

	return nil
}
