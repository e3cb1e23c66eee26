package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stagegate/stagegate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or update the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration: stored values merged over the
built-in defaults, with any global flags applied.`,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one configuration value",
	Long: `Update one configuration value by its dotted path, for example
'stagegate config set versioning.tag_prefix rel-'. Sibling values in
the file are preserved. Comma-separated values become lists.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// runConfigShow implements the config show command.
func runConfigShow(cmd *cobra.Command, args []string) error {
	if configFileUsed != "" {
		printSubtle("# " + configFileUsed)
	} else {
		printSubtle("# built-in defaults (no config file found)")
	}

	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(cfg)
}

// runConfigSet implements the config set command.
func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configFileUsed
	if path == "" {
		path = config.DefaultConfigFile
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.Save(config.DefaultConfig(), path); err != nil {
				return err
			}
		}
	}

	if err := config.Update(path, args[0], args[1]); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Set %s = %s in %s", args[0], args[1], path))
	return nil
}
