package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	sgerrors "github.com/stagegate/stagegate/internal/errors"
)

// Loader handles configuration loading and defaults merging.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("STAGEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		searchPaths: []string{"."},
	}
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// Load loads the configuration: defaults first, then any stored config file
// merged over them, then environment overrides.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	l.setDefaults()

	if err := l.loadConfigFile(); err != nil {
		return nil, sgerrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, sgerrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	return cfg, nil
}

// Settings returns the effective merged settings as a nested map.
// Used for the config copy recorded in release snapshots.
func (l *Loader) Settings() map[string]any {
	return l.v.AllSettings()
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// setDefaults registers every default value with Viper. This is the explicit
// defaults merge: any key absent from the stored config resolves here.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("versioning.initial_version", defaults.Versioning.InitialVersion)
	l.v.SetDefault("versioning.tag_prefix", defaults.Versioning.TagPrefix)
	l.v.SetDefault("versioning.release_branch_prefix", defaults.Versioning.ReleaseBranchPrefix)
	l.v.SetDefault("versioning.hotfix_branch_prefix", defaults.Versioning.HotfixBranchPrefix)
	l.v.SetDefault("versioning.feature_branch_prefix", defaults.Versioning.FeatureBranchPrefix)
	l.v.SetDefault("versioning.annotated_tags", defaults.Versioning.AnnotatedTags)

	l.v.SetDefault("workflow.stages", defaults.Workflow.Stages)
	l.v.SetDefault("workflow.require_clean_work_dir", defaults.Workflow.RequireCleanWorkDir)
	l.v.SetDefault("workflow.enforce_conventional_commits", defaults.Workflow.EnforceConventionalCommits)
	l.v.SetDefault("workflow.notes_file", defaults.Workflow.NotesFile)

	l.v.SetDefault("checks.run_tests", defaults.Checks.RunTests)
	l.v.SetDefault("checks.ci_enabled", defaults.Checks.CIEnabled)
	l.v.SetDefault("checks.required_ci_checks", defaults.Checks.RequiredCIChecks)

	l.v.SetDefault("git.default_remote", defaults.Git.DefaultRemote)
	l.v.SetDefault("git.push", defaults.Git.Push)

	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.color", defaults.Output.Color)
	l.v.SetDefault("output.verbose", defaults.Output.Verbose)
	l.v.SetDefault("output.log_level", defaults.Output.LogLevel)
}

// loadConfigFile loads the configuration file.
func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		return l.v.ReadInConfig()
	}

	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					l.v.SetConfigFile(configFile)
					return l.v.ReadInConfig()
				}
			}
		}
	}

	// No config file found - this is OK, we use defaults.
	return nil
}
