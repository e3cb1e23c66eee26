// Package config provides configuration management for StageGate.
package config

// Config is the root configuration for StageGate.
type Config struct {
	// Versioning configures version and naming management.
	Versioning VersioningConfig `mapstructure:"versioning" yaml:"versioning" json:"versioning"`
	// Workflow configures the stage-gated release workflow.
	Workflow WorkflowConfig `mapstructure:"workflow" yaml:"workflow" json:"workflow"`
	// Checks configures the pre-release verification checks.
	Checks ChecksConfig `mapstructure:"checks" yaml:"checks" json:"checks"`
	// Git configures git operations.
	Git GitConfig `mapstructure:"git" yaml:"git" json:"git"`
	// Output configures output settings.
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// VersioningConfig configures version and naming management.
type VersioningConfig struct {
	// InitialVersion is used when the repository has no version tag yet.
	InitialVersion string `mapstructure:"initial_version" yaml:"initial_version" json:"initial_version"`
	// TagPrefix is the prefix for version tags (default: "v").
	TagPrefix string `mapstructure:"tag_prefix" yaml:"tag_prefix" json:"tag_prefix"`
	// ReleaseBranchPrefix is the prefix for release branches.
	ReleaseBranchPrefix string `mapstructure:"release_branch_prefix" yaml:"release_branch_prefix" json:"release_branch_prefix"`
	// HotfixBranchPrefix is the prefix for hotfix branches.
	HotfixBranchPrefix string `mapstructure:"hotfix_branch_prefix" yaml:"hotfix_branch_prefix" json:"hotfix_branch_prefix"`
	// FeatureBranchPrefix is the prefix for feature branches.
	FeatureBranchPrefix string `mapstructure:"feature_branch_prefix" yaml:"feature_branch_prefix" json:"feature_branch_prefix"`
	// AnnotatedTags indicates whether to create annotated tags.
	AnnotatedTags bool `mapstructure:"annotated_tags" yaml:"annotated_tags" json:"annotated_tags"`
}

// WorkflowConfig configures the stage-gated release workflow.
type WorkflowConfig struct {
	// Stages is the ordered list of workflow stages.
	Stages []string `mapstructure:"stages" yaml:"stages" json:"stages"`
	// RequireCleanWorkDir requires a clean working tree before preparing.
	RequireCleanWorkDir bool `mapstructure:"require_clean_work_dir" yaml:"require_clean_work_dir" json:"require_clean_work_dir"`
	// EnforceConventionalCommits drives bump detection and notes grouping.
	EnforceConventionalCommits bool `mapstructure:"enforce_conventional_commits" yaml:"enforce_conventional_commits" json:"enforce_conventional_commits"`
	// NotesFile is the release notes file written at finalize time
	// (empty disables the artifact).
	NotesFile string `mapstructure:"notes_file" yaml:"notes_file" json:"notes_file,omitempty"`
}

// ChecksConfig configures the pre-release verification checks.
// Disabled checks report pass.
type ChecksConfig struct {
	// RunTests toggles the test-suite check.
	RunTests bool `mapstructure:"run_tests" yaml:"run_tests" json:"run_tests"`
	// CIEnabled toggles the CI status check.
	CIEnabled bool `mapstructure:"ci_enabled" yaml:"ci_enabled" json:"ci_enabled"`
	// RequiredCIChecks names the CI checks that must pass.
	RequiredCIChecks []string `mapstructure:"required_ci_checks" yaml:"required_ci_checks" json:"required_ci_checks"`
}

// GitConfig configures git operations.
type GitConfig struct {
	// DefaultRemote is the default remote name (default: "origin").
	DefaultRemote string `mapstructure:"default_remote" yaml:"default_remote" json:"default_remote"`
	// Push indicates whether to push branches and tags to the remote.
	Push bool `mapstructure:"push" yaml:"push" json:"push"`
}

// OutputConfig configures output settings.
type OutputConfig struct {
	// Format is the output format (text, json).
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	// Color enables colored output.
	Color bool `mapstructure:"color" yaml:"color" json:"color"`
	// Verbose enables verbose output.
	Verbose bool `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns the default configuration. Partial stored configs are
// merged over these values by the loader.
func DefaultConfig() *Config {
	return &Config{
		Versioning: VersioningConfig{
			InitialVersion:      "0.1.0",
			TagPrefix:           "v",
			ReleaseBranchPrefix: "release/",
			HotfixBranchPrefix:  "hotfix/",
			FeatureBranchPrefix: "feature/",
			AnnotatedTags:       true,
		},
		Workflow: WorkflowConfig{
			Stages:                     []string{"development", "testing", "staging", "production"},
			RequireCleanWorkDir:        true,
			EnforceConventionalCommits: true,
			NotesFile:                  "RELEASE_NOTES.md",
		},
		Checks: ChecksConfig{
			RunTests:         true,
			CIEnabled:        true,
			RequiredCIChecks: []string{"build", "test"},
		},
		Git: GitConfig{
			DefaultRemote: "origin",
			Push:          true,
		},
		Output: OutputConfig{
			Format:   "text",
			Color:    true,
			Verbose:  false,
			LogLevel: "info",
		},
	}
}

// ConfigFileNames to search for.
var ConfigFileNames = []string{"stagegate", ".stagegate"}

// ConfigFileExtensions supported by the loader.
var ConfigFileExtensions = []string{"yaml", "yml"}
