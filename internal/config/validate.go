package config

import (
	"fmt"
	"strings"

	"github.com/stagegate/stagegate/internal/domain/version"
	"github.com/stagegate/stagegate/internal/domain/workflow"
)

// ValidationError contains all validation errors.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks a loaded configuration for consistency.
func Validate(cfg *Config) error {
	v := &ValidationError{}

	if _, err := version.Parse(cfg.Versioning.InitialVersion); err != nil {
		v.Addf("versioning.initial_version: %q is not a semantic version", cfg.Versioning.InitialVersion)
	}

	if err := workflow.Stages(cfg.Workflow.Stages).Validate(); err != nil {
		v.Addf("workflow.stages: %v", err)
	}

	if cfg.Git.DefaultRemote == "" {
		v.Addf("git.default_remote must not be empty")
	}

	switch cfg.Output.Format {
	case "text", "json":
	default:
		v.Addf("output.format: %q is not supported (text, json)", cfg.Output.Format)
	}

	switch cfg.Output.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		v.Addf("output.log_level: %q is not supported (debug, info, warn, error)", cfg.Output.LogLevel)
	}

	if cfg.Checks.CIEnabled && len(cfg.Checks.RequiredCIChecks) == 0 {
		v.Addf("checks.required_ci_checks must name at least one check when checks.ci_enabled is true")
	}

	if v.HasErrors() {
		return v
	}
	return nil
}
