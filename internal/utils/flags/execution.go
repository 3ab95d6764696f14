// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import "github.com/spf13/cobra"

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	Verbose bool
	DryRun  bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	Verbose ExecutionFlagDefinition
	DryRun  ExecutionFlagDefinition
}

// ExecutionFlagValues stores resolved execution flag values.
type ExecutionFlagValues struct {
	Verbose bool
	DryRun  bool
}

// DefaultExecutionFlagDefinitions returns the verbose and dry-run definitions shared by docker commands.
func DefaultExecutionFlagDefinitions() ExecutionFlagDefinitions {
	return ExecutionFlagDefinitions{
		Verbose: ExecutionFlagDefinition{Name: VerboseFlagName, Usage: VerboseFlagUsage, Enabled: true},
		DryRun:  ExecutionFlagDefinition{Name: DryRunFlagName, Usage: DryRunFlagUsage, Enabled: true},
	}
}

// BindExecutionFlags attaches standardized execution toggles to the provided command.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) *ExecutionFlagValues {
	values := ExecutionFlagValues{Verbose: defaults.Verbose, DryRun: defaults.DryRun}
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if definitions.Verbose.Enabled && len(definitions.Verbose.Name) > 0 && flagSet.Lookup(definitions.Verbose.Name) == nil {
		AddToggleFlag(flagSet, &values.Verbose, definitions.Verbose.Name, definitions.Verbose.Shorthand, defaults.Verbose, definitions.Verbose.Usage)
	}
	if definitions.DryRun.Enabled && len(definitions.DryRun.Name) > 0 && flagSet.Lookup(definitions.DryRun.Name) == nil {
		AddToggleFlag(flagSet, &values.DryRun, definitions.DryRun.Name, definitions.DryRun.Shorthand, defaults.DryRun, definitions.DryRun.Usage)
	}

	return &values
}
