// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import "github.com/spf13/cobra"

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"

	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Print the planned pull request without changing anything on GitHub."
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun bool
}

// ExecutionFlagValues stores the parsed execution flag values.
type ExecutionFlagValues struct {
	DryRun bool
}

// BindExecutionFlags attaches the dry-run toggle to the command's local flag set.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults) *ExecutionFlagValues {
	values := &ExecutionFlagValues{DryRun: defaults.DryRun}
	if command == nil {
		return values
	}

	if command.Flags().Lookup(DryRunFlagName) == nil {
		AddToggleFlag(command.Flags(), &values.DryRun, DryRunFlagName, defaults.DryRun, DryRunFlagUsage)
	}
	return values
}
