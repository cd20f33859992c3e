package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

const environmentAssignmentSeparatorConstant = "="

// OSCommandRunner starts real processes.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the command and waits for it. A non-zero exit is returned through ExecutionResult.ExitCode, not as
// an error.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	process := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	process.Dir = command.Details.WorkingDirectory
	process.Env = mergeEnvironment(command.Details.EnvironmentVariables)
	if len(command.Details.StandardInput) > 0 {
		process.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	process.Stdout = &standardOutput
	process.Stderr = &standardError

	result := ExecutionResult{}
	runError := process.Run()
	var exitError *exec.ExitError
	switch {
	case runError == nil:
	case errors.As(runError, &exitError):
		result.ExitCode = exitError.ExitCode()
	default:
		return ExecutionResult{}, runError
	}

	result.StandardOutput = standardOutput.String()
	result.StandardError = standardError.String()
	return result, nil
}

// mergeEnvironment returns nil when there are no overrides so the child inherits the parent environment.
func mergeEnvironment(overrides map[string]string) []string {
	if len(overrides) == 0 {
		return nil
	}
	merged := os.Environ()
	for key, value := range overrides {
		merged = append(merged, key+environmentAssignmentSeparatorConstant+value)
	}
	return merged
}
