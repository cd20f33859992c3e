package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandFailedTemplateConstant             = "%s exited with code %d"
	commandFailedWithOutputTemplateConstant   = "%s exited with code %d: %s"
	commandExecutionFailedTemplateConstant    = "%s could not be executed: %v"
	commandLabelSeparatorConstant             = " "
	commandLogFieldConstant                   = "command"
	workingDirectoryLogFieldConstant          = "working_directory"
	exitCodeLogFieldConstant                  = "exit_code"
	standardErrorLogFieldConstant             = "stderr"
	commandStartedMessageConstant             = "Running command"
	commandSucceededMessageConstant           = "Command completed"
	commandFailedMessageConstant              = "Command failed"
	commandExecutionFailedMessageConstant     = "Command could not be executed"
)

// CommandName identifies an executable.
type CommandName string

// Known executables.
const (
	CommandGitHub CommandName = "gh"
)

// CommandDetails describes the invocation of an executable.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// Label renders the executable and its arguments for logs and errors.
func (command ShellCommand) Label() string {
	return strings.TrimSpace(string(command.Name) + commandLabelSeparatorConstant + strings.Join(command.Details.Arguments, commandLabelSeparatorConstant))
}

// ExecutionResult captures the output of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner starts processes.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

var (
	// ErrLoggerNotConfigured indicates NewShellExecutor received a nil logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

	// ErrCommandRunnerNotConfigured indicates NewShellExecutor received a nil runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a process that exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error includes the trimmed standard error when the process produced any.
func (failedError CommandFailedError) Error() string {
	standardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(standardError) == 0 {
		return fmt.Sprintf(commandFailedTemplateConstant, failedError.Command.Label(), failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithOutputTemplateConstant, failedError.Command.Label(), failedError.Result.ExitCode, standardError)
}

// CommandExecutionError reports a process that could not be started or waited on.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, executionError.Command.Label(), executionError.Cause)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs commands and logs their lifecycle. Standard output is never logged because it may carry
// credentials.
type ShellExecutor struct {
	logger *zap.Logger
	runner CommandRunner
}

// NewShellExecutor validates dependencies and constructs an executor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{logger: logger, runner: runner}, nil
}

// Execute runs the command. A non-zero exit code is reported as CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(commandLogFieldConstant, command.Label()),
		zap.String(workingDirectoryLogFieldConstant, command.Details.WorkingDirectory),
	}
	executor.logger.Debug(commandStartedMessageConstant, commandFields...)

	result, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Warn(commandExecutionFailedMessageConstant, append(commandFields, zap.Error(runError))...)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	if result.ExitCode != 0 {
		executor.logger.Warn(
			commandFailedMessageConstant,
			append(commandFields, zap.Int(exitCodeLogFieldConstant, result.ExitCode), zap.String(standardErrorLogFieldConstant, strings.TrimSpace(result.StandardError)))...,
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: result}
	}

	executor.logger.Debug(commandSucceededMessageConstant, commandFields...)
	return result, nil
}

// ExecuteGitHubCLI runs the gh executable.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGitHub, Details: details})
}
