package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/ghpr/internal/execshell"
)

const (
	testSecretOutputConstant        = "ghs_secret_token"
	testStandardErrorOutputConstant = "not logged in"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name        string
		logger      *zap.Logger
		runner      execshell.CommandRunner
		expectError error
	}{
		{name: "logger_validation", runner: &recordingCommandRunner{}, expectError: execshell.ErrLoggerNotConfigured},
		{name: "runner_validation", logger: zap.NewNop(), expectError: execshell.ErrCommandRunnerNotConfigured},
		{name: "successful_initialization", logger: zap.NewNop(), runner: &recordingCommandRunner{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectError != nil {
				require.ErrorIs(testInstance, creationError, testCase.expectError)
				require.Nil(testInstance, executor)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, executor)
		})
	}
}

func TestShellExecutorExecuteGitHubCLI(testInstance *testing.T) {
	testCases := []struct {
		name              string
		runnerResult      execshell.ExecutionResult
		runnerError       error
		expectErrorType   any
		expectedError     string
		expectedLogLevels []string
	}{
		{
			name:              "success",
			runnerResult:      execshell.ExecutionResult{StandardOutput: testSecretOutputConstant},
			expectedLogLevels: []string{"debug", "debug"},
		},
		{
			name:              "failure_exit_code",
			runnerResult:      execshell.ExecutionResult{StandardError: testStandardErrorOutputConstant + "\n", ExitCode: 1},
			expectErrorType:   execshell.CommandFailedError{},
			expectedError:     "gh auth token exited with code 1: not logged in",
			expectedLogLevels: []string{"debug", "warn"},
		},
		{
			name:              "runner_error",
			runnerError:       errors.New("executable file not found"),
			expectErrorType:   execshell.CommandExecutionError{},
			expectedError:     "gh auth token could not be executed: executable file not found",
			expectedLogLevels: []string{"debug", "warn"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			runner := &recordingCommandRunner{executionResult: testCase.runnerResult, executionError: testCase.runnerError}

			executor, creationError := execshell.NewShellExecutor(zap.New(observerCore), runner)
			require.NoError(testInstance, creationError)

			result, executionError := executor.ExecuteGitHubCLI(context.Background(), execshell.CommandDetails{Arguments: []string{"auth", "token"}})

			require.Len(testInstance, runner.recordedCommands, 1)
			require.Equal(testInstance, execshell.CommandGitHub, runner.recordedCommands[0].Name)

			if testCase.expectErrorType != nil {
				require.IsType(testInstance, testCase.expectErrorType, executionError)
				require.EqualError(testInstance, executionError, testCase.expectedError)
				require.Empty(testInstance, result.StandardOutput)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testSecretOutputConstant, result.StandardOutput)
			}

			loggedLevels := make([]string, 0, observerLogs.Len())
			for _, entry := range observerLogs.All() {
				loggedLevels = append(loggedLevels, entry.Level.String())
				require.NotContains(testInstance, entry.ContextMap(), "stdout")
				for _, value := range entry.ContextMap() {
					require.NotEqual(testInstance, testSecretOutputConstant, value)
				}
			}
			require.Equal(testInstance, testCase.expectedLogLevels, loggedLevels)
		})
	}
}

func TestShellCommandLabel(testInstance *testing.T) {
	require.Equal(testInstance, "gh", execshell.ShellCommand{Name: execshell.CommandGitHub}.Label())
	require.Equal(
		testInstance,
		"gh auth token --hostname ghe.example.com",
		execshell.ShellCommand{Name: execshell.CommandGitHub, Details: execshell.CommandDetails{Arguments: []string{"auth", "token", "--hostname", "ghe.example.com"}}}.Label(),
	)
}

func TestCommandExecutionErrorUnwraps(testInstance *testing.T) {
	cause := errors.New("boom")
	executionError := execshell.CommandExecutionError{Command: execshell.ShellCommand{Name: execshell.CommandGitHub}, Cause: cause}
	require.ErrorIs(testInstance, executionError, cause)
}
