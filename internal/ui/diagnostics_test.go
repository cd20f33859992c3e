package ui_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghpr/internal/ui"
)

const (
	testDiagnosticMessageConstant = "Base branch 'main' not found: 404 Not Found"
	testSuccessMessageConstant    = "Successfully created Pull Request: https://github.com/OWASP/Nest/pull/7"
)

func TestDiagnosticPrinterRoutesSeverities(testInstance *testing.T) {
	testInstance.Setenv("CLICOLOR_FORCE", "")
	testInstance.Setenv("NO_COLOR", "1")

	testCases := []struct {
		name           string
		invoke         func(printer *ui.DiagnosticPrinter)
		expectedOutput string
		expectedError  string
	}{
		{
			name:          "error",
			invoke:        func(printer *ui.DiagnosticPrinter) { printer.Error(testDiagnosticMessageConstant) },
			expectedError: "error: " + testDiagnosticMessageConstant + "\n",
		},
		{
			name:          "warning",
			invoke:        func(printer *ui.DiagnosticPrinter) { printer.Warning("Failed to add labels: 422") },
			expectedError: "warning: Failed to add labels: 422\n",
		},
		{
			name:          "unexpected_error",
			invoke:        func(printer *ui.DiagnosticPrinter) { printer.UnexpectedError(errors.New("boom")) },
			expectedError: "error: Unexpected error: boom\n",
		},
		{
			name:           "success",
			invoke:         func(printer *ui.DiagnosticPrinter) { printer.Success(testSuccessMessageConstant) },
			expectedOutput: testSuccessMessageConstant + "\n",
		},
		{
			name: "notice_and_line",
			invoke: func(printer *ui.DiagnosticPrinter) {
				printer.Notice("DRY RUN")
				printer.Line("  a -> b")
			},
			expectedOutput: "DRY RUN\n  a -> b\n",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			errorBuffer := &bytes.Buffer{}
			printer := ui.NewDiagnosticPrinter(outputBuffer, errorBuffer)

			testCase.invoke(printer)

			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
			require.Equal(testInstance, testCase.expectedError, errorBuffer.String())
		})
	}
}

func TestReportedErrorDetection(testInstance *testing.T) {
	cause := errors.New("already printed")

	require.Nil(testInstance, ui.NewReportedError(nil))

	reported := ui.NewReportedError(cause)
	require.True(testInstance, ui.IsReported(reported))
	require.True(testInstance, ui.IsReported(fmt.Errorf("wrapped: %w", reported)))
	require.ErrorIs(testInstance, reported, cause)
	require.Equal(testInstance, cause.Error(), reported.Error())
	require.False(testInstance, ui.IsReported(cause))
}
