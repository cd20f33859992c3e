package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "structured",
			choices:        []string{"structured", "console"},
			description:    "Log encoding.",
			expectedOutput: "`<STRUCTURED|console>` Log encoding.",
		},
		{
			name:           "DefaultLastChoice",
			defaultChoice:  "error",
			choices:        []string{"debug", "info", "warn", "error"},
			description:    "Minimum log level.",
			expectedOutput: "`<debug|info|warn|ERROR>` Minimum log level.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			expectedOutput: "`<structured|CONSOLE>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "info",
			choices:        []string{"info", "INFO", "debug"},
			description:    "Level.",
			expectedOutput: "`<INFO|debug>` Level.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestNormalizeChoice(t *testing.T) {
	choices := []string{"structured", "console"}

	testCases := []struct {
		name          string
		value         string
		expectedValue string
		expectError   bool
	}{
		{name: "EmptyValueAccepted", value: "  ", expectedValue: ""},
		{name: "ExactMatch", value: "console", expectedValue: "console"},
		{name: "CaseInsensitiveMatch", value: " Structured ", expectedValue: "structured"},
		{name: "UnknownValueRejected", value: "xml", expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			normalized, normalizeError := NormalizeChoice("log-format", testCase.value, choices)
			if testCase.expectError {
				require.Error(t, normalizeError)
				require.Contains(t, normalizeError.Error(), "--log-format")
				return
			}
			require.NoError(t, normalizeError)
			require.Equal(t, testCase.expectedValue, normalized)
		})
	}
}
