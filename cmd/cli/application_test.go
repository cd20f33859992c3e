package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/ghpr/cmd/cli"
	"github.com/temirov/ghpr/internal/pullrequest"
)

const (
	createPullRequestCommandNameConstant = "create-pr"
)

func flattenConfigurationKeys(prefix string, node map[string]any, keys map[string]struct{}) {
	for key, value := range node {
		dottedKey := key
		if len(prefix) > 0 {
			dottedKey = prefix + "." + key
		}
		if nested, isMap := value.(map[string]any); isMap {
			flattenConfigurationKeys(dottedKey, nested, keys)
			continue
		}
		keys[dottedKey] = struct{}{}
	}
}

func knownConfigurationKeys() map[string]struct{} {
	keys := map[string]struct{}{
		"common.log_level":  {},
		"common.log_format": {},
	}
	for key := range pullrequest.DefaultConfigurationValues() {
		keys[key] = struct{}{}
	}
	return keys
}

func parseConfigurationKeys(testInstance *testing.T, content []byte) map[string]struct{} {
	testInstance.Helper()
	document := map[string]any{}
	require.NoError(testInstance, yaml.Unmarshal(content, &document))
	keys := map[string]struct{}{}
	flattenConfigurationKeys("", document, keys)
	return keys
}

func TestEmbeddedDefaultConfigurationCoversKnownKeys(testInstance *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)

	require.Equal(testInstance, knownConfigurationKeys(), parseConfigurationKeys(testInstance, configurationData))

	document := map[string]map[string]any{}
	require.NoError(testInstance, yaml.Unmarshal(configurationData, &document))
	require.Equal(testInstance, "error", document["common"]["log_level"])
	require.Equal(testInstance, "console", document["common"]["log_format"])
	require.Equal(testInstance, "env:GHPR_GITHUB_APP_PRIVATE_KEY", document["github"]["private_key_source"])
	require.Equal(testInstance, "main", document["pull_request"]["base_branch"])
	require.Equal(testInstance, "main", document["pull_request"]["branch_source"])
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, firstCopy)
	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, byte('#'), secondCopy[0])
}

func TestApplicationCommandSurface(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		expectedError  string
		expectedOutput []string
	}{
		{
			name:           "root_prints_help",
			arguments:      []string{},
			expectedOutput: []string{"ghpr authenticates as a GitHub App installation", createPullRequestCommandNameConstant, "--log-level", "<debug|info|warn|ERROR>"},
		},
		{
			name:           "create_pr_help",
			arguments:      []string{createPullRequestCommandNameConstant, "--help"},
			expectedOutput: []string{"--repository", "--head-branch", "--files", "--dry-run", "--draft"},
		},
		{
			name:          "invalid_log_level",
			arguments:     []string{"--log-level", "verbose"},
			expectedError: "unsupported value \"verbose\" for --log-level",
		},
		{
			name:          "invalid_log_format",
			arguments:     []string{"--log-format", "xml"},
			expectedError: "unsupported value \"xml\" for --log-format",
		},
		{
			name:          "missing_configuration_file",
			arguments:     []string{"--config", filepath.Join(os.TempDir(), "ghpr-missing", "config.yaml")},
			expectedError: "unable to load configuration",
		},
		{
			name:          "create_pr_requires_flags",
			arguments:     []string{createPullRequestCommandNameConstant},
			expectedError: "required flag(s)",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			application, applicationError := cli.NewApplication()
			require.NoError(testInstance, applicationError)

			outputBuffer := &bytes.Buffer{}
			command := application.Command()
			command.SetOut(outputBuffer)
			command.SetErr(outputBuffer)
			command.SetArgs(testCase.arguments)

			executionError := application.Execute()
			if len(testCase.expectedError) > 0 {
				require.Error(testInstance, executionError)
				require.Contains(testInstance, executionError.Error(), testCase.expectedError)
				return
			}

			require.NoError(testInstance, executionError)
			for _, expectedFragment := range testCase.expectedOutput {
				require.True(testInstance, strings.Contains(outputBuffer.String(), expectedFragment), "missing %q in output", expectedFragment)
			}
		})
	}
}

func TestApplicationLoadsConfigurationFile(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), "config.yaml")
	configurationContent := "common:\n  log_level: debug\npull_request:\n  base_branch: develop\n"
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	application, applicationError := cli.NewApplication()
	require.NoError(testInstance, applicationError)

	outputBuffer := &bytes.Buffer{}
	command := application.Command()
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{"--config", configurationPath, "--log-level", "ERROR"})

	require.NoError(testInstance, application.Execute())
	require.Contains(testInstance, outputBuffer.String(), createPullRequestCommandNameConstant)
}
