package githubauth

import "strings"

// Environment variable names consulted for a static token when no App credentials are configured.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// ResolveEnvironmentToken returns the first non-empty token among GH_TOKEN, GITHUB_TOKEN, and GITHUB_API_TOKEN.
func ResolveEnvironmentToken(environmentLookup EnvironmentLookup) (string, bool) {
	if environmentLookup == nil {
		return "", false
	}
	for _, key := range tokenPreference {
		value, exists := environmentLookup(key)
		if !exists {
			continue
		}
		trimmedValue := strings.TrimSpace(value)
		if len(trimmedValue) > 0 {
			return trimmedValue, true
		}
	}
	return "", false
}
