package pullrequest

import (
	"strings"

	"github.com/temirov/ghpr/internal/githubauth"
)

const (
	defaultBranchNameConstant                = "main"
	defaultPrivateKeySourceConstant          = "env:GHPR_GITHUB_APP_PRIVATE_KEY"
	configurationKeySeparatorConstant        = "."
	githubConfigurationKeyConstant           = "github"
	pullRequestConfigurationKeyConstant      = "pull_request"
	apiBaseURLConfigurationKeyConstant       = "api_base_url"
	appIDConfigurationKeyConstant            = "app_id"
	installationIDConfigurationKeyConstant   = "installation_id"
	privateKeySourceConfigurationKeyConstant = "private_key_source"
	tokenSourceConfigurationKeyConstant      = "token_source"
	baseBranchConfigurationKeyConstant       = "base_branch"
	branchSourceConfigurationKeyConstant     = "branch_source"
)

// Configuration aggregates the persisted settings consumed by create-pr.
type Configuration struct {
	GitHub      GitHubConfiguration      `mapstructure:"github"`
	PullRequest PullRequestConfiguration `mapstructure:"pull_request"`
}

// GitHubConfiguration selects the API endpoint and credentials.
type GitHubConfiguration struct {
	APIBaseURL       string `mapstructure:"api_base_url"`
	AppID            int64  `mapstructure:"app_id"`
	InstallationID   int64  `mapstructure:"installation_id"`
	PrivateKeySource string `mapstructure:"private_key_source"`
	TokenSource      string `mapstructure:"token_source"`
}

// PullRequestConfiguration holds branch defaults.
type PullRequestConfiguration struct {
	BaseBranch string `mapstructure:"base_branch"`

	// BranchSource is the branch whose tip seeds a newly created head branch. It is independent of BaseBranch.
	BranchSource string `mapstructure:"branch_source"`
}

// DefaultConfiguration supplies baseline values.
func DefaultConfiguration() Configuration {
	return Configuration{
		GitHub: GitHubConfiguration{
			PrivateKeySource: defaultPrivateKeySourceConstant,
		},
		PullRequest: PullRequestConfiguration{
			BaseBranch:   defaultBranchNameConstant,
			BranchSource: defaultBranchNameConstant,
		},
	}
}

// DefaultConfigurationValues flattens DefaultConfiguration into dotted keys so every key can be overridden
// from the environment.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		githubKey(apiBaseURLConfigurationKeyConstant):        defaults.GitHub.APIBaseURL,
		githubKey(appIDConfigurationKeyConstant):             defaults.GitHub.AppID,
		githubKey(installationIDConfigurationKeyConstant):    defaults.GitHub.InstallationID,
		githubKey(privateKeySourceConfigurationKeyConstant):  defaults.GitHub.PrivateKeySource,
		githubKey(tokenSourceConfigurationKeyConstant):       defaults.GitHub.TokenSource,
		pullRequestKey(baseBranchConfigurationKeyConstant):   defaults.PullRequest.BaseBranch,
		pullRequestKey(branchSourceConfigurationKeyConstant): defaults.PullRequest.BranchSource,
	}
}

// Sanitize trims values and restores defaults for blank branch names and key source.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.GitHub.APIBaseURL = strings.TrimSpace(configuration.GitHub.APIBaseURL)
	sanitized.GitHub.PrivateKeySource = strings.TrimSpace(configuration.GitHub.PrivateKeySource)
	sanitized.GitHub.TokenSource = strings.TrimSpace(configuration.GitHub.TokenSource)
	if len(sanitized.GitHub.PrivateKeySource) == 0 {
		sanitized.GitHub.PrivateKeySource = defaultPrivateKeySourceConstant
	}

	sanitized.PullRequest.BaseBranch = strings.TrimSpace(configuration.PullRequest.BaseBranch)
	if len(sanitized.PullRequest.BaseBranch) == 0 {
		sanitized.PullRequest.BaseBranch = defaultBranchNameConstant
	}
	sanitized.PullRequest.BranchSource = strings.TrimSpace(configuration.PullRequest.BranchSource)
	if len(sanitized.PullRequest.BranchSource) == 0 {
		sanitized.PullRequest.BranchSource = defaultBranchNameConstant
	}
	return sanitized
}

// Authentication converts the GitHub section into establisher input.
func (configuration GitHubConfiguration) Authentication() githubauth.Configuration {
	return githubauth.Configuration{
		APIBaseURL:       configuration.APIBaseURL,
		AppID:            configuration.AppID,
		InstallationID:   configuration.InstallationID,
		PrivateKeySource: configuration.PrivateKeySource,
		TokenSource:      configuration.TokenSource,
	}
}

func githubKey(key string) string {
	return githubConfigurationKeyConstant + configurationKeySeparatorConstant + key
}

func pullRequestKey(key string) string {
	return pullRequestConfigurationKeyConstant + configurationKeySeparatorConstant + key
}
