package githubauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/temirov/ghpr/internal/githubapi"
)

const (
	enterpriseAPIPathSuffixConstant        = "/api/v3"
	apiHostPrefixConstant                  = "api."
	apiHostInfixConstant                   = ".api."
	trailingSlashConstant                  = "/"
	escapedNewlineConstant                 = `\n`
	newlineConstant                        = "\n"
	staticTokenTypeConstant                = "Bearer"
	sessionModeFieldConstant               = "auth_mode"
	appIdentifierLogFieldConstant          = "app_id"
	installationIdentifierLogFieldConstant = "installation_id"
	apiBaseURLLogFieldConstant             = "api_base_url"
	sessionEstablishedMessageConstant      = "GitHub session established"
	tokenFallbackMessageConstant           = "GitHub App credentials absent; using static token"
)

// AuthenticationMode names how a session was authenticated.
type AuthenticationMode string

// Authentication modes.
const (
	AuthenticationModeInstallation AuthenticationMode = "installation"
	AuthenticationModeToken        AuthenticationMode = "token"
)

// Configuration selects the credentials used to authenticate.
type Configuration struct {
	APIBaseURL       string
	AppID            int64
	InstallationID   int64
	PrivateKeySource string
	TokenSource      string
}

// Establisher opens authenticated GitHub API clients.
type Establisher struct {
	// BaseTransport carries every request, including the installation token exchange; nil uses a clone of http.DefaultTransport.
	BaseTransport     http.RoundTripper
	SecretResolver    *SecretResolver
	EnvironmentLookup EnvironmentLookup
	Logger            *zap.Logger

	// CLITokenProvider serves "gh:" token sources; nil runs the gh executable.
	CLITokenProvider CLITokenProvider
}

// Establish authenticates and returns a client ready for repository calls.
// Credential problems are reported as AuthenticationError. Installation tokens are exchanged eagerly so that
// rejected App credentials fail here rather than on the first repository call.
func (establisher *Establisher) Establish(executionContext context.Context, configuration Configuration) (*githubapi.Client, error) {
	logger := establisher.logger()

	baseTransport := establisher.baseTransport()
	httpClient, mode, authenticationError := establisher.authenticatedHTTPClient(executionContext, configuration, baseTransport)
	if authenticationError != nil {
		closeIdleConnections(baseTransport)
		return nil, authenticationError
	}

	clientOptions := githubapi.ClientOptions{
		BaseURL: configuration.APIBaseURL,
		OnClose: func() { closeIdleConnections(baseTransport) },
	}
	client, clientError := githubapi.NewClient(httpClient, clientOptions)
	if clientError != nil {
		return nil, fmt.Errorf(apiClientCreationErrorTemplateConstant, clientError)
	}

	logger.Info(
		sessionEstablishedMessageConstant,
		zap.String(sessionModeFieldConstant, string(mode)),
		zap.Int64(appIdentifierLogFieldConstant, configuration.AppID),
		zap.Int64(installationIdentifierLogFieldConstant, configuration.InstallationID),
		zap.String(apiBaseURLLogFieldConstant, configuration.APIBaseURL),
	)
	return client, nil
}

func (establisher *Establisher) authenticatedHTTPClient(executionContext context.Context, configuration Configuration, baseTransport http.RoundTripper) (*http.Client, AuthenticationMode, error) {
	if configuration.AppID > 0 || configuration.InstallationID > 0 {
		httpClient, installationError := establisher.installationHTTPClient(executionContext, configuration, baseTransport)
		return httpClient, AuthenticationModeInstallation, installationError
	}

	token, tokenError := establisher.resolveStaticToken(executionContext, configuration)
	if tokenError != nil {
		return nil, AuthenticationModeToken, AuthenticationError{Cause: tokenError}
	}

	establisher.logger().Debug(tokenFallbackMessageConstant)
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: staticTokenTypeConstant})
	return &http.Client{Transport: &oauth2.Transport{Source: tokenSource, Base: baseTransport}}, AuthenticationModeToken, nil
}

func (establisher *Establisher) installationHTTPClient(executionContext context.Context, configuration Configuration, baseTransport http.RoundTripper) (*http.Client, error) {
	if configuration.AppID <= 0 {
		return nil, AuthenticationError{Cause: fmt.Errorf(incompleteAppCredentialsTemplateConstant, appIdentifierFieldConstant)}
	}
	if configuration.InstallationID <= 0 {
		return nil, AuthenticationError{Cause: fmt.Errorf(incompleteAppCredentialsTemplateConstant, installationIdentifierFieldConstant)}
	}

	privateKey, privateKeyError := establisher.secretResolver().ResolveDeclaration(executionContext, configuration.PrivateKeySource)
	if privateKeyError != nil {
		return nil, AuthenticationError{Cause: fmt.Errorf(privateKeyResolutionErrorTemplateConstant, privateKeyError)}
	}

	installationTransport, transportError := ghinstallation.New(baseTransport, configuration.AppID, configuration.InstallationID, normalizePrivateKey(privateKey))
	if transportError != nil {
		return nil, AuthenticationError{Cause: fmt.Errorf(installationTransportErrorTemplateConstant, transportError)}
	}
	if installationBaseURL := InstallationAPIBaseURL(configuration.APIBaseURL); len(installationBaseURL) > 0 {
		installationTransport.BaseURL = installationBaseURL
	}

	if _, tokenError := installationTransport.Token(executionContext); tokenError != nil {
		return nil, AuthenticationError{Cause: fmt.Errorf(installationTokenExchangeTemplateConstant, tokenError)}
	}

	return &http.Client{Transport: installationTransport}, nil
}

func (establisher *Establisher) resolveStaticToken(executionContext context.Context, configuration Configuration) (string, error) {
	if len(strings.TrimSpace(configuration.TokenSource)) > 0 {
		token, resolveError := establisher.secretResolver().ResolveDeclaration(executionContext, configuration.TokenSource)
		if resolveError != nil {
			return "", fmt.Errorf(tokenResolutionErrorTemplateConstant, resolveError)
		}
		return token, nil
	}

	token, found := ResolveEnvironmentToken(establisher.environmentLookup())
	if !found {
		return "", ErrCredentialsMissing
	}
	return token, nil
}

// normalizePrivateKey restores line breaks in PEM text that was stored with escaped "\n" sequences.
func normalizePrivateKey(privateKey string) []byte {
	if strings.Contains(privateKey, escapedNewlineConstant) && !strings.Contains(privateKey, newlineConstant) {
		privateKey = strings.ReplaceAll(privateKey, escapedNewlineConstant, newlineConstant)
	}
	return []byte(privateKey)
}

// InstallationAPIBaseURL converts a configured API base URL into the form used for the token exchange:
// no trailing slash, and /api/v3 appended unless the host is an api. host (github.com, GHE.com).
// It follows the rule go-github applies to the REST base URL. An empty input stays empty.
func InstallationAPIBaseURL(apiBaseURL string) string {
	trimmedBaseURL := strings.TrimRight(strings.TrimSpace(apiBaseURL), trailingSlashConstant)
	if len(trimmedBaseURL) == 0 {
		return ""
	}
	if strings.HasSuffix(trimmedBaseURL, enterpriseAPIPathSuffixConstant) {
		return trimmedBaseURL
	}
	if parsedBaseURL, parseError := url.Parse(trimmedBaseURL); parseError == nil {
		if strings.HasPrefix(parsedBaseURL.Host, apiHostPrefixConstant) || strings.Contains(parsedBaseURL.Host, apiHostInfixConstant) {
			return trimmedBaseURL
		}
	}
	return trimmedBaseURL + enterpriseAPIPathSuffixConstant
}

func (establisher *Establisher) baseTransport() http.RoundTripper {
	if establisher.BaseTransport != nil {
		return establisher.BaseTransport
	}
	if defaultTransport, isTransport := http.DefaultTransport.(*http.Transport); isTransport {
		return defaultTransport.Clone()
	}
	return http.DefaultTransport
}

func closeIdleConnections(transport http.RoundTripper) {
	if closer, canClose := transport.(interface{ CloseIdleConnections() }); canClose {
		closer.CloseIdleConnections()
	}
}

func (establisher *Establisher) secretResolver() *SecretResolver {
	if establisher.SecretResolver != nil {
		return establisher.SecretResolver
	}
	return NewSecretResolver(establisher.EnvironmentLookup, nil, nil).WithCLITokenProvider(establisher.cliTokenProvider())
}

func (establisher *Establisher) cliTokenProvider() CLITokenProvider {
	if establisher.CLITokenProvider != nil {
		return establisher.CLITokenProvider
	}
	return lazyCLITokenProvider{logger: establisher.logger()}
}

func (establisher *Establisher) environmentLookup() EnvironmentLookup {
	if establisher.EnvironmentLookup != nil {
		return establisher.EnvironmentLookup
	}
	return os.LookupEnv
}

func (establisher *Establisher) logger() *zap.Logger {
	if establisher.Logger != nil {
		return establisher.Logger
	}
	return zap.NewNop()
}
