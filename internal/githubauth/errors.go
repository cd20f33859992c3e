package githubauth

import (
	"errors"
	"fmt"
)

const (
	authenticationFailedMessageConstant        = "GitHub authentication failed"
	authenticationFailedTemplateConstant       = "GitHub authentication failed: %v"
	credentialsMissingMessageConstant          = "no GitHub App credentials or token configured"
	incompleteAppCredentialsTemplateConstant   = "GitHub App credentials incomplete: %s must be set"
	privateKeyResolutionErrorTemplateConstant  = "unable to load GitHub App private key: %w"
	tokenResolutionErrorTemplateConstant       = "unable to load GitHub token: %w"
	installationTransportErrorTemplateConstant = "unable to build installation transport: %w"
	installationTokenExchangeTemplateConstant  = "installation token exchange failed: %w"
	apiClientCreationErrorTemplateConstant     = "unable to create GitHub API client: %w"
	appIdentifierFieldConstant                 = "github.app_id"
	installationIdentifierFieldConstant        = "github.installation_id"
)

// ErrCredentialsMissing indicates that neither App credentials nor a token were available.
var ErrCredentialsMissing = errors.New(credentialsMissingMessageConstant)

// AuthenticationError reports that a session could not be authenticated.
type AuthenticationError struct {
	Cause error
}

// Error describes the authentication failure.
func (authenticationError AuthenticationError) Error() string {
	if authenticationError.Cause == nil {
		return authenticationFailedMessageConstant
	}
	return fmt.Sprintf(authenticationFailedTemplateConstant, authenticationError.Cause)
}

// Unwrap exposes the underlying cause.
func (authenticationError AuthenticationError) Unwrap() error {
	return authenticationError.Cause
}

// IsAuthenticationError reports whether err is, or wraps, an AuthenticationError.
func IsAuthenticationError(err error) bool {
	var authenticationError AuthenticationError
	return errors.As(err, &authenticationError)
}
