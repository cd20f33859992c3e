package githubauth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	pathutils "github.com/temirov/ghpr/internal/utils/path"
)

const (
	secretSourceSeparatorConstant              = ":"
	environmentSecretSourceTypeValueConstant   = "env"
	fileSecretSourceTypeValueConstant          = "file"
	githubCLISecretSourceTypeValueConstant     = "gh"
	cliTokenProviderMissingMessageConstant     = "github cli token provider not configured"
	cliTokenErrorTemplateConstant              = "unable to read token from github cli: %w"
	secretSourceMissingErrorMessageConstant    = "secret source must be provided"
	environmentNameMissingErrorMessageConstant = "environment variable name must be provided"
	filePathMissingErrorMessageConstant        = "secret file path must be provided"
	environmentSecretMissingTemplateConstant   = "environment variable %s is not set"
	fileReadErrorTemplateConstant              = "unable to read secret file %s: %w"
	fileSecretEmptyErrorTemplateConstant       = "secret file %s is empty"
	unsupportedSecretSourceTemplateConstant    = "unsupported secret source type %q"
)

// SecretSourceType enumerates where a secret is read from.
type SecretSourceType string

// Secret source types.
const (
	SecretSourceTypeEnvironment SecretSourceType = SecretSourceType(environmentSecretSourceTypeValueConstant)
	SecretSourceTypeFile        SecretSourceType = SecretSourceType(fileSecretSourceTypeValueConstant)
	SecretSourceTypeGitHubCLI   SecretSourceType = SecretSourceType(githubCLISecretSourceTypeValueConstant)
)

// SecretSource locates a secret such as an App private key or an access token.
// For SecretSourceTypeGitHubCLI the reference is an optional hostname.
type SecretSource struct {
	Type      SecretSourceType
	Reference string
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// FileReader reads the contents of a file path.
type FileReader func(path string) ([]byte, error)

// CLITokenProvider returns the token the GitHub CLI holds for a host.
type CLITokenProvider interface {
	AuthToken(executionContext context.Context, hostname string) (string, error)
}

// ErrSecretSourceMissing indicates an empty secret source declaration.
var ErrSecretSourceMissing = errors.New(secretSourceMissingErrorMessageConstant)

// ErrCLITokenProviderMissing indicates a "gh:" source was used without a CLI token provider.
var ErrCLITokenProviderMissing = errors.New(cliTokenProviderMissingMessageConstant)

// ParseSecretSource interprets "env:NAME", "file:/path", "gh:[hostname]", or a bare environment variable name.
func ParseSecretSource(sourceValue string) (SecretSource, error) {
	trimmedValue := strings.TrimSpace(sourceValue)
	if len(trimmedValue) == 0 {
		return SecretSource{}, ErrSecretSourceMissing
	}

	components := strings.SplitN(trimmedValue, secretSourceSeparatorConstant, 2)
	if len(components) == 1 {
		return SecretSource{Type: SecretSourceTypeEnvironment, Reference: trimmedValue}, nil
	}

	sourceType := strings.ToLower(strings.TrimSpace(components[0]))
	reference := strings.TrimSpace(components[1])

	switch sourceType {
	case environmentSecretSourceTypeValueConstant:
		if len(reference) == 0 {
			return SecretSource{}, errors.New(environmentNameMissingErrorMessageConstant)
		}
		return SecretSource{Type: SecretSourceTypeEnvironment, Reference: reference}, nil
	case fileSecretSourceTypeValueConstant:
		if len(reference) == 0 {
			return SecretSource{}, errors.New(filePathMissingErrorMessageConstant)
		}
		return SecretSource{Type: SecretSourceTypeFile, Reference: reference}, nil
	case githubCLISecretSourceTypeValueConstant:
		return SecretSource{Type: SecretSourceTypeGitHubCLI, Reference: reference}, nil
	default:
		return SecretSource{}, fmt.Errorf(unsupportedSecretSourceTemplateConstant, sourceType)
	}
}

// SecretResolver reads secrets from the environment or the filesystem.
type SecretResolver struct {
	environmentLookup EnvironmentLookup
	fileReader        FileReader
	homeExpander      *pathutils.HomeExpander
	cliTokenProvider  CLITokenProvider
}

// NewSecretResolver creates a resolver; nil dependencies fall back to the operating system.
func NewSecretResolver(environmentLookup EnvironmentLookup, fileReader FileReader, homeExpander *pathutils.HomeExpander) *SecretResolver {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if fileReader == nil {
		fileReader = os.ReadFile
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return &SecretResolver{
		environmentLookup: environmentLookup,
		fileReader:        fileReader,
		homeExpander:      homeExpander,
	}
}

// WithCLITokenProvider enables "gh:" sources and returns the resolver.
func (resolver *SecretResolver) WithCLITokenProvider(provider CLITokenProvider) *SecretResolver {
	resolver.cliTokenProvider = provider
	return resolver
}

// Resolve returns the secret text with surrounding whitespace removed.
func (resolver *SecretResolver) Resolve(executionContext context.Context, source SecretSource) (string, error) {
	switch source.Type {
	case SecretSourceTypeEnvironment:
		value, found := resolver.environmentLookup(source.Reference)
		trimmedValue := strings.TrimSpace(value)
		if !found || len(trimmedValue) == 0 {
			return "", fmt.Errorf(environmentSecretMissingTemplateConstant, source.Reference)
		}
		return trimmedValue, nil
	case SecretSourceTypeFile:
		expandedPath := resolver.homeExpander.Expand(source.Reference)
		contents, readError := resolver.fileReader(expandedPath)
		if readError != nil {
			return "", fmt.Errorf(fileReadErrorTemplateConstant, expandedPath, readError)
		}
		trimmedValue := strings.TrimSpace(string(contents))
		if len(trimmedValue) == 0 {
			return "", fmt.Errorf(fileSecretEmptyErrorTemplateConstant, expandedPath)
		}
		return trimmedValue, nil
	case SecretSourceTypeGitHubCLI:
		if resolver.cliTokenProvider == nil {
			return "", ErrCLITokenProviderMissing
		}
		token, tokenError := resolver.cliTokenProvider.AuthToken(executionContext, source.Reference)
		if tokenError != nil {
			return "", fmt.Errorf(cliTokenErrorTemplateConstant, tokenError)
		}
		return strings.TrimSpace(token), nil
	default:
		return "", fmt.Errorf(unsupportedSecretSourceTemplateConstant, source.Type)
	}
}

// ResolveDeclaration parses and resolves a textual source declaration.
func (resolver *SecretResolver) ResolveDeclaration(executionContext context.Context, sourceValue string) (string, error) {
	source, parseError := ParseSecretSource(sourceValue)
	if parseError != nil {
		return "", parseError
	}
	return resolver.Resolve(executionContext, source)
}
