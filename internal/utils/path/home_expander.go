package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

var tildeWithPathSeparatorPrefix = tildeSymbolConstant + string(os.PathSeparator)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts user home shortcuts to absolute paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves leading tilde prefixes to the user's home directory.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 {
		return candidatePath
	}
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	resolvedHomeDirectory := expander.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildeSymbolConstant {
		return resolvedHomeDirectory
	}

	for _, prefix := range []string{tildeForwardSlashPrefixConstant, tildeWithPathSeparatorPrefix} {
		if strings.HasPrefix(candidatePath, prefix) {
			return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(candidatePath, prefix))
		}
	}

	return candidatePath
}

// Resolve expands the home shortcut and anchors relative paths at workingDirectory.
// An empty workingDirectory leaves relative paths relative to the process directory.
func (expander *HomeExpander) Resolve(candidatePath string, workingDirectory string) string {
	expandedPath := expander.Expand(strings.TrimSpace(candidatePath))
	if len(expandedPath) == 0 || filepath.IsAbs(expandedPath) {
		return expandedPath
	}
	if len(workingDirectory) == 0 {
		absolutePath, absoluteError := filepath.Abs(expandedPath)
		if absoluteError != nil {
			return filepath.Clean(expandedPath)
		}
		return absolutePath
	}
	return filepath.Join(workingDirectory, expandedPath)
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
