package pullrequest

import (
	"fmt"
	"strings"
)

const (
	repositorySeparatorConstant              = "/"
	listSeparatorConstant                    = ","
	fileMappingPairSeparatorConstant         = ":"
	repositoryFieldConstant                  = "repository"
	filesFieldConstant                       = "files"
	invalidRepositoryTemplateConstant        = "Invalid repository format: %s. Expected format: 'owner/repo'"
	invalidFileSpecificationTemplateConstant = "Invalid file specification: %s. Expected format: 'local_path:remote_path'"
	emptyLocalPathTemplateConstant           = "Empty local path in specification: %s"
	emptyRemotePathTemplateConstant          = "Empty remote path in specification: %s"
	repositoryIdentifierTemplateConstant     = "%s/%s"
)

// RepositoryIdentifier names a repository as owner and name.
type RepositoryIdentifier struct {
	Owner string
	Name  string
}

// String renders owner/name.
func (identifier RepositoryIdentifier) String() string {
	return fmt.Sprintf(repositoryIdentifierTemplateConstant, identifier.Owner, identifier.Name)
}

// ParseRepositoryIdentifier splits "owner/repo" on the first slash; both parts must be non-empty.
func ParseRepositoryIdentifier(raw string) (RepositoryIdentifier, error) {
	trimmedValue := strings.TrimSpace(raw)
	owner, name, found := strings.Cut(trimmedValue, repositorySeparatorConstant)
	if !found || len(owner) == 0 || len(name) == 0 {
		return RepositoryIdentifier{}, InvalidArgumentError{
			Field:   repositoryFieldConstant,
			Value:   raw,
			Message: fmt.Sprintf(invalidRepositoryTemplateConstant, raw),
		}
	}
	return RepositoryIdentifier{Owner: owner, Name: name}, nil
}

// FileMappingEntry pairs a local source file with its destination path in the repository.
type FileMappingEntry struct {
	LocalPath  string
	RemotePath string
}

// FileMapping is an ordered local-to-remote mapping. A repeated local path keeps its first position and
// takes the last remote path given for it.
type FileMapping struct {
	entries []FileMappingEntry
	index   map[string]int
}

// Entries returns the pairs in insertion order.
func (mapping FileMapping) Entries() []FileMappingEntry {
	return append([]FileMappingEntry(nil), mapping.entries...)
}

// Len returns the number of distinct local paths.
func (mapping FileMapping) Len() int {
	return len(mapping.entries)
}

// Empty reports whether no files were requested.
func (mapping FileMapping) Empty() bool {
	return len(mapping.entries) == 0
}

func (mapping *FileMapping) set(localPath string, remotePath string) {
	if mapping.index == nil {
		mapping.index = make(map[string]int)
	}
	if position, exists := mapping.index[localPath]; exists {
		mapping.entries[position].RemotePath = remotePath
		return
	}
	mapping.index[localPath] = len(mapping.entries)
	mapping.entries = append(mapping.entries, FileMappingEntry{LocalPath: localPath, RemotePath: remotePath})
}

// ParseFileMapping parses "local:remote,local2:remote2". Each pair is split on its first colon so remote
// paths may contain colons. Empty input yields an empty mapping.
func ParseFileMapping(raw string) (FileMapping, error) {
	mapping := FileMapping{}
	if len(raw) == 0 {
		return mapping, nil
	}

	for _, pair := range strings.Split(raw, listSeparatorConstant) {
		localPath, remotePath, found := strings.Cut(pair, fileMappingPairSeparatorConstant)
		if !found {
			return FileMapping{}, InvalidArgumentError{Field: filesFieldConstant, Value: pair, Message: fmt.Sprintf(invalidFileSpecificationTemplateConstant, pair)}
		}

		localPath = strings.TrimSpace(localPath)
		remotePath = strings.TrimSpace(remotePath)
		if len(localPath) == 0 {
			return FileMapping{}, InvalidArgumentError{Field: filesFieldConstant, Value: pair, Message: fmt.Sprintf(emptyLocalPathTemplateConstant, pair)}
		}
		if len(remotePath) == 0 {
			return FileMapping{}, InvalidArgumentError{Field: filesFieldConstant, Value: pair, Message: fmt.Sprintf(emptyRemotePathTemplateConstant, pair)}
		}

		mapping.set(localPath, remotePath)
	}

	return mapping, nil
}

// ParseList splits a comma-separated value into trimmed, non-empty tokens. Order and duplicates are kept.
func ParseList(raw string) []string {
	tokens := make([]string, 0)
	for _, token := range strings.Split(raw, listSeparatorConstant) {
		trimmedToken := strings.TrimSpace(token)
		if len(trimmedToken) == 0 {
			continue
		}
		tokens = append(tokens, trimmedToken)
	}
	return tokens
}
