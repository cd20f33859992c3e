package pullrequest

import (
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"

	pathutils "github.com/temirov/ghpr/internal/utils/path"
)

// MaximumFileSizeBytes bounds the size of a single published file.
const MaximumFileSizeBytes int64 = 100 * 1024 * 1024

const (
	lossyDecodingMessageConstant = "file is not valid UTF-8; invalid bytes replaced"
	localPathLogFieldConstant    = "local_path"
	resolvedPathLogFieldConstant = "resolved_path"
)

// LocalFile is a validated local source file.
type LocalFile struct {
	RequestedPath string
	ResolvedPath  string
	Size          int64
}

// LocalFileReader validates and reads local source files.
type LocalFileReader struct {
	workingDirectory string
	homeExpander     *pathutils.HomeExpander
	logger           *zap.Logger
}

// NewLocalFileReader resolves relative paths against workingDirectory; an empty value uses the process working directory.
func NewLocalFileReader(workingDirectory string, homeExpander *pathutils.HomeExpander, logger *zap.Logger) *LocalFileReader {
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalFileReader{workingDirectory: workingDirectory, homeExpander: homeExpander, logger: logger}
}

// Validate checks that path names an existing regular file no larger than MaximumFileSizeBytes.
func (reader *LocalFileReader) Validate(path string) (LocalFile, error) {
	resolvedPath := reader.homeExpander.Resolve(path, reader.workingDirectory)

	fileInfo, statError := os.Stat(resolvedPath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return LocalFile{}, LocalFileError{Path: path, Kind: LocalFileNotFound, Cause: statError}
		}
		return LocalFile{}, LocalFileError{Path: path, Cause: statError}
	}
	if !fileInfo.Mode().IsRegular() {
		return LocalFile{}, LocalFileError{Path: path, Kind: LocalFileNotAFile}
	}
	if fileInfo.Size() > MaximumFileSizeBytes {
		return LocalFile{}, LocalFileError{Path: path, Kind: LocalFileTooLarge, Size: fileInfo.Size()}
	}

	return LocalFile{RequestedPath: path, ResolvedPath: resolvedPath, Size: fileInfo.Size()}, nil
}

// ReadContent returns the file as UTF-8 text. Invalid byte sequences are replaced with U+FFFD, so binary
// files are not preserved.
func (reader *LocalFileReader) ReadContent(file LocalFile) (string, error) {
	contents, readError := os.ReadFile(file.ResolvedPath)
	if readError != nil {
		return "", LocalFileError{Path: file.RequestedPath, Kind: LocalFileUnreadable, Cause: readError}
	}
	if utf8.Valid(contents) {
		return string(contents), nil
	}

	decodedContents, decodeError := unicode.UTF8.NewDecoder().Bytes(contents)
	if decodeError != nil {
		return "", LocalFileError{Path: file.RequestedPath, Kind: LocalFileUnreadable, Cause: decodeError}
	}
	reader.logger.Warn(
		lossyDecodingMessageConstant,
		zap.String(localPathLogFieldConstant, file.RequestedPath),
		zap.String(resolvedPathLogFieldConstant, file.ResolvedPath),
	)
	return string(decodedContents), nil
}
