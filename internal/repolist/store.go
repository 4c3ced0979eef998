package repolist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/mixrepos/internal/repos/filesystem"
	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	jsonIndentConstant                = "  "
	yamlIndentSpacesConstant          = 2
	listFilePermissionsConstant       = fs.FileMode(0o644)
	yamlExtensionConstant             = ".yaml"
	ymlExtensionConstant              = ".yml"
	listReadErrorTemplateConstant     = "unable to read repository list %s: %w"
	listDecodeErrorTemplateConstant   = "unable to parse repository list %s: %w"
	listEncodeErrorTemplateConstant   = "unable to encode repository list %s: %w"
	listWriteErrorTemplateConstant    = "unable to write repository list %s: %w"
	listNotFoundErrorTemplateConstant = "%s not found"
)

// ErrListNotFound reports that a list file does not exist.
var ErrListNotFound = errors.New("repository list not found")

// NotFoundError names the missing list file and matches ErrListNotFound.
type NotFoundError struct {
	Path string
}

// Error describes the missing file.
func (notFound NotFoundError) Error() string {
	return fmt.Sprintf(listNotFoundErrorTemplateConstant, notFound.Path)
}

// Is reports ErrListNotFound equivalence.
func (notFound NotFoundError) Is(target error) bool {
	return target == ErrListNotFound
}

// Store reads and writes list files.
type Store struct {
	fileSystem shared.FileSystem
}

// NewStore constructs a Store. A nil filesystem uses the operating system.
func NewStore(fileSystem shared.FileSystem) *Store {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &Store{fileSystem: fileSystem}
}

// Load reads the list at path. A missing file yields a NotFoundError.
func (store *Store) Load(path string) ([]string, error) {
	content, readError := store.fileSystem.ReadFile(path)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, NotFoundError{Path: path}
		}
		return nil, fmt.Errorf(listReadErrorTemplateConstant, path, readError)
	}

	var list List
	var decodeError error
	if isYAMLPath(path) {
		decodeError = yaml.Unmarshal(content, &list)
	} else {
		decodeError = json.Unmarshal(content, &list)
	}
	if decodeError != nil {
		return nil, fmt.Errorf(listDecodeErrorTemplateConstant, path, decodeError)
	}

	if list.Repositories == nil {
		return []string{}, nil
	}
	return list.Repositories, nil
}

// Save overwrites path with the provided repositories.
func (store *Store) Save(path string, repositories []string) error {
	list := List{Repositories: repositories}
	if list.Repositories == nil {
		list.Repositories = []string{}
	}

	content, encodeError := encodeList(path, list)
	if encodeError != nil {
		return fmt.Errorf(listEncodeErrorTemplateConstant, path, encodeError)
	}

	if writeError := store.fileSystem.WriteFile(path, content, listFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(listWriteErrorTemplateConstant, path, writeError)
	}
	return nil
}

func encodeList(path string, list List) ([]byte, error) {
	if !isYAMLPath(path) {
		return json.MarshalIndent(list, "", jsonIndentConstant)
	}

	var builder strings.Builder
	encoder := yaml.NewEncoder(&builder)
	encoder.SetIndent(yamlIndentSpacesConstant)
	if encodeError := encoder.Encode(list); encodeError != nil {
		return nil, encodeError
	}
	if closeError := encoder.Close(); closeError != nil {
		return nil, closeError
	}
	return []byte(builder.String()), nil
}

func isYAMLPath(path string) bool {
	extension := strings.ToLower(filepath.Ext(path))
	return extension == yamlExtensionConstant || extension == ymlExtensionConstant
}
