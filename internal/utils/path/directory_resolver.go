package pathutils

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const (
	emptyDirectoryMessageConstant          = "directory path must not be empty"
	homeExpansionErrorTemplateConstant     = "unable to expand %s: %w"
	absolutePathResolutionTemplateConstant = "unable to resolve absolute path for %s: %w"
)

// ErrEmptyDirectory indicates a blank directory path was supplied.
var ErrEmptyDirectory = errors.New(emptyDirectoryMessageConstant)

// HomeExpansionFunc expands a leading tilde to the user's home directory.
type HomeExpansionFunc func(path string) (string, error)

// DirectoryResolver turns user supplied directory references such as "..", "~/src" or relative paths into cleaned absolute paths.
type DirectoryResolver struct {
	expandHome HomeExpansionFunc
}

// NewDirectoryResolver constructs a resolver backed by go-homedir.
func NewDirectoryResolver() *DirectoryResolver {
	return NewDirectoryResolverWithExpansion(homedir.Expand)
}

// NewDirectoryResolverWithExpansion constructs a resolver with a custom home expansion function.
func NewDirectoryResolverWithExpansion(expansion HomeExpansionFunc) *DirectoryResolver {
	if expansion == nil {
		expansion = homedir.Expand
	}
	return &DirectoryResolver{expandHome: expansion}
}

// Resolve expands and absolutizes the supplied directory reference.
func (resolver *DirectoryResolver) Resolve(directoryPath string) (string, error) {
	trimmedPath := strings.TrimSpace(directoryPath)
	if len(trimmedPath) == 0 {
		return "", ErrEmptyDirectory
	}

	expansion := homedir.Expand
	if resolver != nil && resolver.expandHome != nil {
		expansion = resolver.expandHome
	}

	expandedPath, expansionError := expansion(trimmedPath)
	if expansionError != nil {
		return "", fmt.Errorf(homeExpansionErrorTemplateConstant, trimmedPath, expansionError)
	}

	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathResolutionTemplateConstant, expandedPath, absoluteError)
	}

	return filepath.Clean(absolutePath), nil
}
