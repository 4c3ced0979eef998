package discovery

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/temirov/mixrepos/internal/repos/filesystem"
	"github.com/temirov/mixrepos/internal/repos/shared"
)

const parentDirectoryReadErrorTemplateConstant = "unable to list %s: %w"

// MarkerRepositoryDiscoverer selects the immediate subdirectories of a parent directory that contain every configured marker.
type MarkerRepositoryDiscoverer struct {
	fileSystem shared.FileSystem
	markers    []string
}

// NewMarkerRepositoryDiscoverer constructs a discoverer requiring all markers. A nil filesystem uses the operating system.
func NewMarkerRepositoryDiscoverer(fileSystem shared.FileSystem, markers ...string) *MarkerRepositoryDiscoverer {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &MarkerRepositoryDiscoverer{
		fileSystem: fileSystem,
		markers:    append([]string{}, markers...),
	}
}

// NewElixirRepositoryDiscoverer requires both a .git entry and a mix.exs entry.
func NewElixirRepositoryDiscoverer(fileSystem shared.FileSystem) *MarkerRepositoryDiscoverer {
	return NewMarkerRepositoryDiscoverer(fileSystem, shared.GitMetadataMarkerConstant, shared.MixProjectMarkerConstant)
}

// DiscoverRepositories returns the sorted paths of matching children. Nested directories are not descended into.
func (discoverer *MarkerRepositoryDiscoverer) DiscoverRepositories(parentDirectory string) ([]string, error) {
	directoryEntries, readError := discoverer.fileSystem.ReadDir(parentDirectory)
	if readError != nil {
		return nil, fmt.Errorf(parentDirectoryReadErrorTemplateConstant, parentDirectory, readError)
	}

	repositories := []string{}
	for _, directoryEntry := range directoryEntries {
		candidatePath := filepath.Join(parentDirectory, directoryEntry.Name())

		// Stat follows symlinks to directories.
		candidateInfo, statError := discoverer.fileSystem.Stat(candidatePath)
		if statError != nil || !candidateInfo.IsDir() {
			continue
		}

		if discoverer.hasAllMarkers(candidatePath) {
			repositories = append(repositories, candidatePath)
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}

func (discoverer *MarkerRepositoryDiscoverer) hasAllMarkers(candidatePath string) bool {
	for _, marker := range discoverer.markers {
		if _, statError := discoverer.fileSystem.Stat(filepath.Join(candidatePath, marker)); statError != nil {
			return false
		}
	}
	return true
}
