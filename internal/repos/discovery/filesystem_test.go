package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mixrepos/internal/repos/discovery"
)

const (
	gitMetadataDirectoryName       = ".git"
	mixProjectFileName             = "mix.exs"
	repositoryDirectoryPermissions = 0o755
	markerFilePermissions          = 0o644
)

type childDefinition struct {
	name         string
	gitDirectory bool
	gitFile      bool
	mixFile      bool
	nestedOnly   bool
}

func (definition childDefinition) materialize(testInstance *testing.T, parentDirectory string) string {
	testInstance.Helper()

	childPath := filepath.Join(parentDirectory, definition.name)
	markerRoot := childPath
	if definition.nestedOnly {
		markerRoot = filepath.Join(childPath, "nested")
	}
	require.NoError(testInstance, os.MkdirAll(markerRoot, repositoryDirectoryPermissions))

	if definition.gitDirectory {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(markerRoot, gitMetadataDirectoryName), repositoryDirectoryPermissions))
	}
	if definition.gitFile {
		require.NoError(testInstance, os.WriteFile(filepath.Join(markerRoot, gitMetadataDirectoryName), []byte("gitdir: ../.git/worktrees/x\n"), markerFilePermissions))
	}
	if definition.mixFile {
		require.NoError(testInstance, os.WriteFile(filepath.Join(markerRoot, mixProjectFileName), []byte("defmodule X.MixProject do\nend\n"), markerFilePermissions))
	}
	return childPath
}

func TestElixirRepositoryDiscovererRequiresBothMarkers(testInstance *testing.T) {
	parentDirectory := testInstance.TempDir()

	definitions := []childDefinition{
		{name: "phoenix_app", gitDirectory: true, mixFile: true},
		{name: "Broadway", gitDirectory: true, mixFile: true},
		{name: "worktree_checkout", gitFile: true, mixFile: true},
		{name: "plain_git", gitDirectory: true},
		{name: "unversioned_mix", mixFile: true},
		{name: "empty"},
		{name: "nested_project", gitDirectory: true, mixFile: true, nestedOnly: true},
	}

	expected := []string{}
	for _, definition := range definitions {
		childPath := definition.materialize(testInstance, parentDirectory)
		if (definition.gitDirectory || definition.gitFile) && definition.mixFile && !definition.nestedOnly {
			expected = append(expected, childPath)
		}
	}
	require.NoError(testInstance, os.WriteFile(filepath.Join(parentDirectory, "notes.txt"), []byte("x"), markerFilePermissions))

	discoverer := discovery.NewElixirRepositoryDiscoverer(nil)
	repositories, discoveryError := discoverer.DiscoverRepositories(parentDirectory)
	require.NoError(testInstance, discoveryError)

	require.Equal(testInstance, []string{
		filepath.Join(parentDirectory, "Broadway"),
		filepath.Join(parentDirectory, "phoenix_app"),
		filepath.Join(parentDirectory, "worktree_checkout"),
	}, repositories)
	require.ElementsMatch(testInstance, expected, repositories)
}

func TestMarkerRepositoryDiscovererFollowsSymlinkedDirectories(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	parentDirectory := filepath.Join(workspaceDirectory, "parent")
	require.NoError(testInstance, os.MkdirAll(parentDirectory, repositoryDirectoryPermissions))

	targetPath := childDefinition{name: "elsewhere", gitDirectory: true, mixFile: true}.materialize(testInstance, workspaceDirectory)
	linkPath := filepath.Join(parentDirectory, "linked")
	if symlinkError := os.Symlink(targetPath, linkPath); symlinkError != nil {
		testInstance.Skipf("symlinks unavailable: %v", symlinkError)
	}

	repositories, discoveryError := discovery.NewElixirRepositoryDiscoverer(nil).DiscoverRepositories(parentDirectory)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{linkPath}, repositories)
}

func TestMarkerRepositoryDiscovererEmptyParent(testInstance *testing.T) {
	repositories, discoveryError := discovery.NewElixirRepositoryDiscoverer(nil).DiscoverRepositories(testInstance.TempDir())
	require.NoError(testInstance, discoveryError)
	require.NotNil(testInstance, repositories)
	require.Empty(testInstance, repositories)
}

func TestMarkerRepositoryDiscovererFailsForMissingParent(testInstance *testing.T) {
	missingParent := filepath.Join(testInstance.TempDir(), "missing")
	_, discoveryError := discovery.NewElixirRepositoryDiscoverer(nil).DiscoverRepositories(missingParent)
	require.Error(testInstance, discoveryError)
	require.ErrorIs(testInstance, discoveryError, os.ErrNotExist)
}

func TestMarkerRepositoryDiscovererCustomMarkers(testInstance *testing.T) {
	parentDirectory := testInstance.TempDir()
	childPath := childDefinition{name: "service", gitDirectory: true}.materialize(testInstance, parentDirectory)
	require.NoError(testInstance, os.WriteFile(filepath.Join(childPath, "go.mod"), []byte("module x\n"), markerFilePermissions))
	childDefinition{name: "elixir", gitDirectory: true, mixFile: true}.materialize(testInstance, parentDirectory)

	discoverer := discovery.NewMarkerRepositoryDiscoverer(nil, gitMetadataDirectoryName, "go.mod")
	repositories, discoveryError := discoverer.DiscoverRepositories(parentDirectory)
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{childPath}, repositories)
}
