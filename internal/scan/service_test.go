package scan_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/mixrepos/internal/repolist"
	"github.com/temirov/mixrepos/internal/repos/discovery"
	"github.com/temirov/mixrepos/internal/repos/shared"
	"github.com/temirov/mixrepos/internal/scan"
	pathutils "github.com/temirov/mixrepos/internal/utils/path"
)

type stubDiscoverer struct {
	repositories     []string
	discoveryError   error
	requestedParents []string
}

func (discoverer *stubDiscoverer) DiscoverRepositories(parentDirectory string) ([]string, error) {
	discoverer.requestedParents = append(discoverer.requestedParents, parentDirectory)
	return discoverer.repositories, discoverer.discoveryError
}

func createElixirRepository(testInstance *testing.T, parentDirectory string, name string) string {
	testInstance.Helper()
	repositoryPath := filepath.Join(parentDirectory, name)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, ".git"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, "mix.exs"), []byte("defmodule M do\nend\n"), 0o644))
	return repositoryPath
}

func TestServiceScanWritesFullAndExcludeLists(testInstance *testing.T) {
	parentDirectory := testInstance.TempDir()
	alphaPath := createElixirRepository(testInstance, parentDirectory, "Alpha")
	dspexPath := createElixirRepository(testInstance, parentDirectory, "DSPex")
	zetaPath := createElixirRepository(testInstance, parentDirectory, "zeta")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(parentDirectory, "not_a_repo"), 0o755))

	outputDirectory := testInstance.TempDir()
	repositoriesPath := filepath.Join(outputDirectory, "repos.json")
	excludedPath := filepath.Join(outputDirectory, "repos_exclude.json")

	observerCore, observerLogs := observer.New(zap.InfoLevel)
	outputBuffer := &bytes.Buffer{}
	store := repolist.NewStore(nil)
	service, creationError := scan.NewService(scan.Dependencies{
		Discoverer: discovery.NewElixirRepositoryDiscoverer(nil),
		Store:      store,
		Reporter:   shared.NewWriterReporter(outputBuffer),
		Logger:     zap.New(observerCore),
	})
	require.NoError(testInstance, creationError)

	result, scanError := service.Scan(context.Background(), scan.Options{
		ParentDirectory:  parentDirectory,
		RepositoriesPath: repositoriesPath,
		ExcludedPath:     excludedPath,
		DesignatedName:   "DSPex",
	})
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []string{alphaPath, dspexPath, zetaPath}, result.Repositories)
	require.Equal(testInstance, []string{alphaPath, zetaPath}, result.Excluded)

	persistedRepositories, loadError := store.Load(repositoriesPath)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, result.Repositories, persistedRepositories)

	persistedExcluded, loadExcludedError := store.Load(excludedPath)
	require.NoError(testInstance, loadExcludedError)
	require.Equal(testInstance, result.Excluded, persistedExcluded)

	require.Equal(
		testInstance,
		"Found 3 Elixir git repositories\nWritten to "+repositoriesPath+"\nCreated "+excludedPath+" with DSPex removed (2 repos)\n",
		outputBuffer.String(),
	)
	require.Len(testInstance, observerLogs.All(), 1)
}

func TestServiceScanResolvesRelativeParent(testInstance *testing.T) {
	discoverer := &stubDiscoverer{repositories: []string{}}
	resolver := pathutils.NewDirectoryResolverWithExpansion(func(path string) (string, error) {
		return filepath.Join(string(filepath.Separator), "home", "dev"), nil
	})
	outputDirectory := testInstance.TempDir()

	service, creationError := scan.NewService(scan.Dependencies{
		Discoverer:        discoverer,
		Store:             repolist.NewStore(nil),
		DirectoryResolver: resolver,
		Reporter:          shared.NewWriterReporter(&bytes.Buffer{}),
	})
	require.NoError(testInstance, creationError)

	_, scanError := service.Scan(context.Background(), scan.Options{
		ParentDirectory:  "~",
		RepositoriesPath: filepath.Join(outputDirectory, "repos.json"),
		ExcludedPath:     filepath.Join(outputDirectory, "repos_exclude.json"),
		DesignatedName:   "DSPex",
	})
	require.NoError(testInstance, scanError)
	require.Equal(testInstance, []string{filepath.Join(string(filepath.Separator), "home", "dev")}, discoverer.requestedParents)
}

func TestServiceScanFailsWithoutWritingWhenDiscoveryFails(testInstance *testing.T) {
	discoveryFailure := errors.New("permission denied")
	outputDirectory := testInstance.TempDir()
	repositoriesPath := filepath.Join(outputDirectory, "repos.json")

	service, creationError := scan.NewService(scan.Dependencies{
		Discoverer: &stubDiscoverer{discoveryError: discoveryFailure},
		Store:      repolist.NewStore(nil),
		Reporter:   shared.NewWriterReporter(&bytes.Buffer{}),
	})
	require.NoError(testInstance, creationError)

	_, scanError := service.Scan(context.Background(), scan.Options{
		ParentDirectory:  outputDirectory,
		RepositoriesPath: repositoriesPath,
		ExcludedPath:     filepath.Join(outputDirectory, "repos_exclude.json"),
	})
	require.ErrorIs(testInstance, scanError, discoveryFailure)
	_, statError := os.Stat(repositoriesPath)
	require.ErrorIs(testInstance, statError, os.ErrNotExist)
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	_, missingDiscoverer := scan.NewService(scan.Dependencies{Store: repolist.NewStore(nil)})
	require.ErrorIs(testInstance, missingDiscoverer, scan.ErrDiscovererNotConfigured)

	_, missingStore := scan.NewService(scan.Dependencies{Discoverer: &stubDiscoverer{}})
	require.ErrorIs(testInstance, missingStore, scan.ErrStoreNotConfigured)
}
