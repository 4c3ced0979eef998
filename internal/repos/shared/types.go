package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/mixrepos/internal/execshell"
)

const (
	// GitMetadataMarkerConstant identifies the version-control marker inside a repository directory.
	GitMetadataMarkerConstant = ".git"
	// MixProjectMarkerConstant identifies the Elixir project marker inside a repository directory.
	MixProjectMarkerConstant = "mix.exs"
)

// FileSystem exposes filesystem operations required by repository services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryDiscoverer lists repositories that are direct children of a parent directory.
type RepositoryDiscoverer interface {
	DiscoverRepositories(parentDirectory string) ([]string, error)
}

// WorktreeStatusChecker reports whether a repository has pending working-tree changes.
type WorktreeStatusChecker interface {
	HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error)
}
