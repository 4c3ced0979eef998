package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/execshell"
	"github.com/temirov/mixrepos/internal/gitrepo"
	"github.com/temirov/mixrepos/internal/repos/discovery"
	"github.com/temirov/mixrepos/internal/repos/filesystem"
	"github.com/temirov/mixrepos/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveRepositoryDiscoverer returns the provided discoverer or a marker-based default requiring every marker.
func ResolveRepositoryDiscoverer(existing shared.RepositoryDiscoverer, fileSystem shared.FileSystem, markers []string) shared.RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	if len(markers) == 0 {
		return discovery.NewElixirRepositoryDiscoverer(ResolveFileSystem(fileSystem))
	}
	return discovery.NewMarkerRepositoryDiscoverer(ResolveFileSystem(fileSystem), markers...)
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveWorktreeStatusChecker returns the provided checker or builds one for the requested backend.
func ResolveWorktreeStatusChecker(existing shared.WorktreeStatusChecker, backend gitrepo.StatusBackend, executor shared.GitExecutor, logger *zap.Logger) (shared.WorktreeStatusChecker, error) {
	if existing != nil {
		return existing, nil
	}

	if backend == gitrepo.StatusBackendGoGit {
		return gitrepo.NewGoGitStatusChecker(), nil
	}

	gitExecutor, executorError := ResolveGitExecutor(executor, logger)
	if executorError != nil {
		return nil, executorError
	}
	return gitrepo.NewShellStatusChecker(gitExecutor)
}
