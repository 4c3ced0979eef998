package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-git/go-git/v5"
	mapstructure "github.com/go-viper/mapstructure/v2"

	"github.com/temirov/mixrepos/internal/execshell"
	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	gitStatusSubcommandConstant          = "status"
	gitStatusPorcelainFlagConstant       = "--porcelain"
	gitOptionalLocksEnvironmentConstant  = "GIT_OPTIONAL_LOCKS"
	gitOptionalLocksDisabledConstant     = "0"
	executorNotConfiguredMessageConstant = "git executor not configured"
	repositoryOpenErrorTemplateConstant  = "unable to open repository %s: %w"
	worktreeAccessErrorTemplateConstant  = "unable to access worktree of %s: %w"
	worktreeStatusErrorTemplateConstant  = "unable to read worktree status of %s: %w"
	unsupportedBackendErrorTemplate      = "unsupported status backend: %s"
	statusBackendGitStringConstant       = "git"
	statusBackendGoGitStringConstant     = "go-git"
)

// ErrGitExecutorNotConfigured indicates a ShellStatusChecker was built without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// StatusBackend selects how working-tree status is obtained.
type StatusBackend string

// Supported status backends.
const (
	StatusBackendGit   StatusBackend = StatusBackend(statusBackendGitStringConstant)
	StatusBackendGoGit StatusBackend = StatusBackend(statusBackendGoGitStringConstant)
)

// ParseStatusBackend normalizes a configured backend name. Empty values select the git executable.
func ParseStatusBackend(raw string) (StatusBackend, error) {
	switch StatusBackend(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StatusBackendGit:
		return StatusBackendGit, nil
	case StatusBackendGoGit:
		return StatusBackendGoGit, nil
	default:
		return "", fmt.Errorf(unsupportedBackendErrorTemplate, raw)
	}
}

// ShellStatusChecker runs `git status --porcelain` in the repository.
type ShellStatusChecker struct {
	executor shared.GitExecutor
}

// NewShellStatusChecker constructs a checker backed by the provided executor.
func NewShellStatusChecker(executor shared.GitExecutor) (*ShellStatusChecker, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &ShellStatusChecker{executor: executor}, nil
}

// HasUncommittedChanges reports true when porcelain output is non-empty.
func (checker *ShellStatusChecker) HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := checker.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: repositoryPath,
		// Read-only query; do not refresh the index lock file.
		EnvironmentVariables: map[string]string{gitOptionalLocksEnvironmentConstant: gitOptionalLocksDisabledConstant},
	})
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

// GoGitStatusChecker inspects the worktree in-process without a git executable.
type GoGitStatusChecker struct{}

// NewGoGitStatusChecker constructs a go-git backed checker.
func NewGoGitStatusChecker() *GoGitStatusChecker {
	return &GoGitStatusChecker{}
}

// worktreeStatusOutcome carries a finished status scan back to the waiting caller.
type worktreeStatusOutcome struct {
	dirty bool
	err   error
}

// HasUncommittedChanges reports true when any tracked or untracked path differs from HEAD.
// The scan runs in its own goroutine; when the context ends first the scan's result is discarded.
func (checker *GoGitStatusChecker) HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return false, contextError
	}

	outcomes := make(chan worktreeStatusOutcome, 1)
	go func() {
		dirty, statusError := readWorktreeStatus(repositoryPath)
		outcomes <- worktreeStatusOutcome{dirty: dirty, err: statusError}
	}()

	select {
	case outcome := <-outcomes:
		return outcome.dirty, outcome.err
	case <-executionContext.Done():
		return false, executionContext.Err()
	}
}

func readWorktreeStatus(repositoryPath string) (bool, error) {
	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		return false, fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, openError)
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return false, fmt.Errorf(worktreeAccessErrorTemplateConstant, repositoryPath, worktreeError)
	}

	worktreeStatus, statusError := worktree.Status()
	if statusError != nil {
		return false, fmt.Errorf(worktreeStatusErrorTemplateConstant, repositoryPath, statusError)
	}

	return !worktreeStatus.IsClean(), nil
}

// StatusBackendDecodeHook converts configured strings into a validated StatusBackend while decoding configuration.
func StatusBackendDecodeHook() mapstructure.DecodeHookFuncType {
	statusBackendType := reflect.TypeOf(StatusBackend(""))
	return func(sourceType reflect.Type, targetType reflect.Type, data any) (any, error) {
		if targetType != statusBackendType || sourceType.Kind() != reflect.String {
			return data, nil
		}
		return ParseStatusBackend(reflect.ValueOf(data).String())
	}
}
