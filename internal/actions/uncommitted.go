package actions

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	// UncommittedActionName identifies the uncommitted-change check.
	UncommittedActionName = "uncommitted"

	statusCheckerMissingMessageConstant    = "worktree status checker not configured"
	dirtyRepositoryTemplateConstant        = "✗ %s - has uncommitted changes\n"
	cleanRepositoryTemplateConstant        = "✓ %s - clean\n"
	checkFailureTemplateConstant           = "Error checking %s: %v\n"
	blankLineConstant                      = "\n"
	dirtySummaryHeaderTemplateConstant     = "Repos with uncommitted work (%d):\n"
	summaryEntryTemplateConstant           = "  - %s\n"
	allCleanMessageConstant                = "All repos are clean!\n"
	statusCheckFailedLogMessageConstant    = "worktree status check failed, treating repository as clean"
	uncommittedCompletedLogMessageConstant = "uncommitted check completed"
	logFieldRepositoryConstant             = "repository"
	logFieldTimeoutConstant                = "timeout"
	logFieldCheckedCountConstant           = "checked_count"
	logFieldDirtyCountConstant             = "dirty_count"
)

// ErrStatusCheckerNotConfigured indicates the uncommitted action was built without a status checker.
var ErrStatusCheckerNotConfigured = errors.New(statusCheckerMissingMessageConstant)

// UncommittedAction reports repositories with pending working-tree changes.
type UncommittedAction struct {
	statusChecker shared.WorktreeStatusChecker
	timeout       time.Duration
	reporter      shared.Reporter
	logger        *zap.Logger
}

// NewUncommittedAction constructs the action. Non-positive timeouts fall back to ten seconds.
func NewUncommittedAction(statusChecker shared.WorktreeStatusChecker, timeout time.Duration, reporter shared.Reporter, logger *zap.Logger) (*UncommittedAction, error) {
	if statusChecker == nil {
		return nil, ErrStatusCheckerNotConfigured
	}
	if timeout <= 0 {
		timeout = defaultStatusTimeout
	}
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UncommittedAction{statusChecker: statusChecker, timeout: timeout, reporter: reporter, logger: logger}, nil
}

func newUncommittedActionFromDependencies(dependencies Dependencies) (Action, error) {
	return NewUncommittedAction(
		dependencies.StatusChecker,
		dependencies.Configuration.Uncommitted.Timeout,
		dependencies.Reporter,
		dependencies.Logger,
	)
}

// Name returns the registered action name.
func (action *UncommittedAction) Name() string {
	return UncommittedActionName
}

// Run checks every repository in order and prints a per-repository line followed by a summary.
// A repository whose check fails is reported and counted as clean.
func (action *UncommittedAction) Run(executionContext context.Context, repositories []string) error {
	dirtyRepositories := []string{}

	for _, repository := range repositories {
		repositoryName := filepath.Base(repository)
		if action.hasUncommittedChanges(executionContext, repository) {
			dirtyRepositories = append(dirtyRepositories, repository)
			action.reporter.Printf(dirtyRepositoryTemplateConstant, repositoryName)
			continue
		}
		action.reporter.Printf(cleanRepositoryTemplateConstant, repositoryName)
	}

	action.reporter.Printf(blankLineConstant)
	if len(dirtyRepositories) > 0 {
		action.reporter.Printf(dirtySummaryHeaderTemplateConstant, len(dirtyRepositories))
		for _, repository := range dirtyRepositories {
			action.reporter.Printf(summaryEntryTemplateConstant, repository)
		}
	} else {
		action.reporter.Printf(allCleanMessageConstant)
	}

	action.logger.Info(
		uncommittedCompletedLogMessageConstant,
		zap.Int(logFieldCheckedCountConstant, len(repositories)),
		zap.Int(logFieldDirtyCountConstant, len(dirtyRepositories)),
	)
	return nil
}

func (action *UncommittedAction) hasUncommittedChanges(executionContext context.Context, repository string) bool {
	checkContext, cancel := context.WithTimeout(executionContext, action.timeout)
	defer cancel()

	dirty, checkError := action.statusChecker.HasUncommittedChanges(checkContext, repository)
	if checkError != nil {
		action.reporter.Printf(checkFailureTemplateConstant, repository, checkError)
		action.logger.Warn(
			statusCheckFailedLogMessageConstant,
			zap.String(logFieldRepositoryConstant, repository),
			zap.Duration(logFieldTimeoutConstant, action.timeout),
			zap.Error(checkError),
		)
		return false
	}
	return dirty
}
