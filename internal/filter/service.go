package filter

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/repolist"
	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	storeMissingMessageConstant       = "repository list store not configured"
	listMissingTemplateConstant       = "Error: %s not found. Run scan first.\n"
	listUnreadableTemplateConstant    = "Error: %v\n"
	filteredCountTemplateConstant     = "Filtered repos: %d\n"
	filteredEntryTemplateConstant     = "  - %s\n"
	listSkippedLogMessageConstant     = "repository list unavailable, using empty list"
	filterCompletedLogMessageConstant = "repository filter completed"
	logFieldPathConstant              = "path"
	logFieldRepositoryCountConstant   = "repository_count"
	logFieldExcludedCountConstant     = "excluded_count"
	logFieldFilteredCountConstant     = "filtered_count"
)

// ErrStoreNotConfigured indicates the list store dependency was missing.
var ErrStoreNotConfigured = errors.New(storeMissingMessageConstant)

// Dependencies enumerates collaborators required for filtering.
type Dependencies struct {
	Store    *repolist.Store
	Reporter shared.Reporter
	Logger   *zap.Logger
}

// Options names the lists involved in a filter run.
type Options struct {
	RepositoriesPath string
	ExcludedPath     string
	FilteredPath     string
}

// Service computes and persists the filtered repository list.
type Service struct {
	store    *repolist.Store
	reporter shared.Reporter
	logger   *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Store == nil {
		return nil, ErrStoreNotConfigured
	}
	service := &Service{store: dependencies.Store, reporter: dependencies.Reporter, logger: dependencies.Logger}
	if service.reporter == nil {
		service.reporter = shared.NewWriterReporter(nil)
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	return service, nil
}

// Filter writes the entries of the full list that are absent from the exclude list, in full-list order.
// Missing or unreadable inputs are reported and treated as empty lists.
func (service *Service) Filter(executionContext context.Context, options Options) ([]string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	repositories := service.loadOrEmpty(options.RepositoriesPath)
	excluded := service.loadOrEmpty(options.ExcludedPath)
	filtered := repolist.Subtract(repositories, excluded)

	if saveError := service.store.Save(options.FilteredPath, filtered); saveError != nil {
		return nil, saveError
	}

	service.reporter.Printf(filteredCountTemplateConstant, len(filtered))
	for _, repository := range filtered {
		service.reporter.Printf(filteredEntryTemplateConstant, repository)
	}

	service.logger.Info(
		filterCompletedLogMessageConstant,
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
		zap.Int(logFieldExcludedCountConstant, len(excluded)),
		zap.Int(logFieldFilteredCountConstant, len(filtered)),
	)
	return filtered, nil
}

func (service *Service) loadOrEmpty(path string) []string {
	repositories, loadError := service.store.Load(path)
	if loadError == nil {
		return repositories
	}

	if errors.Is(loadError, repolist.ErrListNotFound) {
		service.reporter.Printf(listMissingTemplateConstant, path)
	} else {
		service.reporter.Printf(listUnreadableTemplateConstant, loadError)
	}
	service.logger.Warn(listSkippedLogMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(loadError))
	return []string{}
}
