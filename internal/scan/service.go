package scan

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/repolist"
	"github.com/temirov/mixrepos/internal/repos/shared"
	pathutils "github.com/temirov/mixrepos/internal/utils/path"
)

const (
	discovererMissingMessageConstant      = "repository discoverer not configured"
	storeMissingMessageConstant           = "repository list store not configured"
	parentResolutionErrorTemplateConstant = "unable to resolve parent directory: %w"
	discoveryErrorTemplateConstant        = "unable to scan %s: %w"
	foundRepositoriesTemplateConstant     = "Found %d Elixir git repositories\n"
	writtenToTemplateConstant             = "Written to %s\n"
	excludeListCreatedTemplateConstant    = "Created %s with %s removed (%d repos)\n"
	scanCompletedLogMessageConstant       = "repository scan completed"
	logFieldParentDirectoryConstant       = "parent_directory"
	logFieldRepositoryCountConstant       = "repository_count"
	logFieldExcludedCountConstant         = "excluded_list_count"
	logFieldDesignatedNameConstant        = "designated_name"
)

// ErrDiscovererNotConfigured indicates the repository discoverer dependency was missing.
var ErrDiscovererNotConfigured = errors.New(discovererMissingMessageConstant)

// ErrStoreNotConfigured indicates the list store dependency was missing.
var ErrStoreNotConfigured = errors.New(storeMissingMessageConstant)

// Dependencies enumerates collaborators required for scanning.
type Dependencies struct {
	Discoverer        shared.RepositoryDiscoverer
	Store             *repolist.Store
	DirectoryResolver *pathutils.DirectoryResolver
	Reporter          shared.Reporter
	Logger            *zap.Logger
}

// Options configures a single scan.
type Options struct {
	ParentDirectory  string
	RepositoriesPath string
	ExcludedPath     string
	DesignatedName   string
}

// Result captures the lists written by a scan.
type Result struct {
	ParentDirectory string
	Repositories    []string
	Excluded        []string
}

// Service scans for repositories and writes the full and exclude lists.
type Service struct {
	discoverer        shared.RepositoryDiscoverer
	store             *repolist.Store
	directoryResolver *pathutils.DirectoryResolver
	reporter          shared.Reporter
	logger            *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
	if dependencies.Store == nil {
		return nil, ErrStoreNotConfigured
	}

	service := &Service{
		discoverer:        dependencies.Discoverer,
		store:             dependencies.Store,
		directoryResolver: dependencies.DirectoryResolver,
		reporter:          dependencies.Reporter,
		logger:            dependencies.Logger,
	}
	if service.directoryResolver == nil {
		service.directoryResolver = pathutils.NewDirectoryResolver()
	}
	if service.reporter == nil {
		service.reporter = shared.NewWriterReporter(nil)
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	return service, nil
}

// Scan discovers repositories under the parent directory, writes the full list, then writes the
// list with every entry named after the designated name removed. Both files are overwritten.
func (service *Service) Scan(executionContext context.Context, options Options) (Result, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return Result{}, contextError
	}

	parentDirectory, resolveError := service.directoryResolver.Resolve(options.ParentDirectory)
	if resolveError != nil {
		return Result{}, fmt.Errorf(parentResolutionErrorTemplateConstant, resolveError)
	}

	repositories, discoveryError := service.discoverer.DiscoverRepositories(parentDirectory)
	if discoveryError != nil {
		return Result{}, fmt.Errorf(discoveryErrorTemplateConstant, parentDirectory, discoveryError)
	}

	if saveError := service.store.Save(options.RepositoriesPath, repositories); saveError != nil {
		return Result{}, saveError
	}
	service.reporter.Printf(foundRepositoriesTemplateConstant, len(repositories))
	service.reporter.Printf(writtenToTemplateConstant, options.RepositoriesPath)

	excluded := repolist.ExcludeByName(repositories, options.DesignatedName)
	if saveError := service.store.Save(options.ExcludedPath, excluded); saveError != nil {
		return Result{}, saveError
	}
	service.reporter.Printf(excludeListCreatedTemplateConstant, options.ExcludedPath, options.DesignatedName, len(excluded))

	service.logger.Info(
		scanCompletedLogMessageConstant,
		zap.String(logFieldParentDirectoryConstant, parentDirectory),
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
		zap.Int(logFieldExcludedCountConstant, len(excluded)),
		zap.String(logFieldDesignatedNameConstant, options.DesignatedName),
	)

	return Result{ParentDirectory: parentDirectory, Repositories: repositories, Excluded: excluded}, nil
}
