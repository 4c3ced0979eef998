package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/gitrepo"
	"github.com/temirov/mixrepos/internal/repolist"
	"github.com/temirov/mixrepos/internal/repos/dependencies"
	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	unknownActionTemplateConstant    = "unknown action: %s"
	commandLongDescriptionTemplate   = "%s runs the %s action against every repository in the filtered list."
	bannerTemplateConstant           = "%s\n"
	filteredListMissingTemplate      = "Error: %s not found. Run setup first.\n"
	actionFailureTemplateConstant    = "Error running action: %v\n"
	actionFailedLogMessageConstant   = "action failed"
	actionStartedLogMessageConstant  = "running action"
	logFieldActionConstant           = "action"
	logFieldRepositoryCountConstant  = "repository_count"
	logFieldFilteredListPathConstant = "filtered_list"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandConfiguration combines action settings with the list file names.
type CommandConfiguration struct {
	Actions Configuration
	Files   repolist.FilesConfiguration
}

// CommandBuilder assembles the command for a single registered action.
type CommandBuilder struct {
	ActionName            string
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	StatusChecker         shared.WorktreeStatusChecker
	GitExecutor           shared.GitExecutor
	FileSystem            shared.FileSystem
}

// Build constructs the command for the configured action name.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	descriptor, registered := Lookup(builder.ActionName)
	if !registered {
		return nil, fmt.Errorf(unknownActionTemplateConstant, builder.ActionName)
	}

	command := &cobra.Command{
		Use:   descriptor.Name,
		Short: descriptor.ShortDescription,
		Long:  fmt.Sprintf(commandLongDescriptionTemplate, descriptor.Name, descriptor.Name),
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, descriptor)
		},
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, descriptor Descriptor) error {
	outputWriter := command.OutOrStdout()
	fmt.Fprintf(outputWriter, bannerTemplateConstant, descriptor.Banner)

	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	reporter := shared.NewWriterReporter(outputWriter)

	repositories, loadError := repolist.NewStore(dependencies.ResolveFileSystem(builder.FileSystem)).Load(configuration.Files.Filtered)
	if loadError != nil {
		if errors.Is(loadError, repolist.ErrListNotFound) {
			reporter.Printf(filteredListMissingTemplate, configuration.Files.Filtered)
			return nil
		}
		return builder.reportFailure(command, logger, descriptor, loadError)
	}

	action, actionError := builder.buildAction(descriptor, configuration.Actions, reporter, logger)
	if actionError != nil {
		return builder.reportFailure(command, logger, descriptor, actionError)
	}

	logger.Info(
		actionStartedLogMessageConstant,
		zap.String(logFieldActionConstant, action.Name()),
		zap.String(logFieldFilteredListPathConstant, configuration.Files.Filtered),
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
	)

	if runError := action.Run(commandContext(command), repositories); runError != nil {
		return builder.reportFailure(command, logger, descriptor, runError)
	}
	return nil
}

func (builder *CommandBuilder) buildAction(descriptor Descriptor, configuration Configuration, reporter shared.Reporter, logger *zap.Logger) (Action, error) {
	var statusChecker shared.WorktreeStatusChecker
	if descriptor.RequiresStatusChecker {
		backend, backendError := gitrepo.ParseStatusBackend(string(configuration.Uncommitted.Backend))
		if backendError != nil {
			return nil, backendError
		}

		resolvedChecker, checkerError := dependencies.ResolveWorktreeStatusChecker(builder.StatusChecker, backend, builder.GitExecutor, logger)
		if checkerError != nil {
			return nil, checkerError
		}
		statusChecker = resolvedChecker
	}

	return descriptor.Factory(Dependencies{
		StatusChecker: statusChecker,
		Reporter:      reporter,
		Logger:        logger,
		Configuration: configuration,
	})
}

func (builder *CommandBuilder) reportFailure(command *cobra.Command, logger *zap.Logger, descriptor Descriptor, failure error) error {
	logger.Error(actionFailedLogMessageConstant, zap.String(logFieldActionConstant, descriptor.Name), zap.Error(failure))
	fmt.Fprintf(command.ErrOrStderr(), actionFailureTemplateConstant, failure)
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{Actions: DefaultConfiguration(), Files: repolist.DefaultFilesConfiguration()}
	}
	configuration := builder.ConfigurationProvider()
	return CommandConfiguration{Actions: configuration.Actions.Sanitize(), Files: configuration.Files.Sanitize()}
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func commandContext(command *cobra.Command) context.Context {
	if executionContext := command.Context(); executionContext != nil {
		return executionContext
	}
	return context.Background()
}
