package filter

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/repolist"
	"github.com/temirov/mixrepos/internal/repos/dependencies"
	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	commandUseConstant              = "filter"
	commandShortDescriptionConstant = "Filter repos (main - excludes)"
	commandLongDescriptionConstant  = "filter writes the repositories present in the full list but absent from the exclude list to the filtered list."
	bannerConstant                  = "=== Filtering repos ===\n"
	stepFailureTemplateConstant     = "Error running filter: %v\n"
	filterFailedLogMessageConstant  = "repository filter failed"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the filter command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() repolist.FilesConfiguration
	FileSystem            shared.FileSystem
}

// Build constructs the filter command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	fmt.Fprint(command.OutOrStdout(), bannerConstant)
	builder.RunStep(command)
	return nil
}

// RunStep filters the lists, reporting failures on the command's error stream, and reports whether it succeeded.
func (builder *CommandBuilder) RunStep(command *cobra.Command) bool {
	files := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	service, serviceError := NewService(Dependencies{
		Store:    repolist.NewStore(dependencies.ResolveFileSystem(builder.FileSystem)),
		Reporter: shared.NewWriterReporter(command.OutOrStdout()),
		Logger:   logger,
	})
	if serviceError == nil {
		_, serviceError = service.Filter(commandContext(command), Options{
			RepositoriesPath: files.Repositories,
			ExcludedPath:     files.Excluded,
			FilteredPath:     files.Filtered,
		})
	}
	if serviceError != nil {
		logger.Error(filterFailedLogMessageConstant, zap.Error(serviceError))
		fmt.Fprintf(command.ErrOrStderr(), stepFailureTemplateConstant, serviceError)
		return false
	}
	return true
}

func (builder *CommandBuilder) resolveConfiguration() repolist.FilesConfiguration {
	if builder.ConfigurationProvider == nil {
		return repolist.DefaultFilesConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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
