package scan

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
	commandUseConstant              = "scan"
	commandShortDescriptionConstant = "Scan for Elixir repos and create configs"
	commandLongDescriptionConstant  = "scan lists the directories next to the working directory that contain both .git and mix.exs, writes them to the repository list, and derives the exclude list."
	bannerConstant                  = "=== Scanning for Elixir repos ===\n"
	stepFailureTemplateConstant     = "Error running scan: %v\n"
	scanFailedLogMessageConstant    = "repository scan failed"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandConfiguration combines scan settings with the list file names.
type CommandConfiguration struct {
	Scan  Configuration
	Files repolist.FilesConfiguration
}

// CommandBuilder assembles the scan command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	Discoverer            shared.RepositoryDiscoverer
	FileSystem            shared.FileSystem
}

// Build constructs the scan command.
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

// RunStep performs a scan, reporting failures on the command's error stream, and reports whether it succeeded.
func (builder *CommandBuilder) RunStep(command *cobra.Command) bool {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)

	service, serviceError := NewService(Dependencies{
		Discoverer: dependencies.ResolveRepositoryDiscoverer(builder.Discoverer, fileSystem, configuration.Scan.Markers()),
		Store:      repolist.NewStore(fileSystem),
		Reporter:   shared.NewWriterReporter(command.OutOrStdout()),
		Logger:     logger,
	})
	if serviceError == nil {
		_, serviceError = service.Scan(commandContext(command), Options{
			ParentDirectory:  configuration.Scan.ParentDirectory,
			RepositoriesPath: configuration.Files.Repositories,
			ExcludedPath:     configuration.Files.Excluded,
			DesignatedName:   configuration.Scan.DesignatedName,
		})
	}
	if serviceError != nil {
		logger.Error(scanFailedLogMessageConstant, zap.Error(serviceError))
		fmt.Fprintf(command.ErrOrStderr(), stepFailureTemplateConstant, serviceError)
		return false
	}
	return true
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{Scan: DefaultConfiguration(), Files: repolist.DefaultFilesConfiguration()}
	}
	configuration := builder.ConfigurationProvider()
	return CommandConfiguration{Scan: configuration.Scan.Sanitize(), Files: configuration.Files.Sanitize()}
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
