package scan_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/repolist"
	"github.com/temirov/mixrepos/internal/scan"
)

func buildScanCommand(testInstance *testing.T, parentDirectory string, outputDirectory string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	testInstance.Helper()

	builder := scan.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() scan.CommandConfiguration {
			return scan.CommandConfiguration{
				Scan: scan.Configuration{ParentDirectory: parentDirectory, DesignatedName: "DSPex"},
				Files: repolist.FilesConfiguration{
					Repositories: filepath.Join(outputDirectory, "repos.json"),
					Excluded:     filepath.Join(outputDirectory, "repos_exclude.json"),
				},
			}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(errorBuffer)
	return command, outputBuffer, errorBuffer
}

func TestScanCommandWritesLists(testInstance *testing.T) {
	parentDirectory := testInstance.TempDir()
	repositoryPath := createElixirRepository(testInstance, parentDirectory, "ecto_app")
	outputDirectory := testInstance.TempDir()

	command, outputBuffer, errorBuffer := buildScanCommand(testInstance, parentDirectory, outputDirectory)
	require.NoError(testInstance, command.RunE(command, []string{}))

	require.Contains(testInstance, outputBuffer.String(), "=== Scanning for Elixir repos ===")
	require.Contains(testInstance, outputBuffer.String(), "Found 1 Elixir git repositories")
	require.Empty(testInstance, errorBuffer.String())

	repositories, loadError := repolist.NewStore(nil).Load(filepath.Join(outputDirectory, "repos.json"))
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{repositoryPath}, repositories)
}

func TestScanCommandReportsUnreadableParent(testInstance *testing.T) {
	outputDirectory := testInstance.TempDir()
	missingParent := filepath.Join(outputDirectory, "missing")

	command, _, errorBuffer := buildScanCommand(testInstance, missingParent, outputDirectory)
	require.NoError(testInstance, command.RunE(command, []string{}))
	require.Contains(testInstance, errorBuffer.String(), "Error running scan:")
	require.Contains(testInstance, errorBuffer.String(), missingParent)
}

func TestScanCommandRejectsArguments(testInstance *testing.T) {
	command, _, _ := buildScanCommand(testInstance, testInstance.TempDir(), testInstance.TempDir())
	require.Error(testInstance, command.Args(command, []string{"extra"}))
}
