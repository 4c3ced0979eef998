package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/mixrepos/internal/gitrepo"
	"github.com/temirov/mixrepos/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTMIXREPOS"
	testDesignatedNameKeyConstant                  = "scan.designated_name"
	testDesignatedNameEnvironmentVariableConstant  = "TESTMIXREPOS_SCAN_DESIGNATED_NAME"
	testDefaultDesignatedNameConstant              = "DSPex"
	testEmbeddedDesignatedNameConstant             = "Embedded"
	testFileDesignatedNameConstant                 = "FromFile"
	testEnvironmentDesignatedNameConstant          = "FromEnvironment"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "scan:\n  designated_name: %s\n"
	testUncommittedConfigTemplateConstant          = "actions:\n  uncommitted:\n    timeout: 3s\n    backend: %q\n"
	testBackendEnvironmentVariableConstant         = "TESTMIXREPOS_ACTIONS_UNCOMMITTED_BACKEND"
	testBackendKeyConstant                         = "actions.uncommitted.backend"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Scan    scanFixture    `mapstructure:"scan"`
	Actions actionsFixture `mapstructure:"actions"`
}

type scanFixture struct {
	DesignatedName string `mapstructure:"designated_name"`
}

type actionsFixture struct {
	Uncommitted uncommittedFixture `mapstructure:"uncommitted"`
}

type uncommittedFixture struct {
	Timeout time.Duration         `mapstructure:"timeout"`
	Backend gitrepo.StatusBackend `mapstructure:"backend"`
}

func TestConfigurationLoaderPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		embeddedDesignatedName string
		fileDesignatedName     string
		environmentName        string
		expectedDesignatedName string
	}{
		{
			name:                   "defaults_apply_without_sources",
			expectedDesignatedName: testDefaultDesignatedNameConstant,
		},
		{
			name:                   "embedded_configuration_overrides_defaults",
			embeddedDesignatedName: testEmbeddedDesignatedNameConstant,
			expectedDesignatedName: testEmbeddedDesignatedNameConstant,
		},
		{
			name:                   "file_overrides_embedded",
			embeddedDesignatedName: testEmbeddedDesignatedNameConstant,
			fileDesignatedName:     testFileDesignatedNameConstant,
			expectedDesignatedName: testFileDesignatedNameConstant,
		},
		{
			name:                   "environment_overrides_file",
			embeddedDesignatedName: testEmbeddedDesignatedNameConstant,
			fileDesignatedName:     testFileDesignatedNameConstant,
			environmentName:        testEnvironmentDesignatedNameConstant,
			expectedDesignatedName: testEnvironmentDesignatedNameConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileDesignatedName) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileDesignatedName)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentName) > 0 {
				testInstance.Setenv(testDesignatedNameEnvironmentVariableConstant, testCase.environmentName)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			if len(testCase.embeddedDesignatedName) > 0 {
				configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedDesignatedName)), testConfigurationTypeConstant)
			}

			defaultValues := map[string]any{
				testDesignatedNameKeyConstant: testDefaultDesignatedNameConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedDesignatedName, loadedConfiguration.Scan.DesignatedName)

			if len(configurationFilePath) > 0 {
				require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
		})
	}
}

func TestConfigurationLoaderAppliesStatusBackendHook(testInstance *testing.T) {
	testCases := []struct {
		name               string
		fileBackend        string
		environmentBackend string
		expectedBackend    gitrepo.StatusBackend
		expectedErrorText  string
	}{
		{name: "git_backend", fileBackend: "git", expectedBackend: gitrepo.StatusBackendGit},
		{name: "normalized_go_git_backend", fileBackend: " Go-Git ", expectedBackend: gitrepo.StatusBackendGoGit},
		{name: "blank_backend_selects_git", fileBackend: "", expectedBackend: gitrepo.StatusBackendGit},
		{name: "environment_backend_validated", fileBackend: "git", environmentBackend: "go-git", expectedBackend: gitrepo.StatusBackendGoGit},
		{name: "unsupported_backend_in_file", fileBackend: "svn", expectedErrorText: "unsupported status backend: svn"},
		{name: "unsupported_backend_in_environment", fileBackend: "git", environmentBackend: "hg", expectedErrorText: "unsupported status backend: hg"},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
			configurationContent := fmt.Sprintf(testUncommittedConfigTemplateConstant, testCase.fileBackend)
			require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			if len(testCase.environmentBackend) > 0 {
				testInstance.Setenv(testBackendEnvironmentVariableConstant, testCase.environmentBackend)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})
			configurationLoader.AddDecodeHooks(gitrepo.StatusBackendDecodeHook())

			loadedConfiguration := configurationFixture{}
			_, loadError := configurationLoader.LoadConfiguration("", map[string]any{testBackendKeyConstant: "git"}, &loadedConfiguration)
			if len(testCase.expectedErrorText) > 0 {
				require.Error(testInstance, loadError)
				require.Contains(testInstance, loadError.Error(), testCase.expectedErrorText)
				return
			}

			require.NoError(testInstance, loadError)
			require.Equal(testInstance, 3*time.Second, loadedConfiguration.Actions.Uncommitted.Timeout)
			require.Equal(testInstance, testCase.expectedBackend, loadedConfiguration.Actions.Uncommitted.Backend)
		})
	}
}

func TestConfigurationLoaderWithoutHooksKeepsRawBackend(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(fmt.Sprintf(testUncommittedConfigTemplateConstant, "svn")), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", map[string]any{}, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, gitrepo.StatusBackend("svn"), loadedConfiguration.Actions.Uncommitted.Backend)
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	tempDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(tempDirectory, testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("scan: [unterminated"), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{tempDirectory})

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(configurationFilePath, map[string]any{}, &loadedConfiguration)
	require.Error(testInstance, loadError)
}
