package repolist

import "strings"

const (
	repositoriesFileKeyConstant       = "repositories"
	excludedFileKeyConstant           = "excluded"
	filteredFileKeyConstant           = "filtered"
	defaultRepositoriesFileConstant   = "repos.json"
	defaultExcludedFileConstant       = "repos_exclude.json"
	defaultFilteredFileConstant       = "repos_filtered.json"
	configurationKeySeparatorConstant = "."
)

// FilesConfiguration names the list files exchanged between commands.
type FilesConfiguration struct {
	Repositories string `mapstructure:"repositories"`
	Excluded     string `mapstructure:"excluded"`
	Filtered     string `mapstructure:"filtered"`
}

// DefaultFilesConfiguration returns the working-directory file names used when nothing is configured.
func DefaultFilesConfiguration() FilesConfiguration {
	return FilesConfiguration{
		Repositories: defaultRepositoriesFileConstant,
		Excluded:     defaultExcludedFileConstant,
		Filtered:     defaultFilteredFileConstant,
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultFilesConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + repositoriesFileKeyConstant: defaults.Repositories,
		prefix + configurationKeySeparatorConstant + excludedFileKeyConstant:     defaults.Excluded,
		prefix + configurationKeySeparatorConstant + filteredFileKeyConstant:     defaults.Filtered,
	}
}

// Sanitize trims whitespace and restores defaults for blank names.
func (configuration FilesConfiguration) Sanitize() FilesConfiguration {
	defaults := DefaultFilesConfiguration()
	return FilesConfiguration{
		Repositories: valueOrDefault(configuration.Repositories, defaults.Repositories),
		Excluded:     valueOrDefault(configuration.Excluded, defaults.Excluded),
		Filtered:     valueOrDefault(configuration.Filtered, defaults.Filtered),
	}
}

func valueOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
