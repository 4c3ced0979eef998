package scan

import (
	"strings"

	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	parentDirectoryKeyConstant        = "parent_directory"
	versionControlMarkerKeyConstant   = "version_control_marker"
	projectMarkerKeyConstant          = "project_marker"
	designatedNameKeyConstant         = "designated_name"
	defaultParentDirectoryConstant    = ".."
	defaultDesignatedNameConstant     = "DSPex"
	configurationKeySeparatorConstant = "."
)

// Configuration captures persistent settings for repository scanning.
type Configuration struct {
	ParentDirectory      string `mapstructure:"parent_directory"`
	VersionControlMarker string `mapstructure:"version_control_marker"`
	ProjectMarker        string `mapstructure:"project_marker"`
	DesignatedName       string `mapstructure:"designated_name"`
}

// DefaultConfiguration scans the parent of the working directory for .git and mix.exs and excludes DSPex.
func DefaultConfiguration() Configuration {
	return Configuration{
		ParentDirectory:      defaultParentDirectoryConstant,
		VersionControlMarker: shared.GitMetadataMarkerConstant,
		ProjectMarker:        shared.MixProjectMarkerConstant,
		DesignatedName:       defaultDesignatedNameConstant,
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + parentDirectoryKeyConstant:      defaults.ParentDirectory,
		prefix + configurationKeySeparatorConstant + versionControlMarkerKeyConstant: defaults.VersionControlMarker,
		prefix + configurationKeySeparatorConstant + projectMarkerKeyConstant:        defaults.ProjectMarker,
		prefix + configurationKeySeparatorConstant + designatedNameKeyConstant:       defaults.DesignatedName,
	}
}

// Sanitize trims whitespace and restores defaults for blank values.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	return Configuration{
		ParentDirectory:      valueOrDefault(configuration.ParentDirectory, defaults.ParentDirectory),
		VersionControlMarker: valueOrDefault(configuration.VersionControlMarker, defaults.VersionControlMarker),
		ProjectMarker:        valueOrDefault(configuration.ProjectMarker, defaults.ProjectMarker),
		DesignatedName:       valueOrDefault(configuration.DesignatedName, defaults.DesignatedName),
	}
}

// Markers lists the entries a child directory must contain.
func (configuration Configuration) Markers() []string {
	return []string{configuration.VersionControlMarker, configuration.ProjectMarker}
}

func valueOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
