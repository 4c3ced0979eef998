package actions

import (
	"strings"
	"time"

	"github.com/temirov/mixrepos/internal/gitrepo"
)

const (
	uncommittedTimeoutKeyConstant     = "uncommitted.timeout"
	uncommittedBackendKeyConstant     = "uncommitted.backend"
	defaultStatusTimeout              = 10 * time.Second
	configurationKeySeparatorConstant = "."
)

// Configuration captures persistent settings for actions.
type Configuration struct {
	Uncommitted UncommittedConfiguration `mapstructure:"uncommitted"`
}

// UncommittedConfiguration tunes the uncommitted-change check.
type UncommittedConfiguration struct {
	Timeout time.Duration         `mapstructure:"timeout"`
	Backend gitrepo.StatusBackend `mapstructure:"backend"`
}

// DefaultConfiguration bounds each status query to ten seconds using the git executable.
func DefaultConfiguration() Configuration {
	return Configuration{
		Uncommitted: UncommittedConfiguration{
			Timeout: defaultStatusTimeout,
			Backend: gitrepo.StatusBackendGit,
		},
	}
}

// DefaultConfigurationValues exposes the defaults as Viper keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + uncommittedTimeoutKeyConstant: defaults.Uncommitted.Timeout.String(),
		prefix + configurationKeySeparatorConstant + uncommittedBackendKeyConstant: string(defaults.Uncommitted.Backend),
	}
}

// Sanitize restores defaults for non-positive timeouts and blank backends.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	if sanitized.Uncommitted.Timeout <= 0 {
		sanitized.Uncommitted.Timeout = defaultStatusTimeout
	}
	sanitized.Uncommitted.Backend = gitrepo.StatusBackend(strings.TrimSpace(string(sanitized.Uncommitted.Backend)))
	if len(sanitized.Uncommitted.Backend) == 0 {
		sanitized.Uncommitted.Backend = gitrepo.StatusBackendGit
	}
	return sanitized
}
