package actions

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/mixrepos/internal/repos/shared"
)

// Action performs a check or task over a list of repository paths.
type Action interface {
	Name() string
	Run(executionContext context.Context, repositories []string) error
}

// Dependencies supplies collaborators to action factories.
type Dependencies struct {
	StatusChecker shared.WorktreeStatusChecker
	Reporter      shared.Reporter
	Logger        *zap.Logger
	Configuration Configuration
}

// Factory builds an Action from its dependencies.
type Factory func(dependencies Dependencies) (Action, error)

// Descriptor binds an action name to its command metadata and factory.
type Descriptor struct {
	Name             string
	ShortDescription string
	Banner           string
	// RequiresStatusChecker marks actions that query worktree status.
	RequiresStatusChecker bool
	Factory               Factory
}

var registeredDescriptors = map[string]Descriptor{
	UncommittedActionName: {
		Name:                  UncommittedActionName,
		ShortDescription:      "Check for uncommitted work",
		Banner:                "=== Checking for uncommitted work ===",
		RequiresStatusChecker: true,
		Factory:               newUncommittedActionFromDependencies,
	},
	PlaceholderActionName: {
		Name:             PlaceholderActionName,
		ShortDescription: "Run placeholder action",
		Banner:           "=== Running placeholder action ===",
		Factory:          newPlaceholderActionFromDependencies,
	},
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	descriptor, registered := registeredDescriptors[name]
	return descriptor, registered
}

// Names lists registered action names in lexical order.
func Names() []string {
	names := make([]string, 0, len(registeredDescriptors))
	for name := range registeredDescriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
