package actions

import (
	"context"
	"path/filepath"

	"github.com/temirov/mixrepos/internal/repos/shared"
)

const (
	// PlaceholderActionName identifies the placeholder action.
	PlaceholderActionName = "placeholder"

	placeholderStartMessageConstant       = "Running placeholder action...\n"
	placeholderProcessingTemplateConstant = "  Processing: %s\n"
)

// PlaceholderAction enumerates repositories without touching them.
type PlaceholderAction struct {
	reporter shared.Reporter
}

// NewPlaceholderAction constructs the placeholder action.
func NewPlaceholderAction(reporter shared.Reporter) *PlaceholderAction {
	if reporter == nil {
		reporter = shared.NewWriterReporter(nil)
	}
	return &PlaceholderAction{reporter: reporter}
}

func newPlaceholderActionFromDependencies(dependencies Dependencies) (Action, error) {
	return NewPlaceholderAction(dependencies.Reporter), nil
}

// Name returns the registered action name.
func (action *PlaceholderAction) Name() string {
	return PlaceholderActionName
}

// Run prints each repository name.
func (action *PlaceholderAction) Run(_ context.Context, repositories []string) error {
	action.reporter.Printf(placeholderStartMessageConstant)
	for _, repository := range repositories {
		action.reporter.Printf(placeholderProcessingTemplateConstant, filepath.Base(repository))
	}
	return nil
}
