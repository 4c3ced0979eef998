package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	setupCommandUseConstant              = "setup"
	setupCommandShortDescriptionConstant = "Run scan + filter"
	setupCommandLongDescriptionConstant  = "setup runs scan and, when the scan succeeds, filter."
	setupBannerConstant                  = "=== Running setup (scan + filter) ===\n"
	setupStepSeparatorConstant           = "\n"
)

// Step is a unit of setup work that reports its own failures and returns whether it succeeded.
type Step interface {
	RunStep(command *cobra.Command) bool
}

// SetupCommandBuilder assembles the setup command from the scan and filter steps.
type SetupCommandBuilder struct {
	ScanStep   Step
	FilterStep Step
}

// Build constructs the setup command.
func (builder SetupCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   setupCommandUseConstant,
		Short: setupCommandShortDescriptionConstant,
		Long:  setupCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder SetupCommandBuilder) run(command *cobra.Command, arguments []string) error {
	fmt.Fprint(command.OutOrStdout(), setupBannerConstant)
	if builder.ScanStep == nil || !builder.ScanStep.RunStep(command) {
		return nil
	}
	fmt.Fprint(command.OutOrStdout(), setupStepSeparatorConstant)
	if builder.FilterStep != nil {
		builder.FilterStep.RunStep(command)
	}
	return nil
}
