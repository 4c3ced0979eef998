package execshell

import (
	"context"
	"fmt"
	"strings"
)

const (
	commandGitNameConstant                = "git"
	commandFailedErrorTemplateConstant    = "%s failed with exit code %d"
	commandFailedStandardErrorTemplate    = "%s failed with exit code %d: %s"
	commandExecutionErrorTemplateConstant = "%s failed: %v"
	commandArgumentsSeparatorConstant     = " "
)

// CommandName identifies a supported executable.
type CommandName string

// CommandGit invokes the git executable.
const CommandGit CommandName = CommandName(commandGitNameConstant)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand combines an executable with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran but exited with a non-zero status.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failing command and its exit code.
func (failure CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.label(), failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedStandardErrorTemplate, failure.Command.label(), failure.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a command that could not be started or was interrupted.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command and the underlying cause.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command.label(), failure.Cause)
}

// Unwrap exposes the underlying cause, e.g. context.DeadlineExceeded or exec.ErrNotFound.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

func (command ShellCommand) label() string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandArgumentsSeparatorConstant)
}
