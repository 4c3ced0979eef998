// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and typed failures,
// and OSCommandRunner is the default os/exec backed runner. Callers bound
// execution time through the supplied context.
package execshell
