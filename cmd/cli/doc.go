// Package cli constructs the mixrepos command-line interface: the root
// command with its fixed scan, filter, setup and action subcommands, the
// layered configuration, and the zap logger shared by every subcommand.
package cli
