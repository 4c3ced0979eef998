// Package utils holds the configuration loader and logger factory shared by
// every mixrepos command.
package utils
