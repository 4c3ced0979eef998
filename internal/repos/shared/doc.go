// Package shared holds the collaborator interfaces and reporting helpers used by
// the scan, filter, and action services.
package shared
