// Package actions runs per-repository actions against the filtered repository list.
//
// Actions are registered statically by name. The uncommitted action reports
// repositories with pending working-tree changes and the placeholder action only
// enumerates repositories. Per-repository failures are printed and never abort a run.
package actions
