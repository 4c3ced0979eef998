// Package filter subtracts the exclude list from the full repository list and
// persists the remainder as the working set for actions.
package filter
