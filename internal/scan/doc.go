// Package scan discovers Elixir git repositories beneath a parent directory and
// persists the full and exclude repository lists.
package scan
