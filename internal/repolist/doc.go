// Package repolist persists repository lists and derives lists from one another.
//
// A list is a document with a single "repos" field holding ordered paths. Store
// reads and writes such documents as indented JSON, or as YAML when the file name
// ends in .yaml or .yml. Subtract and ExcludeByName compute derived lists while
// preserving input order.
package repolist
