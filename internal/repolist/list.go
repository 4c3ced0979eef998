package repolist

import "path/filepath"

// List is the persisted form of a repository list.
type List struct {
	Repositories []string `json:"repos" yaml:"repos"`
}

// Subtract returns the entries of repositories that are absent from excluded, in the order of repositories.
// Membership is a set test: duplicates in repositories are kept when not excluded.
func Subtract(repositories []string, excluded []string) []string {
	excludedSet := make(map[string]struct{}, len(excluded))
	for _, excludedRepository := range excluded {
		excludedSet[excludedRepository] = struct{}{}
	}

	remaining := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		if _, isExcluded := excludedSet[repository]; isExcluded {
			continue
		}
		remaining = append(remaining, repository)
	}
	return remaining
}

// ExcludeByName drops every entry whose final path segment equals name.
func ExcludeByName(repositories []string, name string) []string {
	remaining := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		if filepath.Base(repository) == name {
			continue
		}
		remaining = append(remaining, repository)
	}
	return remaining
}
