// Package gitrepo answers working-tree questions about git repositories.
//
// ShellStatusChecker queries the git executable with `git status --porcelain`
// while GoGitStatusChecker inspects the worktree in-process through go-git.
// Both satisfy shared.WorktreeStatusChecker.
package gitrepo
