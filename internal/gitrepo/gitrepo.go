// Package gitrepo wraps the git CLI for committing and pushing the notes
// repository. Each operation is one external call; git itself is the
// atomicity boundary.
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Runner executes git commands against one repository.
type Runner struct {
	repoDir string
	remote  string
	branch  string
	exec    func(ctx context.Context, dir string, args ...string) (string, error)
}

// New creates a Runner for the repository at repoDir. Remote and branch
// default to origin/main when empty.
func New(repoDir, remote, branch string) *Runner {
	if remote == "" {
		remote = "origin"
	}
	if branch == "" {
		branch = "main"
	}
	return &Runner{repoDir: repoDir, remote: remote, branch: branch, exec: runGit}
}

// CommitAndPush stages the given paths, commits with message, and pushes.
// A commit with nothing staged is reported as an error by git; callers
// should only reach here after writing the note and index.
func (r *Runner) CommitAndPush(ctx context.Context, message string, paths ...string) error {
	addArgs := append([]string{"add", "--"}, paths...)
	if _, err := r.exec(ctx, r.repoDir, addArgs...); err != nil {
		return fmt.Errorf("gitrepo: add: %w", err)
	}
	if _, err := r.exec(ctx, r.repoDir, "commit", "-m", message); err != nil {
		return fmt.Errorf("gitrepo: commit: %w", err)
	}
	if _, err := r.exec(ctx, r.repoDir, "push", r.remote, r.branch); err != nil {
		return fmt.Errorf("gitrepo: push: %w", err)
	}
	return nil
}

// IsRepo reports whether repoDir is inside a git work tree.
func (r *Runner) IsRepo(ctx context.Context) bool {
	out, err := r.exec(ctx, r.repoDir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	full := append([]string{"-C", dir}, args...)
	cmd := execCommand(ctx, "git", full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
