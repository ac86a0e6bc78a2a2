package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepo means a directory is not the root of a git working tree.
var ErrNotRepo = errors.New("not a git repository")

// Repo is a git working tree holding a ledger directory.
type Repo struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir, authorName, authorEmail string) (*Repo, error) {
	r := &Repo{Dir: dir, AuthorName: authorName, AuthorEmail: authorEmail}
	if _, err := r.git(ctx, "init", "--quiet"); err != nil {
		return nil, err
	}
	return r, nil
}

// Open returns the repository rooted at dir, or ErrNotRepo.
func Open(dir, authorName, authorEmail string) (*Repo, error) {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotRepo)
	}
	return &Repo{Dir: dir, AuthorName: authorName, AuthorEmail: authorEmail}, nil
}

// Commit stages paths (everything when none are given) and commits them.
// Returns the short commit hash.
func (r *Repo) Commit(ctx context.Context, message string, paths ...string) (string, error) {
	add := []string{"add", "-A"}
	if len(paths) > 0 {
		add = append(add, "--")
		add = append(add, paths...)
	}
	if _, err := r.git(ctx, add...); err != nil {
		return "", err
	}
	if _, err := r.git(ctx, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}
	out, err := r.git(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+r.AuthorName,
		"GIT_AUTHOR_EMAIL="+r.AuthorEmail,
		"GIT_COMMITTER_NAME="+r.AuthorName,
		"GIT_COMMITTER_EMAIL="+r.AuthorEmail,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}
