package gitinfo

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitInfoAdapter implements domain.RevisionReader using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}

func (g *GitInfoAdapter) IsGitRepo(path string) bool {
	_, err := open(path)
	return err == nil
}

// RepoRoot returns the worktree root of the repository containing path.
func (g *GitInfoAdapter) RepoRoot(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// HeadContent returns file as committed at HEAD. file may be absolute or
// relative to the worktree root. The second result is false when the file
// is not in the HEAD tree or the repository has no commits yet.
func (g *GitInfoAdapter) HeadContent(repoPath, file string) (string, bool, error) {
	repo, err := open(repoPath)
	if err != nil {
		return "", false, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", false, fmt.Errorf("opening worktree: %w", err)
	}
	rel, err := relativeTo(wt.Filesystem.Root(), file)
	if err != nil {
		return "", false, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", false, fmt.Errorf("reading HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return "", false, fmt.Errorf("reading HEAD tree: %w", err)
	}

	f, err := tree.File(rel)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s at HEAD: %w", rel, err)
	}
	content, err := f.Contents()
	if err != nil {
		return "", false, fmt.Errorf("reading %s at HEAD: %w", rel, err)
	}
	return content, true, nil
}

// ModifiedFiles lists tracked files whose worktree or staged content differs
// from HEAD. Deleted and untracked files are left out. Paths are
// slash-separated, relative to the worktree root and sorted.
func (g *GitInfoAdapter) ModifiedFiles(repoPath string) ([]string, error) {
	repo, err := open(repoPath)
	if err != nil {
		return nil, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	var files []string
	for path, s := range status {
		if s.Worktree == git.Untracked || s.Worktree == git.Deleted || s.Staging == git.Deleted {
			continue
		}
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

func relativeTo(root, file string) (string, error) {
	if !filepath.IsAbs(file) {
		return filepath.ToSlash(filepath.Clean(file)), nil
	}
	if r, err := filepath.EvalSymlinks(root); err == nil {
		root = r
	}
	if f, err := filepath.EvalSymlinks(file); err == nil {
		file = f
	}
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside repository %s", file, root)
	}
	return filepath.ToSlash(rel), nil
}
